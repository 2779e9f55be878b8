package store

import "github.com/google/uuid"

// newID issues a process-unique record identifier. UUIDv7 values are
// time-ordered, so identifiers sort by issuance and consumers may
// assume newer records carry larger ids. Identifiers are never reused
// after a delete. Generation does not fail: the only error source is
// the system entropy pool, which is treated as unrecoverable.
func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}
