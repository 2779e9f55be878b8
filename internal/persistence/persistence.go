// Package persistence stores the whole portal state as a single
// opaque blob under a fixed, version-tagged key, and restores it at
// startup. Two backends exist: a JSON file on disk and a single keyed
// row in PostgreSQL.
package persistence

import (
	"context"
	"errors"

	"github.com/cityconnect/portal/internal/models"
)

// StateKey is the fixed key the state blob is stored under. A format
// change requires a new key; there is no schema versioning beyond it.
const StateKey = "city_connect_state_v1"

// ErrCorrupt reports that a stored blob exists but could not be
// decoded. Callers are expected to fall back to default state rather
// than fail startup.
var ErrCorrupt = errors.New("persisted state is corrupt")

// Gateway saves and restores complete state snapshots.
//
// Save must replace the durable blob atomically: a failed save leaves
// the previously stored blob intact, never a half-written one. A save
// failure does not roll back the in-memory mutation that triggered
// it; the caller keeps the in-memory state as authoritative.
//
// Load reports found=false when no blob has ever been written, and an
// error wrapping ErrCorrupt when a blob exists but cannot be decoded.
type Gateway interface {
	Save(ctx context.Context, st models.State) error
	Load(ctx context.Context) (st models.State, found bool, err error)
}
