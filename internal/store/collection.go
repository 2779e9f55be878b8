package store

// collection is the uniform in-memory container behind every record
// kind. Records live in a slice in insertion order; all lookups are
// linear scans, which is fine at portal scale. The collection itself
// is not locked — the owning Store serializes access through its
// single mutex.
type collection[T any] struct {
	items []T
	// id extracts the record identifier.
	id func(T) string
}

func newCollection[T any](id func(T) string) *collection[T] {
	return &collection[T]{id: id}
}

// list returns a copy of all records in insertion order. Entities are
// flat value structs, so the copy is deep: later store mutations can
// never reach into a previously returned slice.
func (c *collection[T]) list() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// filter returns copies of the records matching pred, in insertion order.
func (c *collection[T]) filter(pred func(T) bool) []T {
	out := []T{}
	for _, item := range c.items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// find returns a copy of the record with the given id.
func (c *collection[T]) find(id string) (T, bool) {
	for _, item := range c.items {
		if c.id(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// add appends the record.
func (c *collection[T]) add(item T) {
	c.items = append(c.items, item)
}

// update applies mutate to the record with the given id in place and
// returns a copy of the result. Reports false when the id is absent.
func (c *collection[T]) update(id string, mutate func(*T)) (T, bool) {
	for i := range c.items {
		if c.id(c.items[i]) == id {
			mutate(&c.items[i])
			return c.items[i], true
		}
	}
	var zero T
	return zero, false
}

// remove deletes the record with the given id, preserving the order
// of the remaining records. Reports false when the id is absent, so a
// second remove of the same id is a no-op for the caller.
func (c *collection[T]) remove(id string) bool {
	for i := range c.items {
		if c.id(c.items[i]) == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}
