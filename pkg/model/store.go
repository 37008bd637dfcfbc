package model

// Store persists registered model instances. Every operation is its own
// unit of work: the backend opens a database handle, performs the work, and
// closes the handle before returning. No transaction spans a parent plus
// its cascaded children; if a child save fails after the parent row is
// committed, the parent stays saved and the error propagates.
type Store interface {
	// Save writes the instance's own row, assigning the identity on first
	// insert, then cascades through its has-many collections in order.
	Save(m Model) error

	// Load fetches the row with the given identity into m, replacing its
	// field values. Returns ErrInvalidID for a non-positive identity and
	// ErrNotFound when no row matches.
	Load(m Model, id int64) error

	// Reload re-reads the instance's stored row. Stored state always wins
	// over unsaved in-memory edits. Returns ErrUnsavedModel when the
	// instance has never been saved.
	Reload(m Model) error

	// Delete removes the instance's row. Child rows are not cascaded;
	// orphaned children remain. Returns ErrUnsavedModel when the instance
	// has never been saved.
	Delete(m Model) error

	// Find constructs a blank instance of the named type and loads the
	// given identity into it.
	Find(name string, id int64) (Model, error)

	// All returns every stored instance of the named type in insertion
	// order.
	All(name string) ([]Model, error)

	// Last returns the most recently inserted instance of the named type,
	// or ErrNotFound when the table is empty.
	Last(name string) (Model, error)

	// DeleteAll removes every row of the named type.
	DeleteAll(name string) error
}
