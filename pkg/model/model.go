package model

// Unsaved is the identity sentinel carried by instances that have not yet
// been written to the database. Identities assigned by the storage layer
// are strictly positive, so the zero value of Record means "unsaved".
const Unsaved int64 = 0

// Model is implemented by every persisted type, normally by embedding
// Record and adding a one-line ModelName method.
type Model interface {
	// ModelName returns the registered type name. The physical table name
	// defaults to this value.
	ModelName() string

	// ID returns the instance identity, or Unsaved.
	ID() int64

	// Saved reports whether the instance holds a database identity.
	Saved() bool

	setID(int64)
}

// Record carries the identity of a persisted instance. Model types embed
// it; the identity is assigned by the storage layer on first insert and is
// immutable thereafter.
type Record struct {
	id int64
}

// ID returns the instance identity, or Unsaved.
func (r *Record) ID() int64 { return r.id }

// Saved reports whether the instance holds a database identity.
func (r *Record) Saved() bool { return r.id != Unsaved }

func (r *Record) setID(id int64) { r.id = id }

// SetID assigns the identity of an instance. Storage backends call it
// after a successful insert; application code must not.
func SetID(m Model, id int64) { m.setID(id) }
