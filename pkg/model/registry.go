package model

import "fmt"

// Type describes a registered model type: its name, physical table, field
// descriptors in declaration order, and a factory for blank instances.
type Type struct {
	// Name is the type's simple name and the default table name.
	Name string

	// Table overrides the physical table name when non-empty. Names are
	// used verbatim in SQL: reserved words and collisions are not escaped.
	Table string

	// Fields lists every persisted field in declaration order, which is
	// also column order on table creation.
	Fields []Field

	// New constructs a blank instance of the type.
	New func() Model
}

// TableName returns the physical table name.
func (t *Type) TableName() string {
	if t.Table != "" {
		return t.Table
	}
	return t.Name
}

// BelongsToField returns the descriptor of the field on t that references
// the named parent type. This resolves the foreign-key column for a
// has-many edge. ok is false when t declares no matching belongs-to field.
func (t *Type) BelongsToField(parent string) (Field, bool) {
	for _, f := range t.Fields {
		if f.Kind == BelongsTo && f.Parent == parent {
			return f, true
		}
	}
	return Field{}, false
}

// Registry holds the model types known to a store. Types are registered
// once, at startup; lookups at save and load time are map reads.
type Registry struct {
	types map[string]*Type
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]*Type)}
}

// Register adds a type to the registry. It validates the description and
// returns ErrInvalidType or ErrDuplicateType on failure.
func (r *Registry) Register(t *Type) error {
	if t == nil || t.Name == "" {
		return fmt.Errorf("missing type name: %w", ErrInvalidType)
	}
	if t.New == nil {
		return fmt.Errorf("%s: missing factory: %w", t.Name, ErrInvalidType)
	}
	if _, ok := r.types[t.Name]; ok {
		return fmt.Errorf("%s: %w", t.Name, ErrDuplicateType)
	}
	seen := make(map[string]bool, len(t.Fields))
	for _, f := range t.Fields {
		if f.Name == "" {
			return fmt.Errorf("%s: unnamed field: %w", t.Name, ErrInvalidType)
		}
		if seen[f.Name] {
			return fmt.Errorf("%s: duplicate field %s: %w", t.Name, f.Name, ErrInvalidType)
		}
		seen[f.Name] = true
		if f.Kind == HasMany && f.Child == "" {
			return fmt.Errorf("%s: field %s names no child type: %w", t.Name, f.Name, ErrInvalidType)
		}
		if f.Kind == BelongsTo && f.Parent == "" {
			return fmt.Errorf("%s: field %s names no parent type: %w", t.Name, f.Name, ErrInvalidType)
		}
		if f.Get == nil || f.Set == nil {
			return fmt.Errorf("%s: field %s lacks accessors: %w", t.Name, f.Name, ErrInvalidType)
		}
		if f.Kind == Generic && f.Ptr == nil {
			return fmt.Errorf("%s: generic field %s lacks a pointer accessor: %w", t.Name, f.Name, ErrInvalidType)
		}
	}
	r.types[t.Name] = t
	return nil
}

// Lookup returns the registered type with the given name.
func (r *Registry) Lookup(name string) (*Type, error) {
	t, ok := r.types[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrTypeNotRegistered)
	}
	return t, nil
}

// TypeOf returns the registered type of an instance.
func (r *Registry) TypeOf(m Model) (*Type, error) {
	return r.Lookup(m.ModelName())
}

// New constructs a blank instance of the named type.
func (r *Registry) New(name string) (Model, error) {
	t, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return t.New(), nil
}
