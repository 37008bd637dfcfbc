package model

// Kind classifies a persisted field for the codec and the column type
// mapper. The set is closed: a field that fits no other kind is declared
// Generic and round-trips through JSON text.
type Kind int

const (
	// Text is a string field stored in a TEXT column.
	Text Kind = iota
	// Bool is stored in a BOOLEAN column.
	Bool
	// Int covers every integer width; accessors exchange int64 and the
	// column type is INTEGER.
	Int
	// Float covers single and double precision; accessors exchange
	// float64 and the column type is REAL.
	Float
	// Enum is stored as its symbolic name in a TEXT column. The empty
	// name means unset and is stored as NULL.
	Enum
	// BelongsTo is a nullable reference to an owning parent instance.
	// The parent identity is stored in an INTEGER foreign-key column.
	BelongsTo
	// HasMany is an ordered collection of owned child instances. It has
	// no column of its own; children live in the child type's table and
	// point back through their BelongsTo field.
	HasMany
	// Generic is any other field type, serialized to JSON in a TEXT
	// column.
	Generic
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case Enum:
		return "enum"
	case BelongsTo:
		return "belongs-to"
	case HasMany:
		return "has-many"
	case Generic:
		return "generic"
	default:
		return "unknown"
	}
}

// Field describes one persisted field of a model type. Descriptors are
// built once, at registration, and dispatched on Kind; no reflection is
// involved at save or load time.
//
// Get and Set exchange values whose dynamic type depends on Kind:
//
//	Text, Enum   string (enum: the symbolic name, "" when unset)
//	Bool         bool
//	Int          int64
//	Float        float64
//	BelongsTo    Model (untyped nil when no parent is referenced)
//	HasMany      []Model
//	Generic      any
type Field struct {
	// Name is the column name.
	Name string

	// Kind selects the codec and column type rules.
	Kind Kind

	// Parent names the referenced type of a BelongsTo field; Child names
	// the owned type of a HasMany field. Both are registry type names.
	Parent string
	Child  string

	// Expose marks the field for inclusion in ToJSON output.
	Expose bool

	// Get reads the field value from an instance.
	//
	// A BelongsTo Get must return untyped nil when no parent is
	// referenced. Returning a nil concrete pointer (return t.Album with
	// no nil guard) yields a non-nil Model interface whose method calls
	// dereference the nil pointer and panic.
	Get func(m Model) any

	// Set writes a decoded value to the field.
	Set func(m Model, v any)

	// Ptr returns a pointer to the field. Generic fields require it; the
	// codec uses it as the JSON decode target.
	Ptr func(m Model) any
}
