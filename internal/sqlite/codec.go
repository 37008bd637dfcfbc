package sqlite

import (
	"encoding/json"
	"fmt"

	"github.com/dukaforge/shelf/pkg/model"
)

// encodeFields builds the row representation for one instance. Has-many
// fields contribute no column; their children are persisted by the graph
// walk after the instance's own row commits. Belongs-to fields store the
// referenced identity, which must already be assigned — the engine saves
// parents before children, so an unsaved reference here is a programming
// error and is returned as one.
func encodeFields(m model.Model, typ *model.Type) (*row, error) {
	r := &row{}
	for _, f := range typ.Fields {
		v := f.Get(m)
		switch f.Kind {
		case model.Text:
			s, ok := v.(string)
			if !ok {
				return nil, badValue(f, v, "string")
			}
			r.put(f.Name, s)
		case model.Bool:
			b, ok := v.(bool)
			if !ok {
				return nil, badValue(f, v, "bool")
			}
			r.put(f.Name, b)
		case model.Int:
			n, ok := v.(int64)
			if !ok {
				return nil, badValue(f, v, "int64")
			}
			r.put(f.Name, n)
		case model.Float:
			x, ok := v.(float64)
			if !ok {
				return nil, badValue(f, v, "float64")
			}
			r.put(f.Name, x)
		case model.Enum:
			name, ok := v.(string)
			if !ok {
				return nil, badValue(f, v, "string")
			}
			if name == "" {
				r.putNull(f.Name)
			} else {
				r.put(f.Name, name)
			}
		case model.BelongsTo:
			parent, _ := v.(model.Model)
			if parent == nil {
				r.putNull(f.Name)
				break
			}
			if !parent.Saved() {
				return nil, fmt.Errorf("field %s references %s: %w",
					f.Name, f.Parent, model.ErrUnsavedReference)
			}
			r.put(f.Name, parent.ID())
		case model.HasMany:
			// No column entry.
		default:
			data, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("field %s (%T): %w", f.Name, v, model.ErrUnsupportedField)
			}
			r.put(f.Name, string(data))
		}
	}
	return r, nil
}

// decodeFields assigns scanned column values back onto the instance,
// overwriting current field values. NULL and absent columns leave the zero
// value in place, so an enum with an empty stored name simply stays unset.
// Has-many collections come from the graph walk, not the row. Belongs-to
// references are deliberately not reconstituted from the stored identity —
// they are set only during graph traversal from the parent side, which
// avoids unbounded recursive parent loads.
func decodeFields(m model.Model, typ *model.Type, cols map[string]any) error {
	for _, f := range typ.Fields {
		v, ok := cols[f.Name]
		if !ok || v == nil {
			continue
		}
		switch f.Kind {
		case model.Text:
			f.Set(m, asString(v))
		case model.Bool:
			f.Set(m, asBool(v))
		case model.Int:
			if n, ok := v.(int64); ok {
				f.Set(m, n)
			}
		case model.Float:
			f.Set(m, asFloat(v))
		case model.Enum:
			if name := asString(v); name != "" {
				f.Set(m, name)
			}
		case model.BelongsTo, model.HasMany:
			// Handled by graph traversal; see above.
		default:
			if err := json.Unmarshal([]byte(asString(v)), f.Ptr(m)); err != nil {
				return fmt.Errorf("field %s: %v: %w", f.Name, err, model.ErrUnsupportedField)
			}
		}
	}
	return nil
}

// badValue reports a descriptor whose accessor returned a value of the
// wrong dynamic type for its declared kind. This is an invariant violation
// in the registration, not a recoverable runtime condition.
func badValue(f model.Field, v any, want string) error {
	return fmt.Errorf("field %s: accessor returned %T, want %s: %w",
		f.Name, v, want, model.ErrUnsupportedField)
}

// asString tolerates the driver returning TEXT as either string or []byte.
func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return ""
	}
}

// asBool tolerates BOOLEAN columns coming back as integers, which is how
// SQLite stores them.
func asBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case int64:
		return b != 0
	default:
		return false
	}
}

// asFloat tolerates REAL columns coming back as integers for whole values.
func asFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int64:
		return float64(x)
	default:
		return 0
	}
}
