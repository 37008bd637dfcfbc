package model

import (
	"encoding/json"
	"fmt"
)

// FromJSON constructs an instance of the named type from a JSON object.
// Fields absent from the payload keep their zero values. Has-many fields
// accept nested arrays of objects and produce child instances recursively;
// nothing is saved and no back-references are set until the tree is passed
// to a Store. Belongs-to fields cannot be expressed in a payload and are
// ignored.
func FromJSON(reg *Registry, name string, data []byte) (Model, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s payload: %w", name, err)
	}
	return fromRaw(reg, name, raw)
}

func fromRaw(reg *Registry, name string, raw map[string]json.RawMessage) (Model, error) {
	typ, err := reg.Lookup(name)
	if err != nil {
		return nil, err
	}
	m := typ.New()
	for _, f := range typ.Fields {
		msg, ok := raw[f.Name]
		if !ok || string(msg) == "null" {
			continue
		}
		switch f.Kind {
		case Text, Enum:
			var s string
			if err := json.Unmarshal(msg, &s); err != nil {
				return nil, fieldErr(name, f.Name, err)
			}
			f.Set(m, s)
		case Bool:
			var b bool
			if err := json.Unmarshal(msg, &b); err != nil {
				return nil, fieldErr(name, f.Name, err)
			}
			f.Set(m, b)
		case Int:
			var n int64
			if err := json.Unmarshal(msg, &n); err != nil {
				return nil, fieldErr(name, f.Name, err)
			}
			f.Set(m, n)
		case Float:
			var x float64
			if err := json.Unmarshal(msg, &x); err != nil {
				return nil, fieldErr(name, f.Name, err)
			}
			f.Set(m, x)
		case BelongsTo:
			// Parent references are set by save-time graph traversal.
		case HasMany:
			var items []map[string]json.RawMessage
			if err := json.Unmarshal(msg, &items); err != nil {
				return nil, fieldErr(name, f.Name, err)
			}
			kids := make([]Model, 0, len(items))
			for _, item := range items {
				kid, err := fromRaw(reg, f.Child, item)
				if err != nil {
					return nil, err
				}
				kids = append(kids, kid)
			}
			f.Set(m, kids)
		default:
			if err := json.Unmarshal(msg, f.Ptr(m)); err != nil {
				return nil, fmt.Errorf("%s.%s: %v: %w", name, f.Name, err, ErrUnsupportedField)
			}
		}
	}
	return m, nil
}

func fieldErr(typeName, fieldName string, err error) error {
	return fmt.Errorf("decoding %s.%s: %w", typeName, fieldName, err)
}

// ToJSON serializes an instance to a JSON object holding only the fields
// marked Expose. Exposed has-many fields recurse into their children;
// exposed belongs-to fields serialize the referenced identity rather than
// the parent object, which would cycle back up the tree.
func ToJSON(reg *Registry, m Model) ([]byte, error) {
	obj, err := exposedMap(reg, m)
	if err != nil {
		return nil, err
	}
	return json.Marshal(obj)
}

func exposedMap(reg *Registry, m Model) (map[string]any, error) {
	typ, err := reg.TypeOf(m)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any)
	for _, f := range typ.Fields {
		if !f.Expose {
			continue
		}
		switch f.Kind {
		case HasMany:
			kids, _ := f.Get(m).([]Model)
			arr := make([]any, 0, len(kids))
			for _, kid := range kids {
				sub, err := exposedMap(reg, kid)
				if err != nil {
					return nil, err
				}
				arr = append(arr, sub)
			}
			out[f.Name] = arr
		case BelongsTo:
			if parent, ok := f.Get(m).(Model); ok && parent != nil {
				out[f.Name] = parent.ID()
			} else {
				out[f.Name] = nil
			}
		default:
			out[f.Name] = f.Get(m)
		}
	}
	return out, nil
}
