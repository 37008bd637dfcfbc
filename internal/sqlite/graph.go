package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/dukaforge/shelf/pkg/model"
)

// saveChildren persists every has-many collection of the parent, in field
// declaration order and then collection order. Each child's belongs-to
// back-reference is set to the parent before the child's own save, so the
// foreign-key column records the parent identity; the parent row must
// therefore already be committed. Child saves go through Save and so
// cascade recursively to grandchildren. A child type that declares no
// matching belongs-to field is saved without a back-reference, mirroring
// the tolerant walk on the load side.
func (s *Store) saveChildren(parent model.Model, typ *model.Type) error {
	for _, f := range typ.Fields {
		if f.Kind != model.HasMany {
			continue
		}
		childType, err := s.reg.Lookup(f.Child)
		if err != nil {
			return fmt.Errorf("saving children %s.%s: %w", typ.Name, f.Name, err)
		}
		kids, ok := f.Get(parent).([]model.Model)
		if !ok {
			// Unrecognized collection shape: skipped, not an error.
			continue
		}
		back, hasBack := childType.BelongsToField(typ.Name)
		for i, kid := range kids {
			if hasBack {
				back.Set(kid, parent)
			}
			if err := s.Save(kid); err != nil {
				return fmt.Errorf("saving child %s[%d] of %s %d: %w",
					f.Child, i, typ.Name, parent.ID(), err)
			}
		}
	}
	return nil
}

// loadChildren rebuilds every has-many collection of the parent from the
// child tables, replacing the in-memory collections wholesale. Children
// arrive in insertion order, each carrying a back-reference to the parent
// instance, and recursively load their own descendants. A child type with
// no belongs-to field for this parent leaves the collection untouched.
func (s *Store) loadChildren(db *sql.DB, parent model.Model, typ *model.Type) error {
	for _, f := range typ.Fields {
		if f.Kind != model.HasMany {
			continue
		}
		childType, err := s.reg.Lookup(f.Child)
		if err != nil {
			return fmt.Errorf("loading children %s.%s: %w", typ.Name, f.Name, err)
		}
		back, ok := childType.BelongsToField(typ.Name)
		if !ok {
			continue
		}
		query := fmt.Sprintf("SELECT * FROM %s WHERE %s = ? ORDER BY %s",
			childType.TableName(), back.Name, idColumn)
		rows, err := queryMaps(db, childType, query, parent.ID())
		if err != nil {
			return fmt.Errorf("loading children %s.%s: %w", typ.Name, f.Name, err)
		}
		kids := make([]model.Model, 0, len(rows))
		for _, cols := range rows {
			kid, err := s.instantiate(db, childType, cols)
			if err != nil {
				return err
			}
			back.Set(kid, parent)
			kids = append(kids, kid)
		}
		f.Set(parent, kids)
	}
	return nil
}
