// Package sqlite implements the Shelf store on an embedded SQLite database.
// Every operation opens a database handle, performs its work, and closes
// the handle before returning. There is no shared connection, no locking
// beyond SQLite's own, and no transaction spanning a parent-plus-children
// cascade: the engine assumes single-threaded access from one process.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/dukaforge/shelf/pkg/model"
)

// Store persists registered model types in a single SQLite database file.
// It implements model.Store.
type Store struct {
	path string
	reg  *model.Registry
}

// NewStore validates cfg and returns a store over the registered types.
// The database file is created lazily, on the first write.
func NewStore(cfg model.Config, reg *model.Registry) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Store{path: cfg.Path, reg: reg}, nil
}

func (s *Store) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", s.path, err)
	}
	return db, nil
}

// Save writes the instance's own row, assigns the identity on first insert,
// and then cascades through its has-many collections. On a schema mismatch
// the table is reconciled and the write retried exactly once; a second
// failure propagates. The instance's own row is committed (and its handle
// closed) before any child is processed, so a failing child leaves the
// parent durably saved.
func (s *Store) Save(m model.Model) error {
	typ, err := s.reg.TypeOf(m)
	if err != nil {
		return err
	}
	r, err := encodeFields(m, typ)
	if err != nil {
		return fmt.Errorf("saving %s: %w", typ.Name, err)
	}

	db, err := s.open()
	if err != nil {
		return err
	}
	id, err := insertOrUpdate(db, typ, m.ID(), r)
	if isSchemaMismatch(err) {
		if rerr := ensureTable(db, typ); rerr != nil {
			err = rerr
		} else {
			id, err = insertOrUpdate(db, typ, m.ID(), r)
		}
	}
	db.Close()
	if err != nil {
		return fmt.Errorf("saving %s: %w", typ.Name, err)
	}
	model.SetID(m, id)

	return s.saveChildren(m, typ)
}

// insertOrUpdate inserts a new row when id is the unsaved sentinel,
// otherwise updates the existing row in place. Returns the durable identity.
func insertOrUpdate(db *sql.DB, typ *model.Type, id int64, r *row) (int64, error) {
	table := typ.TableName()
	if id == model.Unsaved {
		var res sql.Result
		var err error
		if r.empty() {
			res, err = db.Exec("INSERT INTO " + table + " DEFAULT VALUES")
		} else {
			marks := strings.TrimSuffix(strings.Repeat("?, ", len(r.cols)), ", ")
			stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
				table, strings.Join(r.cols, ", "), marks)
			res, err = db.Exec(stmt, r.vals...)
		}
		if err != nil {
			return 0, err
		}
		newID, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("reading inserted ID: %w", err)
		}
		return newID, nil
	}

	if r.empty() {
		// Nothing beyond the identity to update.
		return id, nil
	}
	sets := make([]string, len(r.cols))
	for i, c := range r.cols {
		sets[i] = c + " = ?"
	}
	stmt := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?",
		table, strings.Join(sets, ", "), idColumn)
	args := append(append([]any{}, r.vals...), id)
	if _, err := db.Exec(stmt, args...); err != nil {
		return 0, err
	}
	return id, nil
}

// Load fetches the row with the given identity into m. A non-positive
// identity is rejected before any database access.
func (s *Store) Load(m model.Model, id int64) error {
	if id <= model.Unsaved {
		return fmt.Errorf("loading %s %d: %w", m.ModelName(), id, model.ErrInvalidID)
	}
	model.SetID(m, id)
	return s.Reload(m)
}

// Reload replaces every persisted field of m with the stored row, then
// rebuilds its has-many collections. Stored state always wins over unsaved
// in-memory edits. An instance without an identity is rejected before any
// database access.
func (s *Store) Reload(m model.Model) error {
	if !m.Saved() {
		return fmt.Errorf("reloading %s: %w", m.ModelName(), model.ErrUnsavedModel)
	}
	typ, err := s.reg.TypeOf(m)
	if err != nil {
		return err
	}
	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	cols, err := s.fetchByID(db, typ, m.ID())
	if err != nil {
		return fmt.Errorf("reloading %s %d: %w", typ.Name, m.ID(), err)
	}
	if err := decodeFields(m, typ, cols); err != nil {
		return fmt.Errorf("reloading %s %d: %w", typ.Name, m.ID(), err)
	}
	return s.loadChildren(db, m, typ)
}

// fetchByID returns the single row with the given identity. Zero matching
// rows is model.ErrNotFound: a distinct condition that never triggers
// reconciliation.
func (s *Store) fetchByID(db *sql.DB, typ *model.Type, id int64) (map[string]any, error) {
	query := fmt.Sprintf("SELECT * FROM %s WHERE %s = ?", typ.TableName(), idColumn)
	rows, err := queryMaps(db, typ, query, id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, model.ErrNotFound
	}
	return rows[0], nil
}

// Delete removes the instance's row. Children are not cascaded: their rows
// remain, orphaned, because nothing stores the downward references needed
// to find them. An unsaved instance is rejected before any database access.
func (s *Store) Delete(m model.Model) error {
	if !m.Saved() {
		return fmt.Errorf("deleting %s: %w", m.ModelName(), model.ErrUnsavedModel)
	}
	typ, err := s.reg.TypeOf(m)
	if err != nil {
		return err
	}
	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	stmt := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", typ.TableName(), idColumn)
	if _, err := db.Exec(stmt, m.ID()); err != nil {
		return fmt.Errorf("deleting %s %d: %w", typ.Name, m.ID(), err)
	}
	return nil
}

// Find constructs a blank instance of the named type and loads the given
// identity into it.
func (s *Store) Find(name string, id int64) (model.Model, error) {
	m, err := s.reg.New(name)
	if err != nil {
		return nil, err
	}
	if err := s.Load(m, id); err != nil {
		return nil, err
	}
	return m, nil
}

// All returns every stored instance of the named type in insertion order,
// each with its has-many collections loaded.
func (s *Store) All(name string) ([]model.Model, error) {
	typ, err := s.reg.Lookup(name)
	if err != nil {
		return nil, err
	}
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query := fmt.Sprintf("SELECT * FROM %s ORDER BY %s", typ.TableName(), idColumn)
	rows, err := queryMaps(db, typ, query)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", typ.Name, err)
	}
	out := make([]model.Model, 0, len(rows))
	for _, cols := range rows {
		m, err := s.instantiate(db, typ, cols)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// Last returns the most recently inserted instance of the named type.
func (s *Store) Last(name string) (model.Model, error) {
	typ, err := s.reg.Lookup(name)
	if err != nil {
		return nil, err
	}
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query := fmt.Sprintf("SELECT * FROM %s ORDER BY %s DESC LIMIT 1", typ.TableName(), idColumn)
	rows, err := queryMaps(db, typ, query)
	if err != nil {
		return nil, fmt.Errorf("fetching last %s: %w", typ.Name, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("fetching last %s: %w", typ.Name, model.ErrNotFound)
	}
	return s.instantiate(db, typ, rows[0])
}

// DeleteAll removes every row of the named type.
func (s *Store) DeleteAll(name string) error {
	typ, err := s.reg.Lookup(name)
	if err != nil {
		return err
	}
	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec("DELETE FROM " + typ.TableName()); err != nil {
		return fmt.Errorf("clearing %s: %w", typ.Name, err)
	}
	return nil
}

// instantiate builds a fully loaded instance from a scanned row map:
// identity, decoded fields, and has-many collections.
func (s *Store) instantiate(db *sql.DB, typ *model.Type, cols map[string]any) (model.Model, error) {
	m := typ.New()
	id, _ := cols[idColumn].(int64)
	model.SetID(m, id)
	if err := decodeFields(m, typ, cols); err != nil {
		return nil, fmt.Errorf("decoding %s %d: %w", typ.Name, id, err)
	}
	if err := s.loadChildren(db, m, typ); err != nil {
		return nil, err
	}
	return m, nil
}

// queryMaps runs query and returns each result row as a column-to-value
// map. On a schema mismatch it reconciles the table and retries exactly
// once, mirroring the write path's recovery policy.
func queryMaps(db *sql.DB, typ *model.Type, query string, args ...any) ([]map[string]any, error) {
	rows, err := db.Query(query, args...)
	if isSchemaMismatch(err) {
		if rerr := ensureTable(db, typ); rerr != nil {
			return nil, fmt.Errorf("reconciling %s: %w", typ.TableName(), rerr)
		}
		rows, err = db.Query(query, args...)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading %s columns: %w", typ.TableName(), err)
	}
	var out []map[string]any
	for rows.Next() {
		vals := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", typ.TableName(), err)
		}
		cols := make(map[string]any, len(names))
		for i, n := range names {
			cols[n] = vals[i]
		}
		out = append(out, cols)
	}
	return out, rows.Err()
}
