package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/dukaforge/shelf/pkg/model"
)

// idColumn is the auto-incrementing identity column added to every table.
// The leading underscore keeps it clear of field names.
const idColumn = "_id"

// columnType maps a field descriptor to its SQLite storage type. The
// mapping is pure and total: kinds without a direct column representation
// degrade to TEXT (the JSON fallback) rather than failing. Has-many fields
// map to TEXT for totality but are never materialized as columns.
func columnType(f model.Field) string {
	switch f.Kind {
	case model.Bool:
		return "BOOLEAN"
	case model.Int, model.BelongsTo:
		return "INTEGER"
	case model.Float:
		return "REAL"
	default:
		return "TEXT"
	}
}

// ensureTable creates the physical table for typ, or adds whichever of its
// columns are missing. Existing columns and rows are never touched; the
// migration is strictly additive, with no support for type changes, renames,
// or drops. Reconciling an already-consistent table is a no-op beyond the
// probes.
func ensureTable(db *sql.DB, typ *model.Type) error {
	table := typ.TableName()

	// Existence probe: a row count is cheap and fails distinguishably when
	// the table is absent.
	var n int64
	err := db.QueryRow("SELECT count(*) FROM " + table).Scan(&n)
	if err != nil {
		if !isSchemaMismatch(err) {
			return fmt.Errorf("probing table %s: %w", table, err)
		}
		return createTable(db, typ)
	}

	// The table exists: probe each column and add the missing ones. The
	// typeof probe succeeds (with zero rows) on an empty table, so only a
	// missing column makes it fail.
	for _, f := range typ.Fields {
		if f.Kind == model.HasMany {
			continue
		}
		rows, err := db.Query(fmt.Sprintf("SELECT typeof(%s) FROM %s LIMIT 1", f.Name, table))
		if err == nil {
			rows.Close()
			continue
		}
		alter := fmt.Sprintf("ALTER TABLE %s ADD %s %s", table, f.Name, columnType(f))
		if _, err := db.Exec(alter); err != nil {
			return fmt.Errorf("adding column %s.%s: %w", table, f.Name, err)
		}
	}
	return nil
}

// createTable builds the table from scratch: one column per persisted field
// in declaration order, plus the identity column. Children of has-many
// fields live in their own tables and get no column here.
func createTable(db *sql.DB, typ *model.Type) error {
	var cols []string
	for _, f := range typ.Fields {
		if f.Kind == model.HasMany {
			continue
		}
		cols = append(cols, f.Name+" "+columnType(f))
	}
	cols = append(cols, idColumn+" INTEGER PRIMARY KEY AUTOINCREMENT")
	stmt := fmt.Sprintf("CREATE TABLE %s (%s)", typ.TableName(), strings.Join(cols, ", "))
	if _, err := db.Exec(stmt); err != nil {
		return fmt.Errorf("creating table %s: %w", typ.TableName(), err)
	}
	return nil
}
