package sqlite

import "strings"

// isSchemaMismatch reports whether err is SQLite's signal for a missing
// table or column — the class of failure that schema reconciliation can
// repair. modernc.org/sqlite surfaces these conditions only through the
// error text, so classification is by message. "has no column named" is the
// INSERT-side variant of "no such column".
func isSchemaMismatch(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "no such table") ||
		strings.Contains(msg, "no such column") ||
		strings.Contains(msg, "has no column named")
}
