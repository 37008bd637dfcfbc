// Package sqlite provides the public constructor for the SQLite-backed
// Shelf store while keeping the implementation internal.
package sqlite

import (
	internal "github.com/dukaforge/shelf/internal/sqlite"
	"github.com/dukaforge/shelf/pkg/model"
)

// NewStore returns a store that persists the registered model types in the
// SQLite database named by cfg. The database file is created on first use.
//
// Example:
//
//	reg := model.NewRegistry()
//	// ... register model types ...
//	store, err := sqlite.NewStore(model.Config{Path: "shelf.db"}, reg)
func NewStore(cfg model.Config, reg *model.Registry) (model.Store, error) {
	return internal.NewStore(cfg, reg)
}
