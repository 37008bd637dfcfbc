package model

import "errors"

// Config holds storage parameters for opening a Store.
type Config struct {
	// Path is the SQLite database file path. The file is created on first
	// use if it does not exist.
	Path string `json:"path" yaml:"path"`
}

// Config validation errors.
var (
	ErrPathEmpty = errors.New("database path must not be empty")
)

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.Path == "" {
		return ErrPathEmpty
	}
	return nil
}
