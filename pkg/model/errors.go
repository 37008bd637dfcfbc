package model

import "errors"

// Store operation errors. Callers test these with errors.Is; backends wrap
// them with the model name and identity involved.
var (
	ErrNotFound     = errors.New("model instance not found")
	ErrInvalidID    = errors.New("invalid model identity")
	ErrUnsavedModel = errors.New("model instance has not been saved")
)

// Codec errors.
var (
	ErrUnsupportedField = errors.New("unsupported field type")
	ErrUnsavedReference = errors.New("referenced instance has not been saved")
)

// Registry errors.
var (
	ErrTypeNotRegistered = errors.New("model type not registered")
	ErrDuplicateType     = errors.New("model type already registered")
	ErrInvalidType       = errors.New("invalid model type description")
)
