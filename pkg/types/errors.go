package types

import (
	"errors"
	"fmt"
)

// Backend lifecycle errors.
var (
	ErrDetached        = errors.New("backend is detached")
	ErrAlreadyAttached = errors.New("backend is already attached")
)

// Table operation errors.
var (
	ErrNotFound    = errors.New("entity not found")
	ErrInvalidID   = errors.New("invalid entity ID")
	ErrInvalidData = errors.New("invalid entity data")
)

// Relation errors. Both wrap ErrNotFound so callers can match either the
// specific kind or the general condition.
var (
	ErrPanelNotFound     = fmt.Errorf("panel: %w", ErrNotFound)
	ErrCharacterNotFound = fmt.Errorf("character: %w", ErrNotFound)
)

// ErrSchemaVersion is returned when a persisted store was written by a newer
// schema than this build understands.
var ErrSchemaVersion = errors.New("unsupported schema version")
