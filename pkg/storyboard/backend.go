package storyboard

import (
	"fmt"

	"github.com/mesh-intelligence/storyboard/pkg/docstore"
	"github.com/mesh-intelligence/storyboard/pkg/sqlite"
	"github.com/mesh-intelligence/storyboard/pkg/types"
)

// NewBackend returns a detached backend for name, one of
// types.BackendDocstore or types.BackendSQLite.
func NewBackend(name string) (types.Backend, error) {
	switch name {
	case types.BackendDocstore:
		return docstore.NewBackend(), nil
	case types.BackendSQLite:
		return sqlite.NewBackend(), nil
	case "":
		return nil, types.ErrBackendEmpty
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrBackendUnknown, name)
	}
}

// Backends lists the names NewBackend accepts.
func Backends() []string {
	return []string{types.BackendDocstore, types.BackendSQLite}
}
