// Package sqlite exposes the SQLite storage backend while keeping its
// implementation internal.
package sqlite

import (
	"github.com/mesh-intelligence/storyboard/internal/sqlite"
	"github.com/mesh-intelligence/storyboard/pkg/types"
)

// DriverName is the database/sql driver compiled into this build: "sqlite"
// by default, "sqlite3" with -tags cgo_sqlite.
const DriverName = sqlite.DriverName

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	backend := sqlite.NewBackend()
//	err := backend.Attach(ctx, types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: "./data",
//	})
//	defer backend.Detach()
func NewBackend() types.Backend {
	return sqlite.NewBackend()
}
