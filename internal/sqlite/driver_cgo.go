//go:build cgo_sqlite

package sqlite

// cgo build: the C SQLite amalgamation via mattn/go-sqlite3.
//
//	CGO_ENABLED=1 go build -tags cgo_sqlite ./...

import (
	_ "github.com/mattn/go-sqlite3"
)

const (
	// DriverName is the database/sql driver registered by the import above.
	DriverName = "sqlite3"

	// BuildMode describes the driver build.
	BuildMode = "cgo"
)
