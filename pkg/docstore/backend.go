// Package docstore exposes the document-store backend while keeping its
// implementation internal.
package docstore

import (
	"github.com/mesh-intelligence/storyboard/internal/docstore"
	"github.com/mesh-intelligence/storyboard/pkg/types"
)

// NewBackend creates a new document-store backend instance. An empty
// Config.DataDir on Attach gives a purely in-memory store.
//
// Example:
//
//	backend := docstore.NewBackend()
//	err := backend.Attach(ctx, types.Config{Backend: types.BackendDocstore})
//	defer backend.Detach()
func NewBackend() types.Backend {
	return docstore.NewBackend()
}
