// Package storyboard is the call surface of the content graph. A Service
// owns identity and timestamps, sequences cascade deletes, reconciles
// dangling rows, and delegates storage to whichever backend is mounted.
package storyboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mesh-intelligence/storyboard/internal/logger"
	"github.com/mesh-intelligence/storyboard/pkg/types"
)

// Service is the façade over one storage backend. Calls are synchronous;
// the Service adds no locking of its own beyond guarding initialization.
type Service struct {
	backend types.Backend
	config  types.Config
	log     *logger.Logger
	now     func() time.Time
	newID   func() (string, error)

	mu          sync.Mutex
	initialized bool
}

// New returns a Service over backend. The backend is attached with cfg on
// Initialize or on the first call that needs it.
func New(backend types.Backend, cfg types.Config, opts ...Option) *Service {
	s := &Service{
		backend: backend,
		config:  cfg,
		log:     logger.Nop(),
		now:     time.Now,
		newID:   newUUIDv7,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("backend", backend.Name())
	return s
}

// Open selects the backend named by cfg.Backend and initializes it.
func Open(ctx context.Context, cfg types.Config, opts ...Option) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	backend, err := NewBackend(cfg.Backend)
	if err != nil {
		return nil, err
	}
	s := New(backend, cfg, opts...)
	if err := s.Initialize(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Initialize attaches the backend. Calling it again is a no-op. A backend
// the caller already attached is accepted as is.
func (s *Service) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	err := s.backend.Attach(ctx, s.config)
	if err != nil && !errors.Is(err, types.ErrAlreadyAttached) {
		s.log.Error("initialize failed", "error", err)
		return fmt.Errorf("initializing %s backend: %w", s.backend.Name(), err)
	}
	s.initialized = true
	s.log.Debug("initialized", "data_dir", s.config.DataDir)
	return nil
}

// Close detaches the backend. A later call initializes it again.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return nil
	}
	s.initialized = false
	if err := s.backend.Detach(); err != nil {
		return fmt.Errorf("closing %s backend: %w", s.backend.Name(), err)
	}
	return nil
}

// Backend returns the mounted backend.
func (s *Service) Backend() types.Backend {
	return s.backend
}

// store initializes lazily and returns the backend.
func (s *Service) store(ctx context.Context) (types.Backend, error) {
	if err := s.Initialize(ctx); err != nil {
		return nil, err
	}
	return s.backend, nil
}

// stamp returns the current time as stored: UTC, millisecond precision.
func (s *Service) stamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// identity returns a fresh id and the creation time.
func (s *Service) identity() (string, time.Time, error) {
	id, err := s.newID()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generating id: %w", err)
	}
	if id == "" {
		return "", time.Time{}, types.ErrInvalidID
	}
	return id, s.stamp(), nil
}

// found converts ErrNotFound into a nil result.
func found[E any](e *E, err error) (*E, error) {
	if errors.Is(err, types.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}
