package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/storyboard/internal/logger"
	"github.com/mesh-intelligence/storyboard/pkg/storyboard"
)

// session is an open Service plus the logger it writes to.
type session struct {
	*storyboard.Service
	settings *settings
	log      *logger.Logger
}

// openSession resolves configuration and opens the configured backend.
// The caller must call close.
func (f *rootFlags) openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := f.resolve()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.logMode, cfg.logLevel)
	if err != nil {
		return nil, userError(fmt.Errorf("logger: %w", err))
	}
	svc, err := storyboard.Open(cmd.Context(), cfg.backend, storyboard.WithLogger(log))
	if err != nil {
		log.Sync()
		return nil, sysError(err)
	}
	return &session{Service: svc, settings: cfg, log: log}, nil
}

func (s *session) close() {
	if err := s.Service.Close(); err != nil {
		s.log.Error("close failed", "error", err)
	}
	s.log.Sync()
}

// withSession opens a session, runs fn, and closes the session.
func (f *rootFlags) withSession(cmd *cobra.Command, fn func(*session) error) error {
	s, err := f.openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()
	return fn(s)
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return sysError(fmt.Errorf("encode output: %w", err))
	}
	return nil
}
