package storyboard

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/storyboard/internal/logger"
)

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock replaces the time source. Returned times are converted to UTC
// and truncated to milliseconds.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator replaces the id source. The default issues UUID v7
// strings.
func WithIDGenerator(next func() (string, error)) Option {
	return func(s *Service) {
		if next != nil {
			s.newID = next
		}
	}
}

func newUUIDv7() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// SequentialIDs returns a generator producing prefix-000001, prefix-000002
// and so on. Two services given the same prefix issue the same ids, which
// makes their outputs comparable. Not safe for concurrent use.
func SequentialIDs(prefix string) func() (string, error) {
	var n int
	return func() (string, error) {
		n++
		return fmt.Sprintf("%s-%06d", prefix, n), nil
	}
}
