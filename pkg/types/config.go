package types

import "errors"

// Supported backend names.
const (
	BackendDocstore = "docstore"
	BackendSQLite   = "sqlite"
)

// SQLite journal modes accepted by SQLiteConfig.
const (
	JournalWAL    = "wal"
	JournalDelete = "delete"
	JournalMemory = "memory"
)

// Config holds backend selection and parameters for Backend.Attach.
type Config struct {
	Backend string       `json:"backend" yaml:"backend" mapstructure:"backend"`
	DataDir string       `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`
	SQLite  SQLiteConfig `json:"sqlite" yaml:"sqlite" mapstructure:"sqlite"`
}

// SQLiteConfig holds options that only the sqlite backend reads.
type SQLiteConfig struct {
	// JournalMode is one of wal (default), delete, memory.
	JournalMode string `json:"journal_mode" yaml:"journal_mode" mapstructure:"journal_mode"`

	// BusyTimeoutMS is the SQLite busy_timeout. Zero uses DefaultBusyTimeoutMS.
	BusyTimeoutMS int `json:"busy_timeout_ms" yaml:"busy_timeout_ms" mapstructure:"busy_timeout_ms"`

	// DisableForeignKeys turns off storage-engine cascades. The storyboard
	// Service still cascades explicitly.
	DisableForeignKeys bool `json:"disable_foreign_keys" yaml:"disable_foreign_keys" mapstructure:"disable_foreign_keys"`
}

// DefaultBusyTimeoutMS is used when SQLiteConfig.BusyTimeoutMS is zero.
const DefaultBusyTimeoutMS = 5000

// Config validation errors.
var (
	ErrBackendEmpty       = errors.New("backend must not be empty")
	ErrBackendUnknown     = errors.New("unknown backend")
	ErrJournalModeUnknown = errors.New("unknown journal mode")
	ErrBusyTimeoutInvalid = errors.New("busy timeout must not be negative")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendDocstore: true,
	BackendSQLite:   true,
}

var knownJournalModes = map[string]bool{
	"":            true,
	JournalWAL:    true,
	JournalDelete: true,
	JournalMemory: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	return c.SQLite.Validate()
}

// Validate checks the sqlite options.
func (c SQLiteConfig) Validate() error {
	if !knownJournalModes[c.JournalMode] {
		return ErrJournalModeUnknown
	}
	if c.BusyTimeoutMS < 0 {
		return ErrBusyTimeoutInvalid
	}
	return nil
}

// GetJournalMode returns the journal mode, defaulting to wal.
func (c SQLiteConfig) GetJournalMode() string {
	if c.JournalMode == "" {
		return JournalWAL
	}
	return c.JournalMode
}

// GetBusyTimeoutMS returns the busy timeout, defaulting to DefaultBusyTimeoutMS.
func (c SQLiteConfig) GetBusyTimeoutMS() int {
	if c.BusyTimeoutMS == 0 {
		return DefaultBusyTimeoutMS
	}
	return c.BusyTimeoutMS
}
