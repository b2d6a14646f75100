package types

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty backend returns ErrBackendEmpty",
			config:  Config{Backend: "", DataDir: "/tmp/data"},
			wantErr: ErrBackendEmpty,
		},
		{
			name:    "unknown backend returns ErrBackendUnknown",
			config:  Config{Backend: "postgres", DataDir: "/tmp/data"},
			wantErr: ErrBackendUnknown,
		},
		{
			name:    "valid sqlite config",
			config:  Config{Backend: BackendSQLite, DataDir: "/tmp/data"},
			wantErr: nil,
		},
		{
			name:    "valid docstore config with empty DataDir",
			config:  Config{Backend: BackendDocstore},
			wantErr: nil,
		},
		{
			name:    "unknown journal mode",
			config:  Config{Backend: BackendSQLite, SQLite: SQLiteConfig{JournalMode: "truncate-ish"}},
			wantErr: ErrJournalModeUnknown,
		},
		{
			name:    "negative busy timeout",
			config:  Config{Backend: BackendSQLite, SQLite: SQLiteConfig{BusyTimeoutMS: -1}},
			wantErr: ErrBusyTimeoutInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSQLiteConfigDefaults(t *testing.T) {
	var c SQLiteConfig
	if got := c.GetJournalMode(); got != JournalWAL {
		t.Errorf("GetJournalMode() = %q, want %q", got, JournalWAL)
	}
	if got := c.GetBusyTimeoutMS(); got != DefaultBusyTimeoutMS {
		t.Errorf("GetBusyTimeoutMS() = %d, want %d", got, DefaultBusyTimeoutMS)
	}
}

func TestRelationErrorsWrapNotFound(t *testing.T) {
	if !errors.Is(ErrPanelNotFound, ErrNotFound) {
		t.Error("ErrPanelNotFound should wrap ErrNotFound")
	}
	if !errors.Is(ErrCharacterNotFound, ErrNotFound) {
		t.Error("ErrCharacterNotFound should wrap ErrNotFound")
	}
	if errors.Is(ErrPanelNotFound, ErrCharacterNotFound) {
		t.Error("relation errors must stay distinguishable")
	}
}
