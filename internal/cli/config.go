package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/storyboard/internal/paths"
	"github.com/mesh-intelligence/storyboard/pkg/types"
)

// Config keys.
const (
	cfgKeyBackend       = "backend"
	cfgKeyDataDir       = "data_dir"
	cfgKeyLogMode       = "log_mode"
	cfgKeyLogLevel      = "log_level"
	cfgKeyJournalMode   = "sqlite.journal_mode"
	cfgKeyBusyTimeout   = "sqlite.busy_timeout_ms"
	cfgKeyNoForeignKeys = "sqlite.disable_foreign_keys"
)

// envPrefix prefixes the environment overrides, e.g. STORYBOARD_BACKEND.
const envPrefix = "STORYBOARD"

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# storyboard configuration

# Storage backend: docstore or sqlite.
backend: sqlite

# Data directory. Overridden by --data-dir.
# data_dir:

# Logging: dev, prod or quiet.
log_mode: prod
log_level: warn

sqlite:
  journal_mode: wal
  busy_timeout_ms: 5000
  disable_foreign_keys: false
`

// settings is the resolved configuration for one command.
type settings struct {
	configDir string
	backend   types.Config
	logMode   string
	logLevel  string
}

// loadDotEnv loads .env from the working directory and then from the
// config directory. Variables already set win; missing files are skipped.
func loadDotEnv(dirs ...string) error {
	for _, dir := range dirs {
		path := filepath.Join(dir, paths.EnvFileName)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// loadConfig reads config.yaml from configDir, creating the directory and
// a default file on first run. Environment variables override file values
// except data_dir, whose precedence paths.ResolveDataDir owns.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("write default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyLogMode, "prod")
	v.SetDefault(cfgKeyLogLevel, "warn")
	v.SetConfigFile(paths.ConfigFile(configDir))
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{cfgKeyBackend, cfgKeyLogMode, cfgKeyLogLevel, cfgKeyJournalMode, cfgKeyBusyTimeout, cfgKeyNoForeignKeys} {
		env := envPrefix + "_" + envName(key)
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// envName turns sqlite.journal_mode into SQLITE_JOURNAL_MODE.
func envName(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func ensureDefaultConfigFile(configDir string) error {
	path := paths.ConfigFile(configDir)
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// resolve loads .env files and config.yaml, then applies the global flags.
func (f *rootFlags) resolve() (*settings, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, sysError(err)
	}
	if err := loadDotEnv(cwd); err != nil {
		return nil, userError(err)
	}
	configDir, err := paths.ResolveConfigDir(f.configDir)
	if err != nil {
		return nil, sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	if configDir != cwd {
		if err := loadDotEnv(configDir); err != nil {
			return nil, userError(err)
		}
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return nil, sysError(err)
	}
	dataDir, err := paths.ResolveDataDir(f.dataDir, v.GetString(cfgKeyDataDir), f.global)
	if err != nil {
		return nil, sysError(fmt.Errorf("resolve data dir: %w", err))
	}

	s := &settings{
		configDir: configDir,
		backend: types.Config{
			Backend: v.GetString(cfgKeyBackend),
			DataDir: dataDir,
			SQLite: types.SQLiteConfig{
				JournalMode:        v.GetString(cfgKeyJournalMode),
				BusyTimeoutMS:      v.GetInt(cfgKeyBusyTimeout),
				DisableForeignKeys: v.GetBool(cfgKeyNoForeignKeys),
			},
		},
		logMode:  v.GetString(cfgKeyLogMode),
		logLevel: v.GetString(cfgKeyLogLevel),
	}
	if f.backend != "" {
		s.backend.Backend = f.backend
	}
	if f.logMode != "" {
		s.logMode = f.logMode
	}
	if err := s.backend.Validate(); err != nil {
		return nil, userError(fmt.Errorf("config: %w", err))
	}
	return s, nil
}
