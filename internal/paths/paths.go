// Package paths resolves where the storyboard CLI keeps its configuration
// and its data.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appDir is the directory name used under the platform base directories.
const appDir = "storyboard"

// Working-directory defaults.
const (
	DefaultDataDirName = ".storyboard"
	ConfigFileName     = "config.yaml"
	EnvFileName        = ".env"
)

// Environment variables that override the directories.
const (
	EnvConfigDir = "STORYBOARD_CONFIG_DIR"
	EnvDataDir   = "STORYBOARD_DATA_DIR"
)

// platformDir holds the platform lookups; tests replace them.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
	getwd         func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
	getwd:         os.Getwd,
}

// xdgDir returns $xdgVar/storyboard on linux, falling back to
// ~/<fallback...>/storyboard. Other platforms use os.UserConfigDir.
func xdgDir(xdgVar string, fallback ...string) (string, error) {
	if runtime.GOOS != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appDir), nil
	}
	if xdg := os.Getenv(xdgVar); xdg != "" {
		return filepath.Join(xdg, appDir), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	parts := append([]string{home}, fallback...)
	return filepath.Join(append(parts, appDir)...), nil
}

// DefaultConfigDir returns the platform configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/storyboard (fallback ~/.config/storyboard)
// macOS:   ~/Library/Application Support/storyboard
// Windows: %APPDATA%/storyboard
func DefaultConfigDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform data directory. The CLI only falls
// back to it with --global; by default data lives next to the work.
//
// Linux:   $XDG_DATA_HOME/storyboard (fallback ~/.local/share/storyboard)
// macOS and Windows: same as DefaultConfigDir.
func DefaultDataDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", ".local", "share")
}

// ResolveConfigDir applies flag > STORYBOARD_CONFIG_DIR > DefaultConfigDir.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir applies flag > config.yaml data_dir > STORYBOARD_DATA_DIR >
// ./.storyboard. With global set the last step is DefaultDataDir instead.
func ResolveDataDir(flag, configValue string, global bool) (string, error) {
	for _, candidate := range []string{flag, configValue, os.Getenv(EnvDataDir)} {
		if candidate != "" {
			return filepath.Abs(candidate)
		}
	}
	if global {
		return DefaultDataDir()
	}
	cwd, err := platformDir.getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// ConfigFile returns the config.yaml path inside configDir.
func ConfigFile(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}
