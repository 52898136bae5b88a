// Package config handles the configuration directory and environment settings.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

const (
	// AppName is the application directory name.
	AppName = "taskflow"

	// StateFile is the local key-value state filename (session + preferences).
	StateFile = "state.db"

	// DefaultBaseURL is the backend base URL when none is configured.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout is the per-request timeout when none is configured.
	DefaultTimeout = 5 * time.Second
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// BaseURL is the backend base URL (without the /api prefix).
	BaseURL string

	// Timeout is the per-request timeout for backend calls.
	Timeout time.Duration

	// LogLevel is the zap level used when Debug is off.
	LogLevel string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a new Config with the default or specified config directory.
// Environment variables are read from the process environment and, when
// present, from a .env file in the config directory.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	return &Config{
		Dir:      dir,
		BaseURL:  getString("TASKFLOW_BASE_URL", DefaultBaseURL),
		Timeout:  getDuration("TASKFLOW_TIMEOUT", DefaultTimeout),
		LogLevel: getString("TASKFLOW_LOG_LEVEL", "error"),
	}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// StatePath returns the path to the local state file.
func (c *Config) StatePath() string {
	return filepath.Join(c.Dir, StateFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasState checks if the local state file exists.
func (c *Config) HasState() bool {
	_, err := os.Stat(c.StatePath())
	return err == nil
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return fallback
}
