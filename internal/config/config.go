package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/initt-labs/initt/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized configuration keys.
const (
	KeyTemplatesDir   = "templates_dir"
	KeyMaxAttempts    = "max_attempts"
	KeyRunHooks       = "run_hooks"
	KeyLogLevel       = "log_level"
	KeyNonInteractive = "non_interactive"
)

// Keys lists every recognized configuration key.
var Keys = []string{KeyTemplatesDir, KeyMaxAttempts, KeyRunHooks, KeyLogLevel, KeyNonInteractive}

// DefaultMaxAttempts is the per-variable retry budget of the prompt session.
const DefaultMaxAttempts = 3

// Dir returns the path to the initt config directory (~/.initt/).
// INITT_HOME overrides the location.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.initt/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// UserTemplatesDir returns the per-user template directory (~/.initt/templates).
func UserTemplatesDir() string {
	return filepath.Join(Dir(), "templates")
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyMaxAttempts, DefaultMaxAttempts)
	viper.SetDefault(KeyRunHooks, true)
	viper.SetDefault(KeyLogLevel, "warn")

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// TemplatesDir returns the configured extra template directory, if any.
func TemplatesDir() string {
	return viper.GetString(KeyTemplatesDir)
}

// MaxAttempts returns the prompt retry budget, never less than one.
func MaxAttempts() int {
	n := viper.GetInt(KeyMaxAttempts)
	if n < 1 {
		return DefaultMaxAttempts
	}
	return n
}

// RunHooks reports whether post-create hooks should run.
func RunHooks() bool {
	return viper.GetBool(KeyRunHooks)
}

// LogLevel returns the configured diagnostic log level.
func LogLevel() string {
	return viper.GetString(KeyLogLevel)
}

// NonInteractive reports whether prompting is disabled by config or by
// INITT_NON_INTERACTIVE.
func NonInteractive() bool {
	return viper.GetBool(KeyNonInteractive)
}

// IsKey reports whether key is a recognized configuration key.
func IsKey(key string) bool {
	return slices.Contains(Keys, key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
