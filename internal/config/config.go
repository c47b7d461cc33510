// Package config loads tasks settings from defaults, TOML files, the
// environment, and command-line flags, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/abatilo/tasks/internal/storage"
)

const (
	appName           = "tasks"
	userConfigName    = "config.toml"
	ProjectConfigFile = ".tasks.toml"
	DefaultLogLevel   = "warn"
	DefaultLogFormat  = "text"
)

// Config holds every setting the front-ends read.
type Config struct {
	DataFile string    `toml:"data_file"`
	JSON     bool      `toml:"json"`
	Log      LogConfig `toml:"log"`
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Overrides carries values supplied on the command line. Nil fields were
// not set and leave lower layers alone.
type Overrides struct {
	ConfigFile string
	DataFile   *string
	JSON       *bool
	LogLevel   *string
	LogFormat  *string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataFile: defaultDataFile(),
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Load builds the configuration:
// 1. Defaults
// 2. User config file (<user config dir>/tasks/config.toml)
// 3. Project config file (.tasks.toml in the working directory), or the
//    file named by Overrides.ConfigFile instead
// 4. .env in the working directory, then TASKS_* environment variables
// 5. Command-line overrides
func Load(o Overrides) (*Config, error) {
	cfg := Default()

	if path := userConfigFile(); path != "" {
		if err := loadOptionalFile(cfg, path); err != nil {
			return nil, err
		}
	}

	if o.ConfigFile != "" {
		if err := loadFile(cfg, o.ConfigFile); err != nil {
			return nil, err
		}
	} else if err := loadOptionalFile(cfg, ProjectConfigFile); err != nil {
		return nil, err
	}

	_ = godotenv.Load() // a missing .env is not an error
	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}

	applyOverrides(cfg, o)

	if err := finalize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("loading config file %s: %w", path, err)
	}
	return nil
}

func loadOptionalFile(cfg *Config, path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return loadFile(cfg, path)
}

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("TASKS_FILE"); v != "" {
		cfg.DataFile = v
	}
	if v := os.Getenv("TASKS_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TASKS_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("TASKS_JSON"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing TASKS_JSON=%q: %w", v, err)
		}
		cfg.JSON = b
	}
	return nil
}

func applyOverrides(cfg *Config, o Overrides) {
	if o.DataFile != nil {
		cfg.DataFile = *o.DataFile
	}
	if o.JSON != nil {
		cfg.JSON = *o.JSON
	}
	if o.LogLevel != nil {
		cfg.Log.Level = *o.LogLevel
	}
	if o.LogFormat != nil {
		cfg.Log.Format = *o.LogFormat
	}
}

// finalize expands ~ and makes the data file path absolute.
func finalize(cfg *Config) error {
	if strings.TrimSpace(cfg.DataFile) == "" {
		return errors.New("data_file must not be empty")
	}
	cfg.DataFile = expandPath(cfg.DataFile)
	if !filepath.IsAbs(cfg.DataFile) {
		abs, err := filepath.Abs(cfg.DataFile)
		if err != nil {
			return fmt.Errorf("resolving data file: %w", err)
		}
		cfg.DataFile = abs
	}
	return nil
}

func expandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func userConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appName, userConfigName)
}

// defaultDataFile lives next to the user config, falling back to the
// working directory when no config dir is known.
func defaultDataFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return storage.DefaultFileName
	}
	return filepath.Join(dir, appName, storage.DefaultFileName)
}
