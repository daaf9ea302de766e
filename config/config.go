// Package config loads the devfs configuration.
//
// Values are resolved in three layers: built-in defaults, an optional YAML
// file, and environment variables with the DEVFS_ prefix. Later layers win.
//
//	log:
//	  level: debug
//	  format: json
//	shell:
//	  timeout: 1m
//	  ssh_options: ["-o", "BatchMode=yes"]
//	remove:
//	  tmp_depth: 3
//
// The matching environment variables are DEVFS_LOG_LEVEL,
// DEVFS_LOG_FORMAT, DEVFS_SHELL_TIMEOUT, DEVFS_SHELL_SSH_OPTIONS
// (comma-separated) and DEVFS_REMOVE_TMP_DEPTH.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	perrors "github.com/jmgilman/devaccess/errors"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "DEVFS"

// Config holds all devfs configuration.
type Config struct {
	Log    LogConfig    `yaml:"log" envconfig:"LOG"`
	Shell  ShellConfig  `yaml:"shell" envconfig:"SHELL"`
	Remove RemoveConfig `yaml:"remove" envconfig:"REMOVE"`
	Temp   TempConfig   `yaml:"temp" envconfig:"TEMP"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `yaml:"level" envconfig:"LEVEL"`
	// Format is text or json.
	Format string `yaml:"format" envconfig:"FORMAT"`
	// Output is stderr, stdout or a file path.
	Output string `yaml:"output" envconfig:"OUTPUT"`
}

// ShellConfig configures the shell backend used for remote devices.
type ShellConfig struct {
	// Timeout bounds every command round trip. Zero disables the limit.
	Timeout     time.Duration `yaml:"timeout" envconfig:"TIMEOUT"`
	SSHOptions  []string      `yaml:"ssh_options" envconfig:"SSH_OPTIONS"`
	DisableFind bool          `yaml:"disable_find" envconfig:"DISABLE_FIND"`
	DisableTar  bool          `yaml:"disable_tar" envconfig:"DISABLE_TAR"`
}

// RemoveConfig holds the minimum number of path components a recursive
// remove on a remote device requires.
type RemoveConfig struct {
	HomeDepth    int `yaml:"home_depth" envconfig:"HOME_DEPTH"`
	TmpDepth     int `yaml:"tmp_depth" envconfig:"TMP_DEPTH"`
	DefaultDepth int `yaml:"default_depth" envconfig:"DEFAULT_DEPTH"`
}

// TempConfig configures temporary file creation without mktemp.
type TempConfig struct {
	MaxTries int `yaml:"max_tries" envconfig:"MAX_TRIES"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Shell: ShellConfig{
			Timeout: 30 * time.Second,
		},
		Remove: RemoveConfig{
			HomeDepth:    4,
			TmpDepth:     2,
			DefaultDepth: 3,
		},
		Temp: TempConfig{
			MaxTries: 10,
		},
	}
}

// Load resolves the configuration from the defaults, the YAML file at path
// and the environment. An empty path skips the file; a missing file is an
// error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			code := perrors.CodeInvalidConfig
			if errors.Is(err, fs.ErrNotExist) {
				code = perrors.CodeNotFound
			}
			return nil, perrors.Wrapf(err, code, "failed to read config file %s", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, perrors.Wrapf(err, perrors.CodeInvalidConfig, "failed to parse config file %s", path)
		}
	}

	// Fields carry no default tags, so unset variables keep the file values.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, perrors.Wrap(err, perrors.CodeInvalidConfig, "failed to load config from environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every value is usable.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return invalid("log.level", "unknown log level %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return invalid("log.format", "unknown log format %q", c.Log.Format)
	}
	if c.Shell.Timeout < 0 {
		return invalid("shell.timeout", "timeout must not be negative, got %s", c.Shell.Timeout)
	}

	depths := []struct {
		field string
		value int
	}{
		{"remove.home_depth", c.Remove.HomeDepth},
		{"remove.tmp_depth", c.Remove.TmpDepth},
		{"remove.default_depth", c.Remove.DefaultDepth},
		{"temp.max_tries", c.Temp.MaxTries},
	}
	for _, d := range depths {
		if d.value <= 0 {
			return invalid(d.field, "%s must be positive, got %d", d.field, d.value)
		}
	}
	return nil
}

func invalid(field, format string, args ...interface{}) error {
	return perrors.WithContext(perrors.Newf(perrors.CodeInvalidConfig, format, args...), "field", field)
}
