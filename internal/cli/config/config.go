// Package config loads the tristate CLI configuration file.
//
// Every setting is optional. Settings are tri-state values, so a key left out
// of the file stays Absent and the CLI falls back to its own default.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"github.com/joho/godotenv"

	"github.com/tansive/tristate/internal/common/apperrors"
	"github.com/tansive/tristate/internal/sqlpatch"
	"github.com/tansive/tristate/pkg/tristate"
)

// DefaultConfigFile is the name of the config file in the user config directory.
const DefaultConfigFile = "config.toml"

// FormatVersion is the current version of the configuration file format.
const FormatVersion = "0.1.0"

// EnvDSN overrides database.dsn when set.
const EnvDSN = "TRISTATE_DSN"

var formatConstraint *semver.Constraints

func init() {
	var err error
	formatConstraint, err = semver.NewConstraint("~" + FormatVersion)
	if err != nil {
		panic(err)
	}
}

var (
	ErrConfig        = apperrors.New("configuration error").SetExitCode(apperrors.ExitUsage)
	ErrReadConfig    = ErrConfig.New("unable to read config file")
	ErrParseConfig   = ErrConfig.New("unable to parse config file")
	ErrFormatVersion = ErrConfig.New("unsupported config file format version")
	ErrInvalidConfig = ErrConfig.New("invalid configuration")
	ErrNoDSN         = ErrConfig.New("no database configured; set database.dsn or " + EnvDSN)
)

// DatabaseConfig holds the settings of the sql command.
type DatabaseConfig struct {
	DSN            tristate.Value[string]   `toml:"dsn"`             // PostgreSQL connection string
	Schema         tristate.Value[string]   `toml:"schema"`          // Schema prefixed to unqualified tables
	AllowedColumns tristate.Value[[]string] `toml:"allowed_columns"` // Columns a patch may touch
}

// RetryConfig holds the retry policy for statement execution.
type RetryConfig struct {
	Attempts tristate.Value[int]    `toml:"attempts"`
	Delay    tristate.Value[string] `toml:"delay"` // time.ParseDuration format
}

// Config is the CLI configuration.
type Config struct {
	FormatVersion string                 `toml:"format_version"`
	LogLevel      tristate.Value[string] `toml:"log_level"`
	Color         tristate.Value[bool]   `toml:"color"`
	Database      DatabaseConfig         `toml:"database"`
	Retry         RetryConfig            `toml:"retry"`
}

// DefaultPath returns the default config file path, e.g.
// ~/.config/tristate/config.toml on Linux.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", ErrReadConfig.Err(err)
	}
	return filepath.Join(dir, "tristate", DefaultConfigFile), nil
}

// Load reads the config file at path. An empty path selects DefaultPath, and
// a missing default file yields an empty configuration. A .env file in the
// working directory is loaded first so the environment overrides can come
// from it.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // no error if .env doesn't exist

	explicit := path != ""
	if !explicit {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		if cfg, err = Parse(content); err != nil {
			return nil, err
		}
	case os.IsNotExist(err) && !explicit:
	default:
		return nil, ErrReadConfig.At(path).Err(err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// Parse decodes and validates a config document.
func Parse(content []byte) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.Decode(string(content), cfg); err != nil {
		return nil, ErrParseConfig.Err(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if dsn := strings.TrimSpace(os.Getenv(EnvDSN)); dsn != "" {
		c.Database.DSN = tristate.Present(dsn)
	}
}

// Validate checks the format version and the values that need parsing.
func (c *Config) Validate() error {
	v, err := semver.NewVersion(c.FormatVersion)
	if err != nil {
		return ErrFormatVersion.At("format_version").Err(err)
	}
	if !formatConstraint.Check(v) {
		return ErrFormatVersion.At("format_version").Msg("unsupported config file format version " + c.FormatVersion)
	}
	if c.Retry.Attempts.IsPresentAnd(func(n int) bool { return n < 1 }) {
		return ErrInvalidConfig.At("retry.attempts").Msg("retry attempts must be at least 1")
	}
	if err := tristate.MapOrZero(c.Retry.Delay, checkDuration); err != nil {
		return ErrInvalidConfig.At("retry.delay").Err(err)
	}
	return nil
}

func checkDuration(s string) error {
	_, err := time.ParseDuration(s)
	return err
}

// DSN returns the configured connection string.
func (c *Config) DSN() (string, error) {
	return c.Database.DSN.OkOr(ErrNoDSN)
}

// Table qualifies table with the configured schema unless it already names one.
func (c *Config) Table(table string) string {
	if strings.Contains(table, ".") {
		return table
	}
	return tristate.MapOr(c.Database.Schema, table, func(schema string) string {
		return schema + "." + table
	})
}

// PatchOptions returns the column restrictions for the sql command.
func (c *Config) PatchOptions() sqlpatch.Options {
	return sqlpatch.Options{Allowed: c.Database.AllowedColumns.UnwrapOrZero()}
}

// RetryPolicy returns the configured retry policy, falling back to
// sqlpatch.DefaultRetryPolicy for the settings that are left out.
func (c *Config) RetryPolicy() sqlpatch.RetryPolicy {
	p := sqlpatch.DefaultRetryPolicy
	if n, ok := c.Retry.Attempts.Get(); ok {
		p.Attempts = uint(n)
	}
	if s, ok := c.Retry.Delay.Get(); ok {
		if d, err := time.ParseDuration(s); err == nil {
			p.Delay = d
		}
	}
	return p
}
