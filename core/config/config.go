// Package config loads the portal configuration from an optional TOML file and
// PORTAL_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/asaidimu/go-portal/core/query"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap/zapcore"
)

// Store drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Log formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Log   LogConfig   `toml:"log"`
	Store StoreConfig `toml:"store"`
	Clock ClockConfig `toml:"clock"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type StoreConfig struct {
	Driver string `toml:"driver"`
	// DSN is the sqlite data source, a file path or ":memory:".
	DSN         string `toml:"dsn"`
	TablePrefix string `toml:"table_prefix"`
}

// ClockConfig pins the clock used for time-dependent fields such as
// seniority. An empty Now means the wall clock.
type ClockConfig struct {
	Now string `toml:"now"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Log:   LogConfig{Level: "info", Format: FormatConsole},
		Store: StoreConfig{Driver: DriverMemory, TablePrefix: "portal_"},
	}
}

// Load reads path (when not empty) over the defaults, applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := cfg.decode(data); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML data over the defaults and validates it. The
// environment is not consulted.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(data); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	overrides := []struct {
		key    string
		target *string
	}{
		{"PORTAL_LOG_LEVEL", &c.Log.Level},
		{"PORTAL_LOG_FORMAT", &c.Log.Format},
		{"PORTAL_STORE_DRIVER", &c.Store.Driver},
		{"PORTAL_STORE_DSN", &c.Store.DSN},
		{"PORTAL_STORE_TABLE_PREFIX", &c.Store.TablePrefix},
		{"PORTAL_CLOCK_NOW", &c.Clock.Now},
	}
	for _, o := range overrides {
		if v, ok := lookup(o.key); ok {
			*o.target = v
		}
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}
	switch c.Log.Format {
	case FormatJSON, FormatConsole:
	default:
		return fmt.Errorf("%w: log.format must be %q or %q, got %q", ErrInvalidConfig, FormatJSON, FormatConsole, c.Log.Format)
	}
	switch c.Store.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Store.DSN == "" {
			return fmt.Errorf("%w: store.dsn is required for the sqlite driver", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store.driver %q", ErrInvalidConfig, c.Store.Driver)
	}
	if c.Clock.Now != "" {
		if _, ok := c.pinnedTime(); !ok {
			return fmt.Errorf("%w: clock.now %q is not a date", ErrInvalidConfig, c.Clock.Now)
		}
	}
	return nil
}

// Now returns the configured clock. It must only be called on a validated
// configuration.
func (c *Config) Now() func() time.Time {
	if c.Clock.Now == "" {
		return time.Now
	}
	t, ok := c.pinnedTime()
	if !ok {
		return time.Now
	}
	return func() time.Time { return t }
}

// pinnedTime parses clock.now with the parser the query engine uses for
// record dates.
func (c *Config) pinnedTime() (time.Time, bool) {
	return query.ToTime(c.Clock.Now)
}
