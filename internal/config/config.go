// Package config loads the optional TOML configuration file for the CLI.
// Flags override config values; config values override defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/moodclip/clipsuggest/internal/types"
)

// Log contains logging configuration.
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Engine contains highlight engine invocation parameters. The scoring
// constants themselves are fixed in code and deliberately not configurable.
type Engine struct {
	Limit       int    `toml:"limit"`
	Units       string `toml:"units"`
	LegacyUnits bool   `toml:"legacy_units"`
}

// Config is the full file shape.
type Config struct {
	DatabasePath string `toml:"database_path"`
	Engine       Engine `toml:"engine"`
	Log          Log    `toml:"log"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		DatabasePath: "clipsuggest.db",
		Engine: Engine{
			Limit:       5,
			Units:       string(types.UnitSeconds),
			LegacyUnits: true,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the config at path, layered over defaults. An empty path or a
// missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values no command could act on.
func (c Config) Validate() error {
	if c.Engine.Limit <= 0 {
		return fmt.Errorf("engine.limit must be > 0, got %d", c.Engine.Limit)
	}
	switch types.TimeUnit(c.Engine.Units) {
	case types.UnitSeconds, types.UnitCentiseconds, types.UnitMilliseconds, types.UnitMinutes:
	default:
		return fmt.Errorf("engine.units: unknown unit %q", c.Engine.Units)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format: unsupported value %q", c.Log.Format)
	}
	return nil
}
