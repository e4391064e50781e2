package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Stress  StressConfig  `toml:"stress" yaml:"stress"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

// StressConfig drives cmd/ces-stress. Components is the size of the
// generated component name pool, QuerySystems the number of systems owning
// one family each and ChurnPerUpdate the component mutations queued per
// update. A zero Seed picks a time based seed.
type StressConfig struct {
	Duration       time.Duration `toml:"duration" yaml:"duration"`
	Entities       int           `toml:"entities" yaml:"entities"`
	Worlds         int           `toml:"worlds" yaml:"worlds"`
	Components     int           `toml:"components" yaml:"components"`
	QuerySystems   int           `toml:"query_systems" yaml:"query_systems"`
	MaxQueryNames  int           `toml:"max_query_names" yaml:"max_query_names"`
	ChurnPerUpdate int           `toml:"churn" yaml:"churn"`
	Seed           int64         `toml:"seed" yaml:"seed"`
	GCPauseMetrics bool          `toml:"gc_pause_metrics" yaml:"gc_pause_metrics"`
	Canonical      bool          `toml:"canonical_signatures" yaml:"canonical_signatures"`
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "console" or "json"
}

// Load reads path over the defaults. The decoder is picked from the file
// extension: .toml, .yaml or .yml.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("parse config %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaults()
}

func defaults() *Config {
	return &Config{
		Stress: StressConfig{
			Duration:       10 * time.Second,
			Entities:       10000,
			Worlds:         1,
			Components:     250,
			QuerySystems:   50,
			MaxQueryNames:  3,
			ChurnPerUpdate: 100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	positive := []struct {
		name  string
		value int
	}{
		{"stress.entities", c.Stress.Entities},
		{"stress.worlds", c.Stress.Worlds},
		{"stress.components", c.Stress.Components},
		{"stress.max_query_names", c.Stress.MaxQueryNames},
	}
	for _, p := range positive {
		if p.value <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", p.name, p.value))
		}
	}
	if c.Stress.Duration <= 0 {
		errs = append(errs, fmt.Errorf("stress.duration must be positive, got %s", c.Stress.Duration))
	}
	if c.Stress.QuerySystems < 0 {
		errs = append(errs, fmt.Errorf("stress.query_systems must not be negative, got %d", c.Stress.QuerySystems))
	}
	if c.Stress.ChurnPerUpdate < 0 {
		errs = append(errs, fmt.Errorf("stress.churn must not be negative, got %d", c.Stress.ChurnPerUpdate))
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format))
	}
	return errors.Join(errs...)
}
