// Package config loads loopchart's settings from a TOML file and the
// environment.
//
// Settings only control how and where the built-in diagrams are exported;
// the diagrams themselves are fixed. Precedence, lowest first: [Default],
// the TOML file, LOOPCHART_* environment variables (including those loaded
// from .env), command-line flags.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/loopchart/pkg/cache"
	"github.com/matzehuels/loopchart/pkg/diagram"
	"github.com/matzehuels/loopchart/pkg/errors"
	"github.com/matzehuels/loopchart/pkg/pipeline"
)

// DefaultPath is read when no --config flag is given. It may be absent.
const DefaultPath = "loopchart.toml"

// Environment variables that override the file.
const (
	EnvOutput   = "LOOPCHART_OUTPUT"
	EnvBackend  = "LOOPCHART_BACKEND"
	EnvRedisURL = "LOOPCHART_REDIS_URL"
	EnvAddr     = "LOOPCHART_ADDR"
)

// DiagramConfig holds per-diagram export settings.
type DiagramConfig struct {
	Width    float64 `toml:"width"`
	Height   float64 `toml:"height"`
	Basename string  `toml:"basename"`
}

type CacheConfig struct {
	Dir      string        `toml:"dir"`
	RedisURL string        `toml:"redis_url"`
	TTL      time.Duration `toml:"ttl"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Config is the complete configuration.
type Config struct {
	Output  string        `toml:"output"`
	Formats []string      `toml:"formats"`
	Backend string        `toml:"backend"`
	Samples int           `toml:"samples"`
	Loop    DiagramConfig `toml:"loop"`
	Chart   DiagramConfig `toml:"chart"`
	Cache   CacheConfig   `toml:"cache"`
	Server  ServerConfig  `toml:"server"`
}

// Default returns the built-in configuration.
func Default() *Config {
	lw, lh := pipeline.DefaultSize(diagram.KindLoop)
	cw, ch := pipeline.DefaultSize(diagram.KindChart)
	return &Config{
		Output:  ".",
		Formats: append([]string(nil), pipeline.DefaultFormats...),
		Backend: pipeline.DefaultBackend,
		Samples: pipeline.DefaultSamples,
		Loop:    DiagramConfig{Width: lw, Height: lh, Basename: diagram.KindLoop.Basename()},
		Chart:   DiagramConfig{Width: cw, Height: ch, Basename: diagram.KindChart.Basename()},
		Cache:   CacheConfig{TTL: cache.DefaultTTL},
		Server:  ServerConfig{Addr: ":8080"},
	}
}

// Load reads path on top of [Default]. An empty path reads [DefaultPath] if
// it exists; an explicit path that does not exist is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// LoadEnv loads .env files into the process environment. Missing files are
// ignored; variables already set win.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "load env")
	}
	return nil
}

// ApplyEnv overrides settings from LOOPCHART_* variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvOutput); v != "" {
		c.Output = v
	}
	if v := os.Getenv(EnvBackend); v != "" {
		c.Backend = v
	}
	if v := os.Getenv(EnvRedisURL); v != "" {
		c.Cache.RedisURL = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
}

// Validate checks formats, backend, sizes and output names.
func (c *Config) Validate() error {
	if err := pipeline.ValidateFormats(c.Formats); err != nil {
		return err
	}
	if err := pipeline.ValidateBackend(c.Backend); err != nil {
		return err
	}
	if c.Samples < 2 || c.Samples > pipeline.MaxSamples {
		return errors.New(errors.ErrCodeInvalidConfig, "samples must be in [2, %d], got %d", pipeline.MaxSamples, c.Samples)
	}
	for name, d := range map[string]DiagramConfig{"loop": c.Loop, "chart": c.Chart} {
		if err := pipeline.ValidateSize(d.Width, d.Height); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[%s] invalid size", name)
		}
		if err := errors.ValidateBasename(d.Basename); err != nil {
			return err
		}
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	return errors.ValidateOutputDir(c.Output)
}

// Diagram returns the settings for k.
func (c *Config) Diagram(k diagram.Kind) DiagramConfig {
	if k == diagram.KindChart {
		return c.Chart
	}
	return c.Loop
}
