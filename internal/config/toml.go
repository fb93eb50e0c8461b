// Package config loads user defaults from a TOML file and the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/alexiusacademia/eurobeam/internal/beam"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Defaults DefaultsConfig `toml:"defaults"`
	Limits   LimitsConfig   `toml:"limits"`
	UI       UIConfig       `toml:"ui"`
	Server   ServerFile     `toml:"server"`
}

// DefaultsConfig maps the starting beam parameters. Unset keys keep the
// built-in values.
type DefaultsConfig struct {
	Support        *string  `toml:"support"`
	SpanM          *float64 `toml:"span_m"`
	UniformLoadKNm *float64 `toml:"uniform_load_knm"`
	PointLoadKN    *float64 `toml:"point_load_kn"`
	WidthMM        *float64 `toml:"width_mm"`
	HeightMM       *float64 `toml:"height_mm"`
	CoverMM        *float64 `toml:"cover_mm"`
	BarDiameterMM  *float64 `toml:"bar_diameter_mm"`
	ConcreteFckMPa *float64 `toml:"concrete_fck_mpa"`
	SteelFykMPa    *float64 `toml:"steel_fyk_mpa"`
}

// LimitsConfig maps the accepted input ranges
type LimitsConfig struct {
	Span        *beam.Range `toml:"span_m"`
	UniformLoad *beam.Range `toml:"uniform_load_knm"`
	PointLoad   *beam.Range `toml:"point_load_kn"`
	Width       *beam.Range `toml:"width_mm"`
	Height      *beam.Range `toml:"height_mm"`
	Cover       *beam.Range `toml:"cover_mm"`
}

// UIConfig maps display settings
type UIConfig struct {
	Lang *string `toml:"lang"`
	Dark *bool   `toml:"dark"`
}

// ServerFile maps HTTP server settings
type ServerFile struct {
	Addr  *string  `toml:"addr"`
	Rate  *float64 `toml:"rate"`
	Burst *int     `toml:"burst"`
}

// Config is the resolved configuration
type Config struct {
	Input    beam.BeamInput
	Limits   beam.Limits
	Lang     string
	Dark     bool
	LogLevel string
	Server   ServerConfig
}

// ServerConfig holds the HTTP listener settings
type ServerConfig struct {
	Addr  string
	Rate  float64 // requests per second per client
	Burst int
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Input:    beam.DefaultInput(),
		Limits:   beam.DefaultLimits(),
		Lang:     "en",
		LogLevel: "info",
		Server: ServerConfig{
			Addr:  ":8080",
			Rate:  5,
			Burst: 10,
		},
	}
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slog.Warn("unknown config keys ignored", "path", path, "keys", strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Load resolves the configuration from built-in values, the file at path,
// the environment and finally overrides (command-line flags), in that order.
// The result is validated once every layer is applied.
func Load(path string, overrides ...func(*Config)) (Config, error) {
	fc, err := LoadConfig(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	if err := fc.Apply(&cfg); err != nil {
		return Config{}, err
	}
	ApplyEnv(&cfg)
	for _, o := range overrides {
		o(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Apply overlays the values set in the file onto cfg
func (fc FileConfig) Apply(cfg *Config) error {
	d := fc.Defaults
	if d.Support != nil {
		s, err := beam.ParseSupport(*d.Support)
		if err != nil {
			return fmt.Errorf("config: defaults: %w", err)
		}
		cfg.Input.Support = s
	}
	setFloat(&cfg.Input.SpanM, d.SpanM)
	setFloat(&cfg.Input.UniformLoadKNm, d.UniformLoadKNm)
	setFloat(&cfg.Input.PointLoadKN, d.PointLoadKN)
	setFloat(&cfg.Input.WidthMM, d.WidthMM)
	setFloat(&cfg.Input.HeightMM, d.HeightMM)
	setFloat(&cfg.Input.CoverMM, d.CoverMM)
	setFloat(&cfg.Input.BarDiameterMM, d.BarDiameterMM)
	setFloat(&cfg.Input.ConcreteFckMPa, d.ConcreteFckMPa)
	setFloat(&cfg.Input.SteelFykMPa, d.SteelFykMPa)

	l := fc.Limits
	setRange(&cfg.Limits.Span, l.Span)
	setRange(&cfg.Limits.UniformLoad, l.UniformLoad)
	setRange(&cfg.Limits.PointLoad, l.PointLoad)
	setRange(&cfg.Limits.Width, l.Width)
	setRange(&cfg.Limits.Height, l.Height)
	setRange(&cfg.Limits.Cover, l.Cover)

	if fc.UI.Lang != nil {
		cfg.Lang = *fc.UI.Lang
	}
	if fc.UI.Dark != nil {
		cfg.Dark = *fc.UI.Dark
	}
	if fc.Server.Addr != nil {
		cfg.Server.Addr = *fc.Server.Addr
	}
	if fc.Server.Rate != nil {
		cfg.Server.Rate = *fc.Server.Rate
	}
	if fc.Server.Burst != nil {
		cfg.Server.Burst = *fc.Server.Burst
	}
	return nil
}

func setFloat(dst, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setRange(dst, v *beam.Range) {
	if v != nil {
		*dst = *v
	}
}

// ApplyEnv overlays EUROBEAM_* environment variables onto cfg
func ApplyEnv(cfg *Config) {
	cfg.Lang = envStr("EUROBEAM_LANG", cfg.Lang)
	cfg.LogLevel = envStr("EUROBEAM_LOG_LEVEL", cfg.LogLevel)
	cfg.Server.Addr = envStr("EUROBEAM_ADDR", cfg.Server.Addr)
	cfg.Server.Rate = envFloat("EUROBEAM_RATE", cfg.Server.Rate)
	cfg.Server.Burst = envInt("EUROBEAM_BURST", cfg.Server.Burst)
}

// Validate checks that the resolved values are usable
func (c Config) Validate() error {
	var errs []error
	ranges := []struct {
		name string
		r    beam.Range
	}{
		{"span_m", c.Limits.Span},
		{"uniform_load_knm", c.Limits.UniformLoad},
		{"point_load_kn", c.Limits.PointLoad},
		{"width_mm", c.Limits.Width},
		{"height_mm", c.Limits.Height},
		{"cover_mm", c.Limits.Cover},
	}
	for _, r := range ranges {
		if r.r.Min > r.r.Max {
			errs = append(errs, fmt.Errorf("config: limits.%s: min %g exceeds max %g", r.name, r.r.Min, r.r.Max))
		}
	}
	if err := c.Input.ValidateWithin(c.Limits); err != nil {
		errs = append(errs, fmt.Errorf("config: defaults: %w", err))
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.Server.Rate <= 0 {
		errs = append(errs, fmt.Errorf("config: server.rate must be positive"))
	}
	if c.Server.Burst < 1 {
		errs = append(errs, fmt.Errorf("config: server.burst must be at least 1"))
	}
	return errors.Join(errs...)
}

// ParseLogLevel maps debug, info, warn or error to a slog level
func ParseLogLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("config: log level %q: %w", s, err)
	}
	return lvl, nil
}

// ErrConfigExists is returned by WriteDefault when it would overwrite a file
var ErrConfigExists = errors.New("config file already exists")

// WriteDefault writes the commented default file to path. An existing
// file is kept unless overwrite is set.
func WriteDefault(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w", path, ErrConfigExists)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	return os.WriteFile(path, []byte(DefaultFile), 0o644)
}

// DefaultFile is the commented config written by WriteDefault
const DefaultFile = `# eurobeam configuration

[defaults]
# simply-supported or cantilever
support = "simply-supported"
span_m = 5.0
uniform_load_knm = 10.0
point_load_kn = 0.0
width_mm = 300.0
height_mm = 500.0
cover_mm = 25.0
# 8, 10, 12, 14, 16, 20, 25 or 32
bar_diameter_mm = 16.0
# 20, 25, 30, 35 or 40
concrete_fck_mpa = 30.0
# 500 or 550
steel_fyk_mpa = 500.0

[limits]
span_m = { min = 1.0, max = 20.0 }
uniform_load_knm = { min = 0.0, max = 100.0 }
point_load_kn = { min = 0.0, max = 100.0 }
width_mm = { min = 100.0, max = 1000.0 }
height_mm = { min = 100.0, max = 1500.0 }
cover_mm = { min = 10.0, max = 100.0 }

[ui]
# en, de, fr or it
lang = "en"
dark = false

[server]
addr = ":8080"
# requests per second per client
rate = 5.0
burst = 10
`

func envStr(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func envFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
