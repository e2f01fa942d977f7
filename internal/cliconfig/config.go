package cliconfig

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/skirt-tools/cutviz/internal/domain"
)

// LedgerDirName is the directory, inside the output directory, that holds
// the default render ledger.
const LedgerDirName = ".cutviz"

// Config holds CLI configuration for cutviz.
type Config struct {
	SimDir string
	Prefix string
	OutDir string

	Decades            float64
	DPI                int
	DensityFigSize     FigSize
	TemperatureFigSize FigSize
	Format             string

	Interactive bool
	Incremental bool
	LedgerPath  string

	Debounce time.Duration
	LogLevel string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Decades:            5,
		DPI:                100,
		DensityFigSize:     FigSize{18, 6},
		Format:             "pdf",
		Debounce:           500 * time.Millisecond,
		LogLevel:           "info",
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.SimDir == "" {
		return fmt.Errorf("%w: sim-dir is required", domain.ErrInvalidConfig)
	}

	c.Format = strings.TrimPrefix(strings.ToLower(c.Format), ".")
	if c.Format != "pdf" && c.Format != "png" {
		return fmt.Errorf("%w: format must be pdf or png, got %q", domain.ErrInvalidConfig, c.Format)
	}
	if c.Decades <= 0 {
		return fmt.Errorf("%w: decades must be positive", domain.ErrInvalidConfig)
	}
	if c.DPI <= 0 {
		return fmt.Errorf("%w: dpi must be positive", domain.ErrInvalidConfig)
	}
	if !c.DensityFigSize.valid() {
		return fmt.Errorf("%w: density figure size must be positive", domain.ErrInvalidConfig)
	}
	// An unset temperature size is derived from the number of cuts.
	if !c.TemperatureFigSize.auto() && !c.TemperatureFigSize.valid() {
		return fmt.Errorf("%w: temperature figure size must be positive", domain.ErrInvalidConfig)
	}
	if c.Debounce <= 0 {
		return fmt.Errorf("%w: debounce must be positive", domain.ErrInvalidConfig)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level: %v", domain.ErrInvalidConfig, err)
	}

	if c.Incremental && c.LedgerPath == "" {
		dir := c.OutDir
		if dir == "" {
			dir = c.SimDir
		}
		c.LedgerPath = filepath.Join(dir, LedgerDirName, "ledger.db")
	}

	return nil
}

// FigSize is a figure size in inches, written "WIDTHxHEIGHT" (e.g. "18x6"),
// or "auto" for the zero size.
// It implements pflag.Value and encoding.TextUnmarshaler.
type FigSize [2]float64

func (f FigSize) String() string {
	if f.auto() {
		return "auto"
	}
	return strconv.FormatFloat(f[0], 'g', -1, 64) + "x" + strconv.FormatFloat(f[1], 'g', -1, 64)
}

// Set parses "WIDTHxHEIGHT"; a comma is accepted as separator too.
func (f *FigSize) Set(s string) error {
	if strings.EqualFold(strings.TrimSpace(s), "auto") {
		*f = FigSize{}
		return nil
	}
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		w, h, ok = strings.Cut(s, ",")
	}
	if !ok {
		return fmt.Errorf("figure size %q: want WIDTHxHEIGHT", s)
	}
	width, err := strconv.ParseFloat(strings.TrimSpace(w), 64)
	if err != nil {
		return fmt.Errorf("figure size %q: %w", s, err)
	}
	height, err := strconv.ParseFloat(strings.TrimSpace(h), 64)
	if err != nil {
		return fmt.Errorf("figure size %q: %w", s, err)
	}
	*f = FigSize{width, height}
	return nil
}

func (f *FigSize) Type() string { return "size" }

func (f *FigSize) UnmarshalText(b []byte) error { return f.Set(string(b)) }

func (f FigSize) valid() bool { return f[0] > 0 && f[1] > 0 }

func (f FigSize) auto() bool { return f == FigSize{} }

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setFloat sets a float64 value if positive and flag not changed.
func (s *configSetter) setFloat(flag string, value float64, dst *float64) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setFigSize sets a figure size if both dimensions are positive and flag not changed.
func (s *configSetter) setFigSize(flag string, value FigSize, dst *FigSize) {
	if !value.valid() || s.changed[flag] {
		return
	}
	*dst = value
}

// setBoolFromString parses a bool with strconv.ParseBool and sets the
// destination. Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = b
	return nil
}
