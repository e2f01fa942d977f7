package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations and arrays for
// figure sizes to make TOML friendly.
type FileConfig struct {
	SimDir             string    `toml:"sim_dir"`
	Prefix             string    `toml:"prefix"`
	OutDir             string    `toml:"out_dir"`
	Decades            float64   `toml:"decades"`
	DPI                int       `toml:"dpi"`
	DensityFigSize     []float64 `toml:"density_fig_size"`
	TemperatureFigSize []float64 `toml:"temperature_fig_size"`
	Format             string    `toml:"format"`
	Interactive        *bool     `toml:"interactive"`
	Incremental        *bool     `toml:"incremental"`
	LedgerPath         string    `toml:"ledger_path"`
	Debounce           string    `toml:"debounce"`
	LogLevel           string    `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.cutviz/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".cutviz", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("sim-dir", fc.SimDir, &cfg.SimDir)
	s.setString("prefix", fc.Prefix, &cfg.Prefix)
	s.setString("out-dir", fc.OutDir, &cfg.OutDir)
	s.setString("format", fc.Format, &cfg.Format)
	s.setString("ledger", fc.LedgerPath, &cfg.LedgerPath)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if err := s.setDuration("debounce", fc.Debounce, &cfg.Debounce); err != nil {
		return err
	}

	s.setFloat("decades", fc.Decades, &cfg.Decades)
	s.setInt("dpi", fc.DPI, &cfg.DPI)

	density, err := figSizeOf("density_fig_size", fc.DensityFigSize)
	if err != nil {
		return err
	}
	s.setFigSize("density-fig-size", density, &cfg.DensityFigSize)
	temperature, err := figSizeOf("temperature_fig_size", fc.TemperatureFigSize)
	if err != nil {
		return err
	}
	s.setFigSize("temperature-fig-size", temperature, &cfg.TemperatureFigSize)

	s.setBool("interactive", fc.Interactive, &cfg.Interactive)
	s.setBool("incremental", fc.Incremental, &cfg.Incremental)

	return nil
}

// figSizeOf converts a TOML [width, height] array. An absent key yields the
// zero size, which the setter ignores.
func figSizeOf(key string, v []float64) (FigSize, error) {
	switch len(v) {
	case 0:
		return FigSize{}, nil
	case 2:
		return FigSize{v[0], v[1]}, nil
	}
	return FigSize{}, fmt.Errorf("parse %s: want [width, height], got %d values", key, len(v))
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
