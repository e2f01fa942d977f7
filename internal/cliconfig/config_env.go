package cliconfig

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment variable read by cutviz.
const EnvPrefix = "CUTVIZ_"

// EnvConfig mirrors Config as read from CUTVIZ_* environment variables.
// Booleans stay strings so that an unset variable leaves the config alone.
type EnvConfig struct {
	SimDir             string  `env:"SIM_DIR"`
	Prefix             string  `env:"PREFIX"`
	OutDir             string  `env:"OUT_DIR"`
	Decades            float64 `env:"DECADES"`
	DPI                int     `env:"DPI"`
	DensityFigSize     FigSize `env:"DENSITY_FIG_SIZE"`
	TemperatureFigSize FigSize `env:"TEMPERATURE_FIG_SIZE"`
	Format             string  `env:"FORMAT"`
	Interactive        string  `env:"INTERACTIVE"`
	Incremental        string  `env:"INCREMENTAL"`
	LedgerPath         string  `env:"LEDGER_PATH"`
	Debounce           string  `env:"DEBOUNCE"`
	LogLevel           string  `env:"LOG_LEVEL"`
}

// LoadEnvConfig parses the CUTVIZ_* environment variables.
func LoadEnvConfig() (EnvConfig, error) {
	var ec EnvConfig
	if err := env.ParseWithOptions(&ec, env.Options{Prefix: EnvPrefix}); err != nil {
		return EnvConfig{}, fmt.Errorf("parse environment: %w", err)
	}
	return ec, nil
}

// ApplyEnvConfig applies configuration from environment variables (CUTVIZ_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	ec, err := LoadEnvConfig()
	if err != nil {
		return err
	}
	s := newConfigSetter(changed)

	s.setString("sim-dir", ec.SimDir, &cfg.SimDir)
	s.setString("prefix", ec.Prefix, &cfg.Prefix)
	s.setString("out-dir", ec.OutDir, &cfg.OutDir)
	s.setString("format", ec.Format, &cfg.Format)
	s.setString("ledger", ec.LedgerPath, &cfg.LedgerPath)
	s.setString("log-level", ec.LogLevel, &cfg.LogLevel)

	if err := s.setDuration("debounce", ec.Debounce, &cfg.Debounce); err != nil {
		return err
	}

	s.setFloat("decades", ec.Decades, &cfg.Decades)
	s.setInt("dpi", ec.DPI, &cfg.DPI)
	s.setFigSize("density-fig-size", ec.DensityFigSize, &cfg.DensityFigSize)
	s.setFigSize("temperature-fig-size", ec.TemperatureFigSize, &cfg.TemperatureFigSize)

	if err := s.setBoolFromString("interactive", ec.Interactive, &cfg.Interactive); err != nil {
		return err
	}
	if err := s.setBoolFromString("incremental", ec.Incremental, &cfg.Incremental); err != nil {
		return err
	}

	return nil
}
