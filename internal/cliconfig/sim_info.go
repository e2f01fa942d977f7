package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/skirt-tools/cutviz/internal/adapters/fs"
	"github.com/skirt-tools/cutviz/internal/domain"
	"github.com/skirt-tools/cutviz/internal/paths"
)

// LoadSimInfo resolves the simulation output directory and checks that it
// holds simulation output. When Prefix is set, the corresponding
// <prefix>_parameters.xml must exist; otherwise at least one parameters file
// must be present.
func LoadSimInfo(cfg *Config) error {
	dir, err := paths.Absolute(cfg.SimDir)
	if err != nil {
		return fmt.Errorf("resolve sim-dir: %w", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("sim-dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: sim-dir %s is not a directory", domain.ErrInvalidConfig, dir)
	}
	cfg.SimDir = dir

	if cfg.Prefix != "" {
		params := filepath.Join(dir, cfg.Prefix+fs.ParametersSuffix)
		if !FileExists(params) {
			return fmt.Errorf("%w: %s", domain.ErrNoSimulation, params)
		}
		return nil
	}

	prefixes, err := fs.Prefixes(dir)
	if err != nil {
		return fmt.Errorf("list simulations: %w", err)
	}
	if len(prefixes) == 0 {
		return fmt.Errorf("%w: no *%s in %s", domain.ErrNoSimulation, fs.ParametersSuffix, dir)
	}
	return nil
}
