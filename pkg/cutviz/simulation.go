package cutviz

import (
	"github.com/skirt-tools/cutviz/internal/adapters/fs"
	"github.com/skirt-tools/cutviz/internal/app"
	"github.com/skirt-tools/cutviz/internal/domain"
	"github.com/skirt-tools/cutviz/internal/paths"
)

// OpenSimulation returns a handle on the simulation configured by the given
// ski (or parameters) file whose output lives in outDirPath.
func OpenSimulation(skiFilePath, outDirPath string) (Simulation, error) {
	sim, err := fs.OpenSimulation(skiFilePath, outDirPath)
	if err != nil {
		return nil, err
	}
	return sim, nil
}

// FromOutputDir returns the simulation with the given prefix in outDirPath.
func FromOutputDir(outDirPath, prefix string) (Simulation, error) {
	sim, err := fs.FromOutputDir(outDirPath, prefix)
	if err != nil {
		return nil, err
	}
	return sim, nil
}

// CreateSimulations returns the simulations in outDirPath, sorted by prefix,
// or only the one with the given prefix when it is not empty.
func CreateSimulations(outDirPath, prefix string) ([]Simulation, error) {
	found, err := fs.CreateSimulations(outDirPath, prefix)
	if err != nil {
		return nil, err
	}
	sims := make([]Simulation, len(found))
	for i, s := range found {
		sims[i] = s
	}
	return sims, nil
}

// Root returns the absolute path of the cutviz installation directory.
func Root() (string, error) {
	return paths.Root()
}

// SaveOptions overrides parts of a figure's default save path.
type SaveOptions = paths.SaveOptions

// SaveSuffixes lists the figure file extensions the plotting operations write.
var SaveSuffixes = app.SaveSuffixes

// Absolute expands a leading "~" and makes p absolute relative to the
// working directory.
func Absolute(p string) (string, error) {
	return paths.Absolute(p)
}

// SavePath returns the path a figure with default path defFilePath is saved
// to under opts. OutFilePath wins; otherwise OutDirPath and OutFileName
// replace the directory and the name. The suffix must be one of suffixes,
// else the error wraps ErrUnsupportedSuffix.
func SavePath(defFilePath string, suffixes []string, opts SaveOptions) (string, error) {
	return paths.SavePath(defFilePath, suffixes, opts)
}

// ErrUnsupportedSuffix is returned when a figure path has an extension no
// encoder handles.
var ErrUnsupportedSuffix = domain.ErrUnsupportedSuffix

// SetInteractive sets the process-wide interactive default. In interactive
// mode figures are returned to the caller instead of being saved.
func SetInteractive(on bool) {
	paths.SetInteractive(on)
}

// Interactive returns *flag when set, otherwise the process-wide default.
func Interactive(flag *bool) bool {
	return paths.Interactive(flag)
}

// DisplayFloor returns vmax / 10^decades, the lowest value shown in a density figure.
func DisplayFloor(vmax, decades float64) float64 {
	return app.DisplayFloor(vmax, decades)
}

// DefaultSaveName returns "{probe}_{medium}_{cut}.{ext}".
func DefaultSaveName(probe, medium, cut, ext string) string {
	return app.DefaultSaveName(probe, domain.Medium(medium), cut, ext)
}

// ClipBelow replaces every value in data smaller than floor by floor.
func ClipBelow(data []float64, floor float64) {
	domain.ClipBelow(data, floor)
}
