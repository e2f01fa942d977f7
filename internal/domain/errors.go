package domain

import "errors"

// Domain errors returned by the public API. Check them with errors.Is.
var (
	// ErrUnsupportedSuffix is returned when a figure path has an extension
	// that no encoder handles.
	ErrUnsupportedSuffix = errors.New("cutviz: unsupported file suffix")

	// ErrNoPrimaryImage is returned when a FITS file has no image in its primary HDU.
	ErrNoPrimaryImage = errors.New("cutviz: no primary image")

	// ErrFrameShape is returned when a raster is not a single 2D plane.
	ErrFrameShape = errors.New("cutviz: unsupported frame shape")

	// ErrNoSimulation is returned when no simulation output matches a directory and prefix.
	ErrNoSimulation = errors.New("cutviz: no simulation found")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("cutviz: invalid configuration")

	// ErrAlreadyRunning is returned by Start when watching is already active.
	ErrAlreadyRunning = errors.New("cutviz: already running")

	// ErrNotRunning is returned by Stop when watching is not active.
	ErrNotRunning = errors.New("cutviz: not running")
)
