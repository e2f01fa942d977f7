package ports

import "github.com/skirt-tools/cutviz/internal/domain"

// FrameLoader reads a 2D raster, its units and its coordinate axes from a file.
type FrameLoader interface {
	LoadFrame(path string) (domain.Frame, error)
}
