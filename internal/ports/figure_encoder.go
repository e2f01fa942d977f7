package ports

import "image"

// FigureEncoder persists a rendered figure.
// The file format is selected from the extension of path.
type FigureEncoder interface {
	Save(path string, img image.Image) error
}
