// Package domain contains the value types shared by the cutviz layers.
//
// It has no dependencies on infrastructure concerns (FITS decoding, image
// encoding, logging) and holds only the vocabulary of the plots.
//
// # Types
//
//   - [Frame]: a 2D raster loaded from a simulation output file, with units
//     and a coordinate grid for each axis
//   - [Medium]: the medium indicator used in output file names (dust, elec, gas)
//   - [Cut]: a planar slice through the simulated volume (xy, xz, yz)
package domain
