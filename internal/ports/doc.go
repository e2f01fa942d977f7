// Package ports defines the interfaces (ports) that connect the plotting
// use cases to infrastructure adapters.
//
// # Port Interfaces
//
//   - [Simulation] and [Probe]: a simulation handle exposing its probes and
//     resolving output file paths
//   - [FrameLoader]: loads rasters from simulation output files
//   - [FigureEncoder]: writes rendered figures to disk
//   - [RenderLedger]: remembers which inputs a figure was rendered from
//   - [Logger]: structured logging abstraction
//
// # Usage
//
// The application layer (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement them with FITS
// decoding, ski file parsing, PNG/PDF encoding and bbolt storage.
package ports
