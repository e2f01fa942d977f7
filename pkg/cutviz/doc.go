// Package cutviz plots planar cuts produced by SKIRT simulations.
//
// It renders the media density cuts and the medium temperature cuts written
// by the corresponding probes to PDF or PNG figures, and can watch an output
// directory to re-plot while a simulation is running.
//
// # Basic Usage
//
//	p, err := cutviz.New(cutviz.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Close()
//
//	sims, err := cutviz.CreateSimulations("/path/to/output", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, sim := range sims {
//	    if _, err := p.Run(ctx, sim, cutviz.MediaDensityCuts, cutviz.TemperatureCuts); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Output Files
//
// Figures are saved next to the simulation output as
// "<prefix>_<probe>_<medium>_<cut>.pdf" (density) and
// "<prefix>_<probe>_<medium>_T.pdf" (temperature). The OutDirPath,
// OutFileName and OutFilePath fields of [Config] override parts of that
// path. In interactive mode nothing is saved and the rendered images are
// returned in [Figure.Image].
//
// # Incremental Rendering
//
// With [Config.Incremental] set, a bbolt ledger at [Config.LedgerPath]
// remembers the input files of each figure; figures whose inputs did not
// change since they were saved are skipped. A custom ledger can be injected
// with [WithLedger].
//
// # Plugins
//
// Plugins run while the plotter is started with [Plotter.Start]:
//
//	import "github.com/skirt-tools/cutviz/plugins/outputwatcher"
//
//	p, err := cutviz.New(cfg, outputwatcher.WithOutputWatcher(outputwatcher.DefaultConfig()))
//	...
//	err = p.Start(ctx, "/path/to/output", cutviz.MediaDensityCuts)
package cutviz
