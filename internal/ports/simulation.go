package ports

// Simulation is a handle on the output of one simulation run.
type Simulation interface {
	// Prefix returns the simulation prefix shared by all output file names.
	Prefix() string

	// Probes returns the probes configured for the simulation, in declaration order.
	Probes() []Probe

	// OutFilePath returns the path of an output file with the given name,
	// i.e. "<outdir>/<prefix>_<name>".
	OutFilePath(name string) string
}

// Probe is a configured measurement instrument producing output files.
type Probe interface {
	// Type returns the probe's type name, e.g. "DefaultMediaDensityCutsProbe".
	Type() string

	// Name returns the user-assigned probe name.
	Name() string

	// OutFilePaths returns the sorted paths of existing output files of this
	// probe whose name (after "<prefix>_<probe>_") matches the glob pattern.
	OutFilePaths(pattern string) ([]string, error)
}
