package ports

// RenderLedger remembers the settings and input files each figure was
// rendered from, so that unchanged figures can be skipped.
type RenderLedger interface {
	// Unchanged reports whether output exists and was last recorded with
	// the same settings and with inputs identical (path, size, modification
	// time) to the current ones.
	Unchanged(output, settings string, inputs []string) (bool, error)

	// Record stores settings and the current fingerprint of inputs for output.
	Record(output, settings string, inputs []string) error

	// Close releases the ledger's resources.
	Close() error
}
