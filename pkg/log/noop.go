package log

// NoopLogger discards everything. It is the default logger of library code
// until a caller injects one.
type NoopLogger struct{}

var _ Logger = NoopLogger{}

// NewNoopLogger returns a Logger that discards all messages.
func NewNoopLogger() Logger {
	return NoopLogger{}
}

func (NoopLogger) Debug(string, ...Field) {}
func (NoopLogger) Info(string, ...Field)  {}
func (NoopLogger) Warn(string, ...Field)  {}
func (NoopLogger) Error(string, ...Field) {}
