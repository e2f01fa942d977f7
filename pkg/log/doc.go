// Package log provides the logging abstraction used across cutviz.
//
// This package defines a Logger interface that can be implemented by
// any logging library. A zerolog adapter and a no-op logger are provided.
//
// # Usage
//
// Wrap an existing zerolog logger:
//
//	logger := log.NewZerologAdapterWithLogger(zerolog.New(os.Stderr))
//
// Or build the console logger used by the command line tool, which prints
// the level as a single glyph (". " for debug, "!" for warnings, and so on):
//
//	logger := log.NewZerologAdapterWithLogger(log.NewConsoleLogger(os.Stderr, zerolog.InfoLevel))
//
// Library code defaults to the no-op logger:
//
//	logger := log.NewNoopLogger()
package log
