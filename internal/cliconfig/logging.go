package cliconfig

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/skirt-tools/cutviz/pkg/log"
)

var logger = log.NewConsoleLogger(os.Stderr, zerolog.InfoLevel)

// Logger returns the CLI logger.
func Logger() zerolog.Logger {
	return logger
}

// SetLogLevel changes the level of the CLI logger, e.g. "debug".
func SetLogLevel(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	logger = logger.Level(lvl)
	return nil
}
