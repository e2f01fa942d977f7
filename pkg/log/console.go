package log

import (
	"io"

	"github.com/rs/zerolog"
)

// ConsoleTimeFormat is the timestamp layout of console log lines.
const ConsoleTimeFormat = "01/02/2006 15:04:05.000"

// NewConsoleLogger returns a zerolog logger writing human readable lines to w.
// Levels are rendered as short markers so that informational lines stay
// uncluttered and problems stand out.
func NewConsoleLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:         w,
		NoColor:     true,
		TimeFormat:  ConsoleTimeFormat,
		FormatLevel: FormatLevel,
	}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// FormatLevel maps a zerolog level value to its console marker.
func FormatLevel(i interface{}) string {
	l, _ := i.(string)
	switch l {
	case zerolog.LevelTraceValue, zerolog.LevelDebugValue:
		return "."
	case zerolog.LevelInfoValue:
		return " "
	case zerolog.LevelWarnValue:
		return "!"
	case zerolog.LevelErrorValue:
		return "* ERROR:"
	case zerolog.LevelFatalValue, zerolog.LevelPanicValue:
		return "* CRITICAL ERROR:"
	default:
		return "?"
	}
}
