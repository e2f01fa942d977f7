package ports

import "github.com/skirt-tools/cutviz/pkg/log"

// Logger is the structured logging abstraction used by the application layer.
type Logger = log.Logger

// Field is a structured log field.
type Field = log.Field

// Field constructors re-exported for the application layer.
var (
	String   = log.String
	Strings  = log.Strings
	Int      = log.Int
	Float64  = log.Float64
	Bool     = log.Bool
	Duration = log.Duration
	Err      = log.Err
)
