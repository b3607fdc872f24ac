package ports

import "github.com/alma-imf/contsel/pkg/log"

// Logger is the structured logger used across the engine.
type Logger = log.Logger

// Field is a structured log field.
type Field = log.Field

// Field constructors, re-exported so the application layer only imports
// ports.
var (
	String   = log.String
	Int      = log.Int
	Float64  = log.Float64
	Bool     = log.Bool
	Duration = log.Duration
	Stringer = log.Stringer
	Err      = log.Err
	Any      = log.Any
)
