// Package log provides the logging abstraction used by contsel components.
//
// Components accept a [Logger] so the engine can run silently in tests and
// with zerolog output from the command line:
//
//	logger := log.NewZerologAdapterWithLogger(zerolog.New(os.Stderr))
//	logger.Warn("selection file missing", log.String("field", "W43-MM1"), log.String("band", "B6"))
//
// [NoopLogger] discards everything.
package log
