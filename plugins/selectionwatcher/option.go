package selectionwatcher

import "github.com/alma-imf/contsel/pkg/coverage"

// WithSelectionWatcher returns a coverage Option that re-runs the engine
// whenever the lookup table, the band table or a selection file changes.
//
// Usage:
//
//	c, err := coverage.New(cfg,
//	    selectionwatcher.WithSelectionWatcher(selectionwatcher.Config{
//	        DebounceDelay: time.Second,
//	    }),
//	)
func WithSelectionWatcher(cfg Config) coverage.Option {
	plugin := New(cfg)
	return coverage.WithPlugin(plugin)
}

// WithDefaultSelectionWatcher returns a coverage Option that enables
// selection watching with default settings (debounce 500ms).
func WithDefaultSelectionWatcher() coverage.Option {
	return WithSelectionWatcher(DefaultConfig())
}
