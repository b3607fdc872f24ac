package coverage

import "context"

// Plugin extends a Coverage instance with background behavior.
type Plugin interface {
	// Name returns the plugin identifier used in logs.
	Name() string

	// Initialize is called by Start. A returned error aborts Start.
	Initialize(ctx context.Context, cfg PluginConfig) error

	// Shutdown is called by Stop, in reverse registration order.
	Shutdown(ctx context.Context) error
}

// PluginConfig is handed to plugins on Initialize.
type PluginConfig struct {
	// WatchPaths lists every input file of a run: the lookup table, the
	// band table and all selection files.
	WatchPaths []string

	Logger Logger

	// Trigger runs the engine once and publishes the report.
	Trigger func(ctx context.Context) error
}
