package coverage

import (
	"github.com/alma-imf/contsel/internal/domain"
	"github.com/alma-imf/contsel/internal/ports"
	"github.com/alma-imf/contsel/pkg/log"
)

// Logger is the interface for structured logging.
type Logger = ports.Logger

// LogField represents a structured log field.
type LogField = ports.Field

// Sink receives the report of every successful run.
// *report.FileRepository, *report.TableWriter and *report.Metrics satisfy it.
type Sink = ports.ReportSink

// SelectionLookup maps a field and band to a selection file path.
type SelectionLookup = ports.SelectionLookup

// Option configures optional behavior of Coverage.
type Option func(*options)

// options holds the optional configuration for a Coverage instance.
type options struct {
	logger       ports.Logger
	eventHandler EventHandler
	sinks        []Sink
	plugins      []Plugin
	survey       *domain.Survey
	lookup       ports.SelectionLookup
}

// defaultOptions returns options with sensible defaults.
func defaultOptions() options {
	return options{
		logger: log.NewNoopLogger(),
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEventHandler sets a handler notified after every run.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// WithSink registers a report sink. Sinks are published to in registration
// order after every successful run.
func WithSink(sink Sink) Option {
	return func(o *options) {
		o.sinks = append(o.sinks, sink)
	}
}

// WithPlugin registers a plugin to be initialized when Coverage starts.
// Plugins are initialized in registration order and shutdown in reverse order.
func WithPlugin(plugin Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, plugin)
	}
}

// WithSurvey replaces the compiled-in ALMA-IMF survey as the base that
// BandTable overrides are applied to.
func WithSurvey(s Survey) Option {
	return func(o *options) {
		o.survey = &s
	}
}

// WithLookup injects the selection lookup instead of loading LookupPath.
// SelectionOverrides are ignored when a lookup is injected.
func WithLookup(lookup SelectionLookup) Option {
	return func(o *options) {
		o.lookup = lookup
	}
}
