package coverage

import "time"

// RunEvent describes a finished run.
type RunEvent struct {
	// Report holds the bands completed before any error.
	Report   Report
	Err      error
	Duration time.Duration
}

// EventHandler receives run notifications. Calls are made synchronously
// from the goroutine that ran the engine.
type EventHandler interface {
	OnRunComplete(event RunEvent)
}

// BaseEventHandler provides no-op defaults for embedding.
type BaseEventHandler struct{}

// OnRunComplete does nothing.
func (BaseEventHandler) OnRunComplete(RunEvent) {}
