// Package app implements the coverage engine.
//
// For every band, spectral window and field (in that nesting order) the
// engine resolves the field's selection file, rasterizes its excluded
// ranges onto the window's channel grid and aggregates the channels left
// over into included bandwidth and band fractions.
//
// The engine depends only on the interfaces in internal/ports; file system
// access lives in internal/adapters.
package app
