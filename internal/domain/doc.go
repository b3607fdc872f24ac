// Package domain contains the core entities of the continuum selection
// engine.
//
// This package has no dependencies on infrastructure concerns (file system,
// logging, configuration loading) and contains only data and the rules that
// keep it consistent.
//
// # Entities
//
//   - [Survey]: bands, spectral windows, fields and regression guards for one run
//   - [Band] and [SpectralWindow]: declared frequency coverage
//   - [Field]: a sky pointing with a fixed row index
//   - [Mask]: per spectral window, which channels each field excluded
//   - [Report]: derived coverage statistics handed to reporters
//
// Survey values are built once by an initializer and never mutated; masks
// live for one spectral window; reports are plain values.
package domain
