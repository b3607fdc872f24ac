package coverage

import (
	"fmt"
	"path/filepath"
)

// DefaultFrame is the reference frame selection lines must be tagged with.
const DefaultFrame = "LSRK"

// Config holds the configuration of a coverage engine.
type Config struct {
	// LookupPath is the JSON table mapping "<field><band>" to selection
	// file paths. Required unless a lookup is injected with WithLookup.
	LookupPath string

	// BaseDir resolves relative selection file paths.
	// Default: the directory of LookupPath
	BaseDir string

	// Frame is the reference frame tag honoured in selection files.
	// Default: LSRK
	Frame string

	// Bands restricts the run to these bands. Empty means all bands.
	Bands []string

	// BandTable is an optional YAML file of survey overrides.
	BandTable string

	// SelectionOverrides replace lookup entries by key. An empty path
	// removes the entry.
	SelectionOverrides map[string]string
}

// SetDefaults fills unset fields with their defaults.
func (c *Config) SetDefaults() {
	if c.Frame == "" {
		c.Frame = DefaultFrame
	}
	if c.BaseDir == "" && c.LookupPath != "" {
		c.BaseDir = filepath.Dir(c.LookupPath)
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.LookupPath == "" {
		return fmt.Errorf("%w: lookup path is required", ErrConfiguration)
	}
	return nil
}
