package cliconfig

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultFrame is the reference frame selection lines must be tagged with.
const DefaultFrame = "LSRK"

// Config holds CLI configuration for contsel.
type Config struct {
	// LookupPath is the JSON table mapping "<field><band>" to cont.dat paths.
	LookupPath string
	BaseDir    string

	Bands     []string
	Frame     string
	BandTable string

	ReportDir   string
	MetricsFile string
	Table       bool

	LogLevel string

	Watch         bool
	WatchDebounce time.Duration

	// SelectionOverrides replace lookup entries; an empty path removes one.
	SelectionOverrides map[string]string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Frame:         DefaultFrame,
		Table:         true,
		LogLevel:      "info",
		WatchDebounce: 500 * time.Millisecond,
		BaseDir:       "", // Derived from LookupPath during Validate
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.LookupPath == "" {
		return fmt.Errorf("lookup is required")
	}

	if c.BaseDir == "" {
		c.BaseDir = filepath.Dir(c.LookupPath)
	}

	if c.Frame == "" {
		c.Frame = DefaultFrame
	}

	bands := c.Bands[:0:0]
	for _, b := range c.Bands {
		b = strings.ToUpper(strings.TrimSpace(b))
		if b != "" {
			bands = append(bands, b)
		}
	}
	c.Bands = bands

	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	if c.Watch && c.WatchDebounce <= 0 {
		return fmt.Errorf("watch debounce must be positive")
	}

	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setStrings sets a list if not empty and flag not changed.
func (s *configSetter) setStrings(flag string, value []string, dst *[]string) {
	if len(value) == 0 || s.changed[flag] {
		return
	}
	*dst = append([]string(nil), value...)
}

// setStringsFromString splits a comma-separated list.
// Used for environment variables that come as strings.
func (s *configSetter) setStringsFromString(flag, value string, dst *[]string) {
	if value == "" || s.changed[flag] {
		return
	}
	var out []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	*dst = out
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
