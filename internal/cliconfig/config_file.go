package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Lookup        string   `toml:"lookup"`
	BaseDir       string   `toml:"base_dir"`
	Bands         []string `toml:"bands"`
	Frame         string   `toml:"frame"`
	BandTable     string   `toml:"band_table"`
	ReportDir     string   `toml:"report_dir"`
	MetricsFile   string   `toml:"metrics_file"`
	Table         *bool    `toml:"table"`
	LogLevel      string   `toml:"log_level"`
	Watch         *bool    `toml:"watch"`
	WatchDebounce string   `toml:"watch_debounce"`

	SelectionOverrides map[string]string `toml:"selection_overrides"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.contsel/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".contsel", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("lookup", fc.Lookup, &cfg.LookupPath)
	s.setString("base-dir", fc.BaseDir, &cfg.BaseDir)
	s.setStrings("bands", fc.Bands, &cfg.Bands)
	s.setString("frame", fc.Frame, &cfg.Frame)
	s.setString("band-table", fc.BandTable, &cfg.BandTable)
	s.setString("report-dir", fc.ReportDir, &cfg.ReportDir)
	s.setString("metrics-file", fc.MetricsFile, &cfg.MetricsFile)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if err := s.setDuration("watch-debounce", fc.WatchDebounce, &cfg.WatchDebounce); err != nil {
		return err
	}

	s.setBool("table", fc.Table, &cfg.Table)
	s.setBool("watch", fc.Watch, &cfg.Watch)

	// Overrides have no flag; file entries extend whatever is already set.
	if len(fc.SelectionOverrides) > 0 {
		if cfg.SelectionOverrides == nil {
			cfg.SelectionOverrides = make(map[string]string, len(fc.SelectionOverrides))
		}
		for k, v := range fc.SelectionOverrides {
			cfg.SelectionOverrides[k] = v
		}
	}

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
