package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (CONTSEL_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("lookup", os.Getenv("CONTSEL_LOOKUP"), &cfg.LookupPath)
	s.setString("base-dir", os.Getenv("CONTSEL_BASE_DIR"), &cfg.BaseDir)
	s.setStringsFromString("bands", os.Getenv("CONTSEL_BANDS"), &cfg.Bands)
	s.setString("frame", os.Getenv("CONTSEL_FRAME"), &cfg.Frame)
	s.setString("band-table", os.Getenv("CONTSEL_BAND_TABLE"), &cfg.BandTable)
	s.setString("report-dir", os.Getenv("CONTSEL_REPORT_DIR"), &cfg.ReportDir)
	s.setString("metrics-file", os.Getenv("CONTSEL_METRICS_FILE"), &cfg.MetricsFile)
	s.setString("log-level", os.Getenv("CONTSEL_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setDuration("watch-debounce", os.Getenv("CONTSEL_WATCH_DEBOUNCE"), &cfg.WatchDebounce); err != nil {
		return err
	}

	s.setBoolFromString("table", os.Getenv("CONTSEL_TABLE"), &cfg.Table)
	s.setBoolFromString("watch", os.Getenv("CONTSEL_WATCH"), &cfg.Watch)

	return nil
}
