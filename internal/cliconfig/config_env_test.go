package cliconfig

import (
	"reflect"
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"CONTSEL_LOOKUP":         "/env/contdatfiles.json",
				"CONTSEL_BASE_DIR":       "/env",
				"CONTSEL_BANDS":          "B3,B6",
				"CONTSEL_FRAME":          "TOPO",
				"CONTSEL_BAND_TABLE":     "/env/bands.yaml",
				"CONTSEL_REPORT_DIR":     "/env/reports",
				"CONTSEL_METRICS_FILE":   "/env/contsel.prom",
				"CONTSEL_LOG_LEVEL":      "debug",
				"CONTSEL_TABLE":          "false",
				"CONTSEL_WATCH":          "1",
				"CONTSEL_WATCH_DEBOUNCE": "2s",
			},
			changed: map[string]bool{},
			initial: Config{Table: true},
			expected: Config{
				LookupPath:    "/env/contdatfiles.json",
				BaseDir:       "/env",
				Bands:         []string{"B3", "B6"},
				Frame:         "TOPO",
				BandTable:     "/env/bands.yaml",
				ReportDir:     "/env/reports",
				MetricsFile:   "/env/contsel.prom",
				LogLevel:      "debug",
				Table:         false,
				Watch:         true,
				WatchDebounce: 2 * time.Second,
			},
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				"CONTSEL_LOOKUP": "/env/contdatfiles.json",
				"CONTSEL_FRAME":  "TOPO",
			},
			changed:  map[string]bool{"lookup": true},
			initial:  Config{LookupPath: "/cli/lookup.json"},
			expected: Config{LookupPath: "/cli/lookup.json", Frame: "TOPO"},
		},
		{
			name: "returns error for invalid duration",
			envVars: map[string]string{
				"CONTSEL_WATCH_DEBOUNCE": "not-a-duration",
			},
			changed: map[string]bool{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)

			if tt.wantErr && err == nil {
				t.Error("ApplyEnvConfig() expected error but got nil")
				return
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ApplyEnvConfig() unexpected error: %v", err)
				return
			}

			if !tt.wantErr && !reflect.DeepEqual(cfg, tt.expected) {
				t.Errorf("config = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

// Integration test: precedence order (CLI > Env > File)
func TestConfigPrecedence(t *testing.T) {
	trueVal := true

	fileConf := FileConfig{
		Lookup:    "/file/lookup.json",
		Frame:     "BARY",
		ReportDir: "/file/reports",
		Watch:     &trueVal,
	}

	t.Setenv("CONTSEL_LOOKUP", "/env/lookup.json")
	t.Setenv("CONTSEL_FRAME", "TOPO")

	// Simulate CLI flags
	changed := map[string]bool{
		"lookup": true,
	}

	cfg := Config{
		LookupPath: "/cli/lookup.json",
	}

	if err := ApplyFileConfig(&cfg, fileConf, changed); err != nil {
		t.Fatalf("ApplyFileConfig failed: %v", err)
	}
	if err := ApplyEnvConfig(&cfg, changed); err != nil {
		t.Fatalf("ApplyEnvConfig failed: %v", err)
	}

	if cfg.LookupPath != "/cli/lookup.json" {
		t.Errorf("LookupPath = %v, want /cli/lookup.json (CLI should win)", cfg.LookupPath)
	}
	if cfg.Frame != "TOPO" {
		t.Errorf("Frame = %v, want TOPO (env should override file)", cfg.Frame)
	}
	if cfg.ReportDir != "/file/reports" {
		t.Errorf("ReportDir = %v, want /file/reports (file should set)", cfg.ReportDir)
	}
	if !cfg.Watch {
		t.Errorf("Watch = false, want true (file should set)")
	}
}
