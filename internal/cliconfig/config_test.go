package cliconfig

import (
	"reflect"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Frame != DefaultFrame {
		t.Errorf("Frame = %v, want %v", cfg.Frame, DefaultFrame)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.WatchDebounce != 500*time.Millisecond {
		t.Errorf("WatchDebounce = %v, want 500ms", cfg.WatchDebounce)
	}
	if !cfg.Table {
		t.Errorf("Table = false, want true")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		wantBaseDir string
		wantBands   []string
	}{
		{
			name:        "valid minimal config",
			config:      Config{LookupPath: "/data/contdatfiles.json"},
			wantBaseDir: "/data",
		},
		{
			name:    "missing lookup",
			config:  Config{BaseDir: "/data"},
			wantErr: true,
		},
		{
			name:        "explicit base dir kept",
			config:      Config{LookupPath: "/data/contdatfiles.json", BaseDir: "/selections"},
			wantBaseDir: "/selections",
		},
		{
			name:        "bands normalised",
			config:      Config{LookupPath: "/data/l.json", Bands: []string{" b3", "", "B6 "}},
			wantBaseDir: "/data",
			wantBands:   []string{"B3", "B6"},
		},
		{
			name:    "bad log level",
			config:  Config{LookupPath: "/data/l.json", LogLevel: "loud"},
			wantErr: true,
		},
		{
			name:    "watch without debounce",
			config:  Config{LookupPath: "/data/l.json", Watch: true},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Error("Validate() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() unexpected error: %v", err)
			}
			if tt.config.BaseDir != tt.wantBaseDir {
				t.Errorf("BaseDir = %v, want %v", tt.config.BaseDir, tt.wantBaseDir)
			}
			if tt.config.Frame != DefaultFrame {
				t.Errorf("Frame = %v, want %v", tt.config.Frame, DefaultFrame)
			}
			if len(tt.wantBands) > 0 && !reflect.DeepEqual(tt.config.Bands, tt.wantBands) {
				t.Errorf("Bands = %v, want %v", tt.config.Bands, tt.wantBands)
			}
		})
	}
}

func TestConfigSetter(t *testing.T) {
	s := newConfigSetter(map[string]bool{"frame": true})

	frame := "LSRK"
	s.setString("frame", "TOPO", &frame)
	if frame != "LSRK" {
		t.Errorf("changed flag overwritten: %v", frame)
	}

	lookup := "old"
	s.setString("lookup", "", &lookup)
	if lookup != "old" {
		t.Errorf("empty value applied: %v", lookup)
	}

	var bands []string
	s.setStringsFromString("bands", "B3, ,B6", &bands)
	if !reflect.DeepEqual(bands, []string{"B3", "B6"}) {
		t.Errorf("bands = %v", bands)
	}

	var d time.Duration
	if err := s.setDuration("watch-debounce", "nope", &d); err == nil {
		t.Error("expected duration parse error")
	}
}
