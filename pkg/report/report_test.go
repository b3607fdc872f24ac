package report

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/alma-imf/contsel/internal/domain"
	"github.com/alma-imf/contsel/pkg/freq"
)

func sampleReport() domain.Report {
	spw := domain.SpectralWindow{ID: 1, Min: freq.New(93.0, freq.GHz), Max: freq.New(93.2, freq.GHz), Channels: 2048}
	width := freq.New(0.2/2048, freq.GHz)
	return domain.Report{
		Frame:       "LSRK",
		GeneratedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Bands: []domain.BandCoverage{{
			Band: "B3",
			Windows: []domain.WindowCoverage{{
				Band:         "B3",
				Window:       spw,
				ChannelWidth: width,
				Fields: []domain.FieldWindow{
					{Field: "G010.62", ExcludedChannels: 1024, ExcludedFraction: 0.5, Included: freq.New(0.1, freq.GHz)},
					{Field: "W51-E", Included: freq.New(0.2, freq.GHz), Missing: true},
				},
				Lines: []domain.SpectralLine{{Name: "n2hp", Rest: freq.New(93.1737, freq.GHz)}},
			}},
			Total:    freq.New(0.2, freq.GHz),
			Included: map[string]freq.Quantity{"G010.62": freq.New(0.1, freq.GHz), "W51-E": freq.New(0.2, freq.GHz)},
			Fraction: map[string]float64{"G010.62": 0.5, "W51-E": 1},
		}},
	}
}

func TestFileRepository_LoadMissing(t *testing.T) {
	repo := NewFileRepository(filepath.Join(t.TempDir(), "reports"))
	r, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(r.Bands) != 0 {
		t.Errorf("expected empty report, got %+v", r)
	}
}

func TestFileRepository_SaveLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	repo := NewFileRepository(dir)
	want := sampleReport()

	if err := repo.Publish(context.Background(), want); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if _, err := os.Stat(repo.Path() + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !got.GeneratedAt.Equal(want.GeneratedAt) || got.Frame != want.Frame {
		t.Errorf("header = %v %q", got.GeneratedAt, got.Frame)
	}
	b, ok := got.Band("B3")
	if !ok {
		t.Fatal("band B3 missing")
	}
	if b.Fraction["G010.62"] != 0.5 || b.Included["W51-E"] != freq.New(0.2, freq.GHz) {
		t.Errorf("band = %+v", b)
	}
	if !b.Windows[0].Fields[1].Missing || b.Windows[0].Lines[0].Name != "n2hp" {
		t.Errorf("window = %+v", b.Windows[0])
	}
}

func TestFileRepository_LoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	repo := NewFileRepository(dir)
	if err := os.WriteFile(repo.Path(), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Load(context.Background()); err == nil {
		t.Error("expected decode error")
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTableWriter(&buf).Publish(context.Background(), sampleReport()); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Band B3",
		"total 200 MHz",
		"spw 1",
		"2,048 ch",
		"n2hp",
		"G010.62",
		"50.0%",
		"1,024",
		"100.0%",
		"no selection file",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestMetrics_Publish(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	path := filepath.Join(t.TempDir(), "contsel.prom")
	m.WithTextfile(path)

	r := sampleReport()
	if err := m.Publish(context.Background(), r); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	m.ObserveRun(nil)

	if got := testutil.ToFloat64(m.BandFraction.WithLabelValues("B3", "G010.62")); got != 0.5 {
		t.Errorf("band fraction = %v, want 0.5", got)
	}
	if got := testutil.ToFloat64(m.IncludedBandwidth.WithLabelValues("B3", "W51-E")); got != 0.2e9 {
		t.Errorf("included = %v, want 2e8", got)
	}
	if got := testutil.ToFloat64(m.ExcludedFraction.WithLabelValues("B3", "1", "G010.62")); got != 0.5 {
		t.Errorf("excluded fraction = %v, want 0.5", got)
	}
	if got := testutil.ToFloat64(m.MissingSelections.WithLabelValues("B3")); got != 1 {
		t.Errorf("missing = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.LastRun); got != float64(r.GeneratedAt.Unix()) {
		t.Errorf("last run = %v", got)
	}
	if got := testutil.ToFloat64(m.Runs.WithLabelValues("ok")); got != 1 {
		t.Errorf("runs ok = %v, want 1", got)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	if !strings.Contains(string(data), `contsel_band_fraction{band="B3",field="G010.62"} 0.5`) {
		t.Errorf("textfile missing band fraction:\n%s", data)
	}
}

func TestMetrics_ObserveResetsStaleSeries(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	m.Observe(sampleReport())
	m.Observe(domain.Report{})

	if n := testutil.CollectAndCount(m.BandFraction); n != 0 {
		t.Errorf("band fraction series = %d, want 0", n)
	}
}

func TestNewMetrics_ReusesRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := NewMetrics(reg)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	b, err := NewMetrics(reg)
	if err != nil {
		t.Fatalf("second NewMetrics: %v", err)
	}
	if a.BandFraction != b.BandFraction {
		t.Error("expected the already registered collector to be reused")
	}
}
