package coverage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alma-imf/contsel/pkg/coverage"
	"github.com/alma-imf/contsel/pkg/freq"
)

// recordingSink collects published reports.
type recordingSink struct {
	mu      sync.Mutex
	reports []coverage.Report
	err     error
}

func (s *recordingSink) Publish(ctx context.Context, r coverage.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, r)
	return s.err
}

func (s *recordingSink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reports)
}

type recordingHandler struct {
	coverage.BaseEventHandler
	events []coverage.RunEvent
}

func (h *recordingHandler) OnRunComplete(e coverage.RunEvent) { h.events = append(h.events, e) }

// trackingPlugin records lifecycle calls.
type trackingPlugin struct {
	name      string
	initErr   error
	cfg       coverage.PluginConfig
	calls     *[]string
	shutdowns int
}

func (p *trackingPlugin) Name() string { return p.name }

func (p *trackingPlugin) Initialize(ctx context.Context, cfg coverage.PluginConfig) error {
	*p.calls = append(*p.calls, "init "+p.name)
	p.cfg = cfg
	return p.initErr
}

func (p *trackingPlugin) Shutdown(ctx context.Context) error {
	*p.calls = append(*p.calls, "shutdown "+p.name)
	p.shutdowns++
	return nil
}

func smallSurvey(t *testing.T) coverage.Survey {
	t.Helper()
	return coverage.Survey{
		Bands: []coverage.Band{
			{ID: "B3", Windows: []coverage.SpectralWindow{
				{ID: 0, Min: freq.New(93.0, freq.GHz), Max: freq.New(93.2, freq.GHz), Channels: 3},
			}},
			{ID: "B6", Windows: []coverage.SpectralWindow{
				{ID: 0, Min: freq.New(217.0, freq.GHz), Max: freq.New(217.4, freq.GHz), Channels: 5},
			}},
		},
		Fields: []coverage.Field{{Index: 0, Name: "A"}, {Index: 1, Name: "B"}},
	}
}

// writeInputs lays out a lookup table and selection files under a temp dir.
func writeInputs(t *testing.T, b6 string) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"contdatfiles.json": `{"AB3": "A/B3/cont.dat", "AB6": "A/B6/cont.dat", "BB3": "B/B3/cont.dat"}`,
		"A/B3/cont.dat":     "93.05~93.15GHz LSRK\n",
		"A/B6/cont.dat":     b6,
		"B/B3/cont.dat":     "# nothing excluded\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return filepath.Join(dir, "contdatfiles.json")
}

func TestNew_RequiresLookup(t *testing.T) {
	if _, err := coverage.New(coverage.Config{}); !errors.Is(err, coverage.ErrConfiguration) {
		t.Errorf("error = %v, want ErrConfiguration", err)
	}
}

func TestNew_MissingLookupFile(t *testing.T) {
	cfg := coverage.Config{LookupPath: filepath.Join(t.TempDir(), "missing.json")}
	_, err := coverage.New(cfg)
	if !errors.Is(err, coverage.ErrConfiguration) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want ErrConfiguration wrapping ErrNotExist", err)
	}
}

func TestNew_UnknownBand(t *testing.T) {
	cfg := coverage.Config{LookupPath: writeInputs(t, ""), Bands: []string{"b7"}}
	if _, err := coverage.New(cfg, coverage.WithSurvey(smallSurvey(t))); !errors.Is(err, coverage.ErrConfiguration) {
		t.Errorf("error = %v, want ErrConfiguration", err)
	}
}

func TestNew_DefaultSurvey(t *testing.T) {
	c, err := coverage.New(coverage.Config{LookupPath: writeInputs(t, ""), Bands: []string{"B6"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s := c.Survey()
	if len(s.Bands) != 1 || s.Bands[0].ID != "B6" || len(s.Bands[0].Windows) != 8 {
		t.Errorf("survey bands = %+v", s.Bands)
	}
	if len(s.Fields) != 15 {
		t.Errorf("fields = %d, want 15", len(s.Fields))
	}
}

func TestRun_PublishesReport(t *testing.T) {
	sink := &recordingSink{}
	handler := &recordingHandler{}
	cfg := coverage.Config{LookupPath: writeInputs(t, "217.1~217.3GHz LSRK\n")}
	c, err := coverage.New(cfg,
		coverage.WithSurvey(smallSurvey(t)),
		coverage.WithSink(sink),
		coverage.WithEventHandler(handler),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	r, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sink.Count() != 1 {
		t.Errorf("published %d reports, want 1", sink.Count())
	}
	if len(handler.events) != 1 || handler.events[0].Err != nil {
		t.Errorf("events = %+v", handler.events)
	}
	if r.Frame != coverage.DefaultFrame {
		t.Errorf("frame = %q", r.Frame)
	}

	fractions := r.BandFractions()
	if f := fractions["B3"]["B"]; f < 0.999999 || f > 1.000001 {
		t.Errorf("B3 fraction of B = %v, want 1", f)
	}
	if f := fractions["B3"]["A"]; f < 0.66 || f > 0.67 {
		t.Errorf("B3 fraction of A = %v, want 2/3", f)
	}
	b6, _ := r.Band("B6")
	if !b6.Windows[0].Fields[1].Missing {
		t.Errorf("B has no B6 selection and should be flagged missing")
	}
	if len(c.Last().Bands) != 2 {
		t.Errorf("Last() bands = %d, want 2", len(c.Last().Bands))
	}
}

func TestRun_FailureIsNotPublished(t *testing.T) {
	sink := &recordingSink{}
	handler := &recordingHandler{}
	cfg := coverage.Config{LookupPath: writeInputs(t, "217.3~217.1GHz LSRK\n")}
	c, err := coverage.New(cfg,
		coverage.WithSurvey(smallSurvey(t)),
		coverage.WithSink(sink),
		coverage.WithEventHandler(handler),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	r, err := c.Run(context.Background())
	if !errors.Is(err, coverage.ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
	var be *coverage.BandError
	if !errors.As(err, &be) || be.Band != "B6" {
		t.Errorf("error = %v, want BandError for B6", err)
	}
	if len(r.Bands) != 1 {
		t.Errorf("partial report bands = %d, want 1", len(r.Bands))
	}
	if sink.Count() != 0 {
		t.Errorf("failed run was published")
	}
	if len(handler.events) != 1 || handler.events[0].Err == nil {
		t.Errorf("events = %+v", handler.events)
	}
}

func TestRun_SelectionOverrides(t *testing.T) {
	lookup := writeInputs(t, "")
	cfg := coverage.Config{
		LookupPath: lookup,
		Bands:      []string{"B3"},
		// Point B at A's file so both fields exclude 93.1GHz.
		SelectionOverrides: map[string]string{"BB3": "A/B3/cont.dat"},
	}
	c, err := coverage.New(cfg, coverage.WithSurvey(smallSurvey(t)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	b3, _ := r.Band("B3")
	if n := b3.Windows[0].Fields[1].ExcludedChannels; n != 1 {
		t.Errorf("B excluded %d channels, want 1", n)
	}
}

func TestRun_PublishErrorReturned(t *testing.T) {
	boom := errors.New("disk full")
	sink := &recordingSink{err: boom}
	cfg := coverage.Config{LookupPath: writeInputs(t, "217.1~217.3GHz\n"), Bands: []string{"B3"}}
	c, err := coverage.New(cfg, coverage.WithSurvey(smallSurvey(t)), coverage.WithSink(sink))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.Run(context.Background()); !errors.Is(err, boom) {
		t.Errorf("error = %v, want %v", err, boom)
	}
}

func TestStartStop_Plugins(t *testing.T) {
	var calls []string
	a := &trackingPlugin{name: "a", calls: &calls}
	b := &trackingPlugin{name: "b", calls: &calls}
	sink := &recordingSink{}

	cfg := coverage.Config{LookupPath: writeInputs(t, "217.1~217.3GHz LSRK\n")}
	c, err := coverage.New(cfg,
		coverage.WithSurvey(smallSurvey(t)),
		coverage.WithSink(sink),
		coverage.WithPlugin(a),
		coverage.WithPlugin(b),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := c.Stop(); !errors.Is(err, coverage.ErrNotRunning) {
		t.Errorf("Stop before Start = %v, want ErrNotRunning", err)
	}
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := c.Start(context.Background()); !errors.Is(err, coverage.ErrAlreadyRunning) {
		t.Errorf("second Start = %v, want ErrAlreadyRunning", err)
	}

	if len(a.cfg.WatchPaths) != 4 {
		t.Errorf("watch paths = %v, want lookup table and 3 selection files", a.cfg.WatchPaths)
	}
	if err := a.cfg.Trigger(context.Background()); err != nil {
		t.Errorf("Trigger: %v", err)
	}
	if sink.Count() != 1 {
		t.Errorf("trigger published %d reports, want 1", sink.Count())
	}

	if err := c.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	want := []string{"init a", "init b", "shutdown b", "shutdown a"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("calls[%d] = %q, want %q", i, calls[i], want[i])
		}
	}
}

func TestStart_PluginInitFailure(t *testing.T) {
	var calls []string
	a := &trackingPlugin{name: "a", calls: &calls}
	b := &trackingPlugin{name: "b", calls: &calls, initErr: errors.New("no watcher")}

	cfg := coverage.Config{LookupPath: writeInputs(t, "")}
	c, err := coverage.New(cfg, coverage.WithSurvey(smallSurvey(t)), coverage.WithPlugin(a), coverage.WithPlugin(b))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.Start(context.Background()); err == nil {
		t.Fatal("Start should fail")
	}
	if a.shutdowns != 1 || b.shutdowns != 0 {
		t.Errorf("shutdowns a=%d b=%d, want 1 and 0", a.shutdowns, b.shutdowns)
	}
	if err := c.Stop(); !errors.Is(err, coverage.ErrNotRunning) {
		t.Errorf("Stop after failed Start = %v, want ErrNotRunning", err)
	}
}
