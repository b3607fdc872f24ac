package coverage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/alma-imf/contsel/internal/adapters/fs"
	"github.com/alma-imf/contsel/internal/app"
	"github.com/alma-imf/contsel/internal/domain"
	"github.com/alma-imf/contsel/internal/ports"
	"github.com/alma-imf/contsel/internal/survey"
)

var (
	// ErrAlreadyRunning is returned by Start on a started instance.
	ErrAlreadyRunning = errors.New("coverage: already running")

	// ErrNotRunning is returned by Stop on a stopped instance.
	ErrNotRunning = errors.New("coverage: not running")
)

// Coverage is a configured coverage engine.
// Run may be called directly; Start additionally brings up plugins.
type Coverage struct {
	config Config
	survey domain.Survey
	lookup ports.SelectionLookup
	engine *app.Engine
	logger ports.Logger
	events EventHandler
	sinks  []Sink

	plugins []Plugin

	// runMu serializes runs so plugin triggers never overlap.
	runMu sync.Mutex
	last  Report

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
}

// New creates a coverage engine. Static tables are loaded and validated
// here, so configuration errors surface before any run.
func New(cfg Config, opts ...Option) (*Coverage, error) {
	cfg.SetDefaults()

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.lookup == nil {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	s, err := buildSurvey(cfg, o.survey)
	if err != nil {
		return nil, err
	}

	lookup := o.lookup
	if lookup == nil {
		table, err := fs.LoadLookupTable(cfg.LookupPath, cfg.BaseDir)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
		if len(cfg.SelectionOverrides) > 0 {
			table = table.WithOverrides(cfg.BaseDir, fs.LookupOverride{
				Name:    "selection_overrides",
				Entries: cfg.SelectionOverrides,
			})
		}
		lookup = table
	}

	engine := app.NewEngine(
		app.EngineConfig{Survey: s, Frame: cfg.Frame},
		lookup,
		fs.NewSelectionReader(cfg.Frame),
		o.logger,
	)

	return &Coverage{
		config:  cfg,
		survey:  s,
		lookup:  lookup,
		engine:  engine,
		logger:  o.logger,
		events:  o.eventHandler,
		sinks:   o.sinks,
		plugins: o.plugins,
	}, nil
}

// Run computes a coverage report and publishes it to every sink.
// When the engine fails, the partial report is returned with the error and
// nothing is published.
func (c *Coverage) Run(ctx context.Context) (Report, error) {
	c.runMu.Lock()
	defer c.runMu.Unlock()

	start := time.Now()
	r, err := c.engine.Run(ctx)
	if c.events != nil {
		c.events.OnRunComplete(RunEvent{Report: r, Err: err, Duration: time.Since(start)})
	}
	if err != nil {
		return r, err
	}

	var errs []error
	for _, s := range c.sinks {
		if perr := s.Publish(ctx, r); perr != nil {
			c.logger.Error("publish report failed", ports.Err(perr))
			errs = append(errs, perr)
		}
	}
	c.last = r
	return r, errors.Join(errs...)
}

// Last returns the report of the last successful run.
func (c *Coverage) Last() Report {
	c.runMu.Lock()
	defer c.runMu.Unlock()
	return c.last
}

// Survey returns the resolved survey the engine runs over.
func (c *Coverage) Survey() Survey { return c.survey }

// WatchPaths lists the input files of a run, sorted: the lookup table, the
// band table and every selection file.
func (c *Coverage) WatchPaths() []string {
	seen := make(map[string]bool)
	var paths []string
	add := func(p string) {
		if p != "" && !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}
	add(c.config.LookupPath)
	add(c.config.BandTable)
	for _, p := range c.lookup.Paths() {
		add(p)
	}
	sort.Strings(paths)
	return paths
}

// Start initializes plugins in registration order.
// The provided context bounds the lifetime of every plugin.
func (c *Coverage) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return ErrAlreadyRunning
	}

	runCtx, cancel := context.WithCancel(ctx)
	pluginCfg := PluginConfig{
		WatchPaths: c.WatchPaths(),
		Logger:     c.logger,
		Trigger: func(ctx context.Context) error {
			_, err := c.Run(ctx)
			return err
		},
	}
	for i, p := range c.plugins {
		if err := p.Initialize(runCtx, pluginCfg); err != nil {
			c.logger.Error("plugin initialization failed",
				ports.String("plugin", p.Name()),
				ports.Err(err))
			cancel()
			c.shutdown(c.plugins[:i])
			return fmt.Errorf("plugin %s: %w", p.Name(), err)
		}
		c.logger.Info("plugin initialized", ports.String("plugin", p.Name()))
	}

	c.cancel = cancel
	c.running = true
	return nil
}

// Stop cancels the Start context and shuts plugins down in reverse order.
func (c *Coverage) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return ErrNotRunning
	}
	c.cancel()
	c.shutdown(c.plugins)
	c.running = false
	return nil
}

func (c *Coverage) shutdown(plugins []Plugin) {
	ctx := context.Background()
	for i := len(plugins) - 1; i >= 0; i-- {
		p := plugins[i]
		if err := p.Shutdown(ctx); err != nil {
			c.logger.Error("plugin shutdown failed",
				ports.String("plugin", p.Name()),
				ports.Err(err))
		} else {
			c.logger.Info("plugin shutdown complete", ports.String("plugin", p.Name()))
		}
	}
}

func buildSurvey(cfg Config, base *domain.Survey) (domain.Survey, error) {
	s := survey.Default()
	if base != nil {
		s = *base
	}

	var overrides []survey.Override
	if cfg.BandTable != "" {
		var err error
		overrides, err = survey.LoadOverrides(cfg.BandTable)
		if err != nil {
			return domain.Survey{}, err
		}
	}
	s, err := survey.Resolve(s, overrides...)
	if err != nil {
		return domain.Survey{}, err
	}

	ids := make([]domain.BandID, 0, len(cfg.Bands))
	for _, b := range cfg.Bands {
		if b = strings.TrimSpace(b); b != "" {
			ids = append(ids, domain.BandID(strings.ToUpper(b)))
		}
	}
	return survey.SelectBands(s, ids)
}
