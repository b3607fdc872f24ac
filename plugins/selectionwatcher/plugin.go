// Package selectionwatcher re-runs the coverage engine when its inputs change.
// It watches the directories holding the lookup table, the band table and
// every cont.dat file, and triggers a debounced run on writes to any of them.
package selectionwatcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alma-imf/contsel/pkg/coverage"
	"github.com/alma-imf/contsel/pkg/log"
)

// Plugin implements selection watching.
type Plugin struct {
	mu sync.Mutex

	// Configuration
	debounceDelay time.Duration
	runOnStart    bool

	// Runtime state
	files    map[string]bool
	dirs     []string
	trigger  func(ctx context.Context) error
	logger   coverage.Logger
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	debounce *time.Timer
	runs     sync.WaitGroup
}

// Config holds configuration options for the selection watcher plugin.
type Config struct {
	// DebounceDelay is the quiet period after the last change before a run.
	// Default: 500 milliseconds
	DebounceDelay time.Duration

	// RunOnStart triggers one run as soon as the watcher is up.
	RunOnStart bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DebounceDelay: 500 * time.Millisecond,
	}
}

// New creates a new selection watcher plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 500 * time.Millisecond
	}
	return &Plugin{
		debounceDelay: cfg.DebounceDelay,
		runOnStart:    cfg.RunOnStart,
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "selectionwatcher"
}

// Initialize sets up the plugin and starts the file watcher.
func (p *Plugin) Initialize(ctx context.Context, cfg coverage.PluginConfig) error {
	p.mu.Lock()
	p.logger = cfg.Logger
	if p.logger == nil {
		p.logger = log.NewNoopLogger()
	}
	p.trigger = cfg.Trigger
	p.files = make(map[string]bool, len(cfg.WatchPaths))
	dirs := make(map[string]bool)
	p.dirs = p.dirs[:0]
	for _, path := range cfg.WatchPaths {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = filepath.Clean(path)
		}
		p.files[abs] = true
		if d := filepath.Dir(abs); !dirs[d] {
			dirs[d] = true
			p.dirs = append(p.dirs, d)
		}
	}
	p.mu.Unlock()

	if len(p.dirs) == 0 || p.trigger == nil {
		p.logger.Warn("selection watcher disabled: nothing to watch")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	for _, d := range p.dirs {
		if err := watcher.Add(d); err != nil {
			watcher.Close()
			return err
		}
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.logger.Info("selection watcher started",
		log.Int("files", len(p.files)),
		log.Int("dirs", len(p.dirs)),
		log.Duration("debounce", p.debounceDelay),
	)

	p.wg.Add(1)
	go p.watchLoop(watchCtx, watcher)

	if p.runOnStart {
		p.scheduleRun(watchCtx, 0)
	}
	return nil
}

// Shutdown stops the watcher and waits for an in-flight run to finish.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()

	p.mu.Lock()
	if p.debounce != nil && p.debounce.Stop() {
		p.runs.Done()
	}
	p.debounce = nil
	p.mu.Unlock()

	p.runs.Wait()
	return nil
}

func (p *Plugin) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer p.wg.Done()
	defer watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !p.relevant(event) {
				continue
			}
			p.logger.Debug("selection input changed",
				log.String("path", event.Name),
				log.String("op", event.Op.String()),
			)
			p.scheduleRun(ctx, p.debounceDelay)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("selection watcher error", log.Err(err))
		}
	}
}

func (p *Plugin) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		abs = filepath.Clean(event.Name)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.files[abs]
}

// scheduleRun (re)arms the debounce timer. At most one run is pending.
func (p *Plugin) scheduleRun(ctx context.Context, delay time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.debounce != nil && p.debounce.Stop() {
		p.runs.Done()
	}

	p.runs.Add(1)
	p.debounce = time.AfterFunc(delay, func() {
		defer p.runs.Done()
		if ctx.Err() != nil {
			return
		}
		start := time.Now()
		if err := p.trigger(ctx); err != nil {
			p.logger.Error("coverage run failed", log.Err(err))
			return
		}
		p.logger.Info("coverage run complete", log.Duration("elapsed", time.Since(start)))
	})
}

// Ensure Plugin implements coverage.Plugin.
var _ coverage.Plugin = (*Plugin)(nil)
