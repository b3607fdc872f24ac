package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/alma-imf/contsel/internal/cliconfig"
	"github.com/alma-imf/contsel/pkg/coverage"
	"github.com/alma-imf/contsel/pkg/log"
	"github.com/alma-imf/contsel/pkg/report"
	"github.com/alma-imf/contsel/plugins/selectionwatcher"
)

const longHelp = `Compute how much bandwidth each ALMA-IMF field keeps for continuum imaging.

For every band, spectral window and field, contsel reads the field's cont.dat
selection file, marks the channels it excludes on the window's channel grid
and reports the included bandwidth and its fraction of the band.

Configure via file ($HOME/.contsel/config.toml), CONTSEL_* environment
variables or flags; flags win over the environment, which wins over the file.`

var exampleUsage = strings.TrimSpace(`
  contsel --lookup /data/alma-imf/contdatfiles.json
  contsel --lookup contdatfiles.json --bands B6 --report-dir reports --metrics-file /var/lib/node_exporter/contsel.prom
  contsel --config $HOME/.contsel/config.toml --watch
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// runObserver counts run outcomes on the metrics sink.
type runObserver struct {
	coverage.BaseEventHandler
	metrics *report.Metrics
}

func (o runObserver) OnRunComplete(e coverage.RunEvent) {
	o.metrics.ObserveRun(e.Err)
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:           "contsel",
		Short:         "Continuum selection coverage for the ALMA-IMF survey",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default $HOME/.contsel/config.toml), then apply overrides
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// Environment overrides file config but not explicitly set flags
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cliconfig.SetLogLevel(cfg.LogLevel); err != nil {
				return err
			}
			logger := cliconfig.Logger()
			logger.Debug().Interface("config", cfg).Msg("configuration")

			opts := []coverage.Option{
				coverage.WithLogger(log.NewZerologAdapterWithLogger(logger)),
			}
			if cfg.ReportDir != "" {
				opts = append(opts, coverage.WithSink(report.NewFileRepository(cfg.ReportDir)))
			}
			if cfg.Table {
				opts = append(opts, coverage.WithSink(report.NewTableWriter(cmd.OutOrStdout())))
			}
			if cfg.MetricsFile != "" {
				metrics, err := report.NewMetrics(prometheus.NewRegistry())
				if err != nil {
					return err
				}
				opts = append(opts,
					coverage.WithSink(metrics.WithTextfile(cfg.MetricsFile)),
					coverage.WithEventHandler(runObserver{metrics: metrics}),
				)
			}
			if cfg.Watch {
				opts = append(opts, selectionwatcher.WithSelectionWatcher(selectionwatcher.Config{
					DebounceDelay: cfg.WatchDebounce,
					RunOnStart:    true,
				}))
			}

			c, err := coverage.New(coverage.Config{
				LookupPath:         cfg.LookupPath,
				BaseDir:            cfg.BaseDir,
				Frame:              cfg.Frame,
				Bands:              cfg.Bands,
				BandTable:          cfg.BandTable,
				SelectionOverrides: cfg.SelectionOverrides,
			}, opts...)
			if err != nil {
				return fmt.Errorf("create engine: %w", err)
			}

			if !cfg.Watch {
				_, err := c.Run(cmd.Context())
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := c.Start(ctx); err != nil {
				return fmt.Errorf("start watcher: %w", err)
			}
			logger.Info().Int("files", len(c.WatchPaths())).Msg("watching selection files")

			<-ctx.Done()
			logger.Info().Msg("received signal, stopping...")
			return c.Stop()
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.contsel/config.toml)")
	root.Flags().StringVar(&cfg.LookupPath, "lookup", cfg.LookupPath, "JSON table mapping <field><band> to cont.dat paths")
	root.Flags().StringVar(&cfg.BaseDir, "base-dir", cfg.BaseDir, "directory relative cont.dat paths resolve against (defaults to the lookup table's directory)")
	root.Flags().StringSliceVar(&cfg.Bands, "bands", cfg.Bands, "bands to process, e.g. B3,B6 (default: all)")
	root.Flags().StringVar(&cfg.Frame, "frame", cfg.Frame, "reference frame tag selection lines must carry")
	root.Flags().StringVar(&cfg.BandTable, "band-table", cfg.BandTable, "YAML file of spectral window and line catalog overrides")

	root.Flags().StringVar(&cfg.ReportDir, "report-dir", cfg.ReportDir, "directory to write coverage.json to")
	root.Flags().StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "Prometheus textfile to write coverage gauges to")
	root.Flags().BoolVar(&cfg.Table, "table", cfg.Table, "print the coverage table to stdout")

	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	root.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "re-run whenever a selection file changes")
	root.Flags().DurationVar(&cfg.WatchDebounce, "watch-debounce", cfg.WatchDebounce, "quiet period before a watch re-run")

	if err := root.ExecuteContext(context.Background()); err != nil {
		logger := cliconfig.Logger()
		logger.Error().Err(err).Msg("contsel")
		os.Exit(1)
	}
}
