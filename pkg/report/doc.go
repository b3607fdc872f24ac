// Package report publishes coverage reports.
//
// Three sinks are provided, all implementing Publish(ctx, report):
//
//   - [FileRepository] persists the report as JSON with an atomic write
//   - [TableWriter] renders a human readable summary table
//   - [Metrics] exports Prometheus gauges, optionally to a node-exporter
//     textfile
//
// # Usage
//
//	repo := report.NewFileRepository("/var/lib/contsel")
//	if err := repo.Save(ctx, r); err != nil {
//	    return err
//	}
//
//	last, err := repo.Load(ctx)
package report
