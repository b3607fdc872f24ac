package report

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/alma-imf/contsel/internal/domain"
	"github.com/alma-imf/contsel/pkg/freq"
)

// WriteTable renders r as one block per band: a per-spw header followed by
// per-field excluded channels, then the band totals per field.
func WriteTable(w io.Writer, r domain.Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, b := range r.Bands {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "Band %s\ttotal %s\n", b.Band, bandwidth(b.Total))

		for _, wc := range b.Windows {
			fmt.Fprintf(tw, "  spw %d\t%s - %s\t%s ch\twidth %s\t%s\n",
				wc.Window.ID,
				wc.Window.Min, wc.Window.Max,
				humanize.Comma(int64(wc.Window.Channels)),
				bandwidth(wc.ChannelWidth),
				lineNames(wc.Lines),
			)
		}

		fmt.Fprintln(tw, "  field\tincluded\tfraction\texcluded channels\t")
		for _, name := range fieldNames(b) {
			fmt.Fprintf(tw, "  %s\t%s\t%.1f%%\t%s\t%s\n",
				name,
				bandwidth(b.Included[name]),
				100*b.Fraction[name],
				excludedPerWindow(b, name),
				missingNote(b, name),
			)
		}
	}
	return tw.Flush()
}

// TableWriter is a report sink that writes the table to an io.Writer.
type TableWriter struct {
	w io.Writer
}

// NewTableWriter returns a sink writing to w.
func NewTableWriter(w io.Writer) *TableWriter { return &TableWriter{w: w} }

// Publish implements ports.ReportSink.
func (t *TableWriter) Publish(ctx context.Context, r domain.Report) error {
	return WriteTable(t.w, r)
}

func bandwidth(q freq.Quantity) string {
	return humanize.SIWithDigits(q.Hertz(), 4, "Hz")
}

func fieldNames(b domain.BandCoverage) []string {
	names := make([]string, 0, len(b.Included))
	for name := range b.Included {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func excludedPerWindow(b domain.BandCoverage, field string) string {
	parts := make([]string, 0, len(b.Windows))
	for _, wc := range b.Windows {
		for _, fw := range wc.Fields {
			if fw.Field == field {
				parts = append(parts, humanize.Comma(int64(fw.ExcludedChannels)))
			}
		}
	}
	return strings.Join(parts, "/")
}

func missingNote(b domain.BandCoverage, field string) string {
	for _, wc := range b.Windows {
		for _, fw := range wc.Fields {
			if fw.Field == field && fw.Missing {
				return "no selection file"
			}
		}
	}
	return ""
}

func lineNames(lines []domain.SpectralLine) string {
	names := make([]string, len(lines))
	for i, l := range lines {
		names[i] = l.Name
	}
	return strings.Join(names, ",")
}
