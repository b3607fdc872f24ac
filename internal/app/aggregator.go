package app

import (
	"fmt"

	"github.com/alma-imf/contsel/internal/domain"
	"github.com/alma-imf/contsel/pkg/freq"
)

// IncludedBandwidth returns, per mask row, the number of kept channels times
// width.
func IncludedBandwidth(mask *domain.Mask, width freq.Quantity) []freq.Quantity {
	out := make([]freq.Quantity, mask.Fields())
	for f := range out {
		out[f] = width.Mul(float64(mask.Included(f)))
	}
	return out
}

// TotalBandwidth sums Max-Min over the windows of band, in the unit of the
// first window.
func TotalBandwidth(band domain.Band) (freq.Quantity, error) {
	if len(band.Windows) == 0 {
		return freq.Quantity{}, fmt.Errorf("%w: band %s has no spectral windows", domain.ErrConfiguration, band.ID)
	}
	total := freq.New(0, band.Windows[0].Min.Unit)
	for _, w := range band.Windows {
		total = total.Add(w.Span())
	}
	if total.Value <= 0 {
		return freq.Quantity{}, fmt.Errorf("%w: band %s has total bandwidth %s", domain.ErrConfiguration, band.ID, total)
	}
	return total, nil
}

// Aggregator accumulates the coverage of one band.
type Aggregator struct {
	band     domain.Band
	fields   []domain.Field
	lines    []domain.SpectralLine
	windows  []domain.WindowCoverage
	included map[string]freq.Quantity
}

// NewAggregator starts the aggregation of band.
func NewAggregator(band domain.Band, fields []domain.Field, lines []domain.SpectralLine) *Aggregator {
	unit := freq.GHz
	if len(band.Windows) > 0 {
		unit = band.Windows[0].Min.Unit
	}
	included := make(map[string]freq.Quantity, len(fields))
	for _, f := range fields {
		included[f.Name] = freq.New(0, unit)
	}
	return &Aggregator{
		band:     band,
		fields:   fields,
		lines:    lines,
		included: included,
	}
}

// Add folds one rasterized spectral window into the band totals.
func (a *Aggregator) Add(spw domain.SpectralWindow, r Raster) {
	n := r.Mask.Channels()
	bw := IncludedBandwidth(r.Mask, r.Grid.Width)

	wc := domain.WindowCoverage{
		Band:         a.band.ID,
		Window:       spw,
		ChannelWidth: r.Grid.Width,
		Fields:       make([]domain.FieldWindow, 0, len(a.fields)),
		Lines:        linesIn(spw, a.lines),
	}
	for _, f := range a.fields {
		excluded := r.Mask.Excluded(f.Index)
		wc.Fields = append(wc.Fields, domain.FieldWindow{
			Field:            f.Name,
			ExcludedChannels: excluded,
			ExcludedFraction: float64(excluded) / float64(n),
			Included:         bw[f.Index],
			Missing:          r.Missing[f.Name],
		})
		a.included[f.Name] = a.included[f.Name].Add(bw[f.Index])
	}
	a.windows = append(a.windows, wc)
}

// Finish computes the band fractions.
func (a *Aggregator) Finish() (domain.BandCoverage, error) {
	total, err := TotalBandwidth(a.band)
	if err != nil {
		return domain.BandCoverage{}, err
	}
	fraction := make(map[string]float64, len(a.fields))
	for _, f := range a.fields {
		fraction[f.Name] = a.included[f.Name].Ratio(total)
	}
	return domain.BandCoverage{
		Band:     a.band.ID,
		Windows:  a.windows,
		Total:    total,
		Included: a.included,
		Fraction: fraction,
	}, nil
}

func linesIn(spw domain.SpectralWindow, lines []domain.SpectralLine) []domain.SpectralLine {
	var out []domain.SpectralLine
	for _, l := range lines {
		if spw.Contains(l.Rest) {
			out = append(out, l)
		}
	}
	return out
}
