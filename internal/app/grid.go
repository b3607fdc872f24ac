package app

import (
	"fmt"

	"github.com/alma-imf/contsel/internal/domain"
	"github.com/alma-imf/contsel/pkg/freq"
)

// Grid is the channel sampling of one spectral window.
type Grid struct {
	// Samples are the channel frequencies, expressed in Unit.
	Samples []float64
	Unit    freq.Unit

	// Width is the bandwidth credited to one channel.
	Width freq.Quantity
}

// Len returns the number of channels.
func (g Grid) Len() int { return len(g.Samples) }

// BuildGrid samples spw evenly over [Min, Max] inclusive. The channel width
// is the span divided by the channel count, not by the number of gaps.
func BuildGrid(spw domain.SpectralWindow) (Grid, error) {
	n := spw.Channels
	if n <= 0 {
		return Grid{}, fmt.Errorf("%w: spw %d: channel count %d must be positive", domain.ErrConfiguration, spw.ID, n)
	}
	unit := spw.Min.Unit
	lo, hi := spw.Min.Value, spw.Max.In(unit)
	if !(lo < hi) {
		return Grid{}, fmt.Errorf("%w: spw %d: min %s not below max %s", domain.ErrConfiguration, spw.ID, spw.Min, spw.Max)
	}

	return Grid{
		Samples: linspace(lo, hi, n),
		Unit:    unit,
		Width:   freq.New((hi-lo)/float64(n), unit),
	}, nil
}

// linspace returns n evenly spaced values from lo to hi. The last value is
// hi exactly; a single sample is lo.
func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := 0; i < n-1; i++ {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}
