package domain

import (
	"time"

	"github.com/alma-imf/contsel/pkg/freq"
)

// FieldWindow is the coverage of one field in one spectral window.
type FieldWindow struct {
	Field            string        `json:"field"`
	ExcludedChannels int           `json:"excluded_channels"`
	ExcludedFraction float64       `json:"excluded_fraction"`
	Included         freq.Quantity `json:"included"`

	// Missing is set when the field had no selection file for the band;
	// its row is then all-false and the window counts as fully included.
	Missing bool `json:"missing,omitempty"`
}

// WindowCoverage summarises one spectral window of a band.
type WindowCoverage struct {
	Band         BandID         `json:"band"`
	Window       SpectralWindow `json:"window"`
	ChannelWidth freq.Quantity  `json:"channel_width"`
	Fields       []FieldWindow  `json:"fields"`
	Lines        []SpectralLine `json:"lines,omitempty"`
}

// BandCoverage aggregates all spectral windows of a band.
type BandCoverage struct {
	Band    BandID           `json:"band"`
	Windows []WindowCoverage `json:"windows"`

	// Total is the declared bandwidth: the sum of Max-Min over windows.
	Total freq.Quantity `json:"total"`

	// Included is the per-field bandwidth left for continuum imaging.
	Included map[string]freq.Quantity `json:"included"`

	// Fraction is Included / Total per field.
	Fraction map[string]float64 `json:"fraction"`
}

// Report is the outcome of a coverage run.
type Report struct {
	Frame       string         `json:"frame"`
	GeneratedAt time.Time      `json:"generated_at"`
	Bands       []BandCoverage `json:"bands"`
}

// Band returns the coverage of band id.
func (r Report) Band(id BandID) (BandCoverage, bool) {
	for _, b := range r.Bands {
		if b.Band == id {
			return b, true
		}
	}
	return BandCoverage{}, false
}

// ExcludedFractions maps band -> spectral window -> field -> fraction of
// channels excluded.
func (r Report) ExcludedFractions() map[BandID]map[int]map[string]float64 {
	out := make(map[BandID]map[int]map[string]float64, len(r.Bands))
	for _, b := range r.Bands {
		byWindow := make(map[int]map[string]float64, len(b.Windows))
		for _, w := range b.Windows {
			byField := make(map[string]float64, len(w.Fields))
			for _, f := range w.Fields {
				byField[f.Field] = f.ExcludedFraction
			}
			byWindow[w.Window.ID] = byField
		}
		out[b.Band] = byWindow
	}
	return out
}

// IncludedBandwidth maps band -> field -> included bandwidth.
func (r Report) IncludedBandwidth() map[BandID]map[string]freq.Quantity {
	out := make(map[BandID]map[string]freq.Quantity, len(r.Bands))
	for _, b := range r.Bands {
		out[b.Band] = b.Included
	}
	return out
}

// BandFractions maps band -> field -> included fraction of the band.
func (r Report) BandFractions() map[BandID]map[string]float64 {
	out := make(map[BandID]map[string]float64, len(r.Bands))
	for _, b := range r.Bands {
		out[b.Band] = b.Fraction
	}
	return out
}
