// Package survey builds the static configuration of a coverage run: the
// compiled-in ALMA-IMF band table, field list and line catalog, plus the
// resolver that applies named overrides on top of them.
package survey

import (
	"github.com/alma-imf/contsel/internal/domain"
	"github.com/alma-imf/contsel/pkg/freq"
)

// Band identifiers of the survey.
const (
	Band3 domain.BandID = "B3"
	Band6 domain.BandID = "B6"
)

// DefaultFieldNames lists the survey fields in catalog order.
func DefaultFieldNames() []string {
	return []string{
		"G008.67", "G337.92", "W43-MM3", "G328.25", "G351.77",
		"G012.80", "G327.29", "W43-MM1", "G010.62", "W51-IRS2",
		"W43-MM2", "G333.60", "G338.93", "W51-E", "G353.41",
	}
}

// DefaultBands returns the declared spectral window coverage of B3 and B6.
func DefaultBands() []domain.Band {
	return []domain.Band{
		{ID: Band3, Windows: []domain.SpectralWindow{
			ghz(0, 91.6824842830137, 92.6819960017637, 2048),
			ghz(1, 93.0931359128077, 93.21807487765145, 2048),
			ghz(2, 102.08163478365731, 103.08114650240731, 2048),
			ghz(3, 104.48007228365731, 105.47958400240731, 2048),
		}},
		{ID: Band6, Windows: []domain.SpectralWindow{
			ghz(0, 216.058164552243, 216.2924174819305, 1920),
			ghz(1, 217.008115724118, 217.242246583493, 960),
			ghz(2, 218.08794227907555, 218.32219520876305, 1920),
			ghz(3, 219.47637001345055, 219.59343544313805, 960),
			ghz(4, 219.86137977907555, 219.97832313845055, 480),
			ghz(5, 230.26977356280713, 230.73754700030713, 480),
			ghz(6, 231.01931579913526, 231.48782165851026, 1920),
			ghz(7, 231.48238541765087, 233.35640885515087, 1920),
		}},
	}
}

// DefaultLines returns the line catalog drawn against the windows.
func DefaultLines() []domain.SpectralLine {
	return []domain.SpectralLine{
		{Name: "n2hp", Rest: freq.New(93.1737, freq.GHz)},
		{Name: "sio", Rest: freq.New(217.104984, freq.GHz)},
		{Name: "h2co303", Rest: freq.New(218.222195, freq.GHz)},
		{Name: "12co", Rest: freq.New(230.538, freq.GHz)},
		{Name: "h30a", Rest: freq.New(231.900928, freq.GHz)},
		{Name: "h41a", Rest: freq.New(92.034434, freq.GHz)},
		{Name: "c18o", Rest: freq.New(219.560358, freq.GHz)},
	}
}

// DefaultKnownAbsences lists field/band pairs that were never observed.
func DefaultKnownAbsences() []domain.KnownAbsence {
	return []domain.KnownAbsence{
		{Field: "W43-MM1", Band: Band6, Reason: "no B6 observation exists"},
	}
}

// Default returns a fresh copy of the compiled-in survey.
func Default() domain.Survey {
	fields, err := domain.NewFields(DefaultFieldNames())
	if err != nil {
		panic(err)
	}
	return domain.Survey{
		Bands:         DefaultBands(),
		Fields:        fields,
		Lines:         DefaultLines(),
		KnownAbsences: DefaultKnownAbsences(),
	}
}

func ghz(id int, min, max float64, channels int) domain.SpectralWindow {
	return domain.SpectralWindow{
		ID:       id,
		Min:      freq.New(min, freq.GHz),
		Max:      freq.New(max, freq.GHz),
		Channels: channels,
	}
}
