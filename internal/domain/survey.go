package domain

import (
	"fmt"
	"sort"

	"github.com/alma-imf/contsel/pkg/freq"
)

// BandID identifies an observing band, e.g. "B3".
type BandID string

// SpectralWindow is a contiguous frequency sub-band sampled by Channels
// channels.
type SpectralWindow struct {
	ID       int           `json:"id" yaml:"id"`
	Min      freq.Quantity `json:"min" yaml:"min"`
	Max      freq.Quantity `json:"max" yaml:"max"`
	Channels int           `json:"channels" yaml:"channels"`
}

// Span returns Max - Min in Min's unit.
func (w SpectralWindow) Span() freq.Quantity { return w.Max.To(w.Min.Unit).Sub(w.Min) }

// Validate checks Min < Max and Channels > 0.
func (w SpectralWindow) Validate() error {
	if !w.Min.Unit.Valid() || !w.Max.Unit.Valid() {
		return fmt.Errorf("%w: spw %d: unknown unit", ErrConfiguration, w.ID)
	}
	if w.Channels <= 0 {
		return fmt.Errorf("%w: spw %d: channel count %d must be positive", ErrConfiguration, w.ID, w.Channels)
	}
	if !w.Min.Less(w.Max) {
		return fmt.Errorf("%w: spw %d: min %s not below max %s", ErrConfiguration, w.ID, w.Min, w.Max)
	}
	return nil
}

// Contains reports whether q lies strictly inside the window.
func (w SpectralWindow) Contains(q freq.Quantity) bool {
	return w.Min.Less(q) && q.Less(w.Max)
}

// Band owns its spectral windows ordered by id.
type Band struct {
	ID      BandID           `json:"id" yaml:"id"`
	Windows []SpectralWindow `json:"windows" yaml:"windows"`
}

// Window returns the spectral window with the given id.
func (b Band) Window(id int) (SpectralWindow, bool) {
	for _, w := range b.Windows {
		if w.ID == id {
			return w, true
		}
	}
	return SpectralWindow{}, false
}

// Field is a sky pointing. Index addresses its row in every Mask.
type Field struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// NewFields sorts names and assigns row indices. Duplicate or empty names
// are a configuration error.
func NewFields(names []string) ([]Field, error) {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	fields := make([]Field, len(sorted))
	for i, n := range sorted {
		if n == "" {
			return nil, fmt.Errorf("%w: empty field name", ErrConfiguration)
		}
		if i > 0 && sorted[i-1] == n {
			return nil, fmt.Errorf("%w: duplicate field %q", ErrConfiguration, n)
		}
		fields[i] = Field{Index: i, Name: n}
	}
	return fields, nil
}

// SpectralLine is a rest frequency of interest, shown against the windows
// it falls in.
type SpectralLine struct {
	Name string        `json:"name" yaml:"name"`
	Rest freq.Quantity `json:"rest" yaml:"rest"`
}

// KnownAbsence declares that Field has no observation in Band. The engine
// asserts that such a field never excludes a channel in that band.
type KnownAbsence struct {
	Field  string `json:"field" yaml:"field"`
	Band   BandID `json:"band" yaml:"band"`
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Survey is the immutable static configuration of a run.
type Survey struct {
	Bands         []Band         `json:"bands"`
	Fields        []Field        `json:"fields"`
	Lines         []SpectralLine `json:"lines,omitempty"`
	KnownAbsences []KnownAbsence `json:"known_absences,omitempty"`
}

// Band returns the band with the given id.
func (s Survey) Band(id BandID) (Band, bool) {
	for _, b := range s.Bands {
		if b.ID == id {
			return b, true
		}
	}
	return Band{}, false
}

// Field returns the field with the given name.
func (s Survey) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Validate checks the static tables before any field-level work starts.
func (s Survey) Validate() error {
	if len(s.Bands) == 0 {
		return fmt.Errorf("%w: no bands", ErrConfiguration)
	}
	if len(s.Fields) == 0 {
		return fmt.Errorf("%w: no fields", ErrConfiguration)
	}
	for i, f := range s.Fields {
		if f.Index != i {
			return fmt.Errorf("%w: field %q has index %d, want %d", ErrConfiguration, f.Name, f.Index, i)
		}
		if i > 0 && s.Fields[i-1].Name >= f.Name {
			return fmt.Errorf("%w: fields not sorted by name at %q", ErrConfiguration, f.Name)
		}
	}

	seen := make(map[BandID]bool, len(s.Bands))
	for _, b := range s.Bands {
		if b.ID == "" {
			return fmt.Errorf("%w: band without id", ErrConfiguration)
		}
		if seen[b.ID] {
			return fmt.Errorf("%w: duplicate band %s", ErrConfiguration, b.ID)
		}
		seen[b.ID] = true
		if len(b.Windows) == 0 {
			return fmt.Errorf("%w: band %s has no spectral windows", ErrConfiguration, b.ID)
		}
		for i, w := range b.Windows {
			if err := w.Validate(); err != nil {
				return fmt.Errorf("band %s: %w", b.ID, err)
			}
			if i > 0 && b.Windows[i-1].ID >= w.ID {
				return fmt.Errorf("%w: band %s: spectral windows not ordered by id at %d", ErrConfiguration, b.ID, w.ID)
			}
		}
	}

	for _, a := range s.KnownAbsences {
		if _, ok := s.Field(a.Field); !ok {
			return fmt.Errorf("%w: known absence names unknown field %q", ErrConfiguration, a.Field)
		}
		if !seen[a.Band] {
			return fmt.Errorf("%w: known absence names unknown band %s", ErrConfiguration, a.Band)
		}
	}
	return nil
}
