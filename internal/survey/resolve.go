package survey

import (
	"fmt"
	"sort"

	"github.com/alma-imf/contsel/internal/domain"
	"github.com/alma-imf/contsel/pkg/freq"
)

// Override is a named partial change to a survey. Overrides are applied in
// the order given; later overrides win.
type Override struct {
	Name string `yaml:"name"`

	// Fields, when non-empty, replaces the field list.
	Fields []string `yaml:"fields,omitempty"`

	Bands []BandOverride `yaml:"bands,omitempty"`

	// Lines and KnownAbsences, when non-nil, replace their lists.
	Lines         []LineOverride        `yaml:"lines,omitempty"`
	KnownAbsences []domain.KnownAbsence `yaml:"known_absences,omitempty"`
}

// BandOverride patches one band. Remove drops the band entirely.
type BandOverride struct {
	ID      domain.BandID    `yaml:"id"`
	Remove  bool             `yaml:"remove,omitempty"`
	Windows []WindowOverride `yaml:"windows,omitempty"`
}

// WindowOverride patches one spectral window. Empty bounds and a zero
// channel count keep the existing value; a new window needs all three.
type WindowOverride struct {
	ID       int    `yaml:"id"`
	Remove   bool   `yaml:"remove,omitempty"`
	Min      string `yaml:"min,omitempty"`
	Max      string `yaml:"max,omitempty"`
	Channels int    `yaml:"channels,omitempty"`
}

// LineOverride declares a catalog line, e.g. {name: n2hp, rest: 93.1737GHz}.
type LineOverride struct {
	Name string `yaml:"name"`
	Rest string `yaml:"rest"`
}

// Resolve applies overrides to a copy of base and validates the result.
// base is never modified.
func Resolve(base domain.Survey, overrides ...Override) (domain.Survey, error) {
	out := clone(base)
	for _, o := range overrides {
		if err := apply(&out, o); err != nil {
			return domain.Survey{}, fmt.Errorf("override %q: %w", o.Name, err)
		}
	}
	if err := out.Validate(); err != nil {
		return domain.Survey{}, err
	}
	return out, nil
}

// SelectBands returns s restricted to the given bands, in the survey's own
// order. An empty list keeps every band.
func SelectBands(s domain.Survey, ids []domain.BandID) (domain.Survey, error) {
	if len(ids) == 0 {
		return s, nil
	}
	want := make(map[domain.BandID]bool, len(ids))
	for _, id := range ids {
		if _, ok := s.Band(id); !ok {
			return domain.Survey{}, fmt.Errorf("%w: unknown band %s", domain.ErrConfiguration, id)
		}
		want[id] = true
	}
	out := clone(s)
	out.Bands = out.Bands[:0]
	for _, b := range s.Bands {
		if want[b.ID] {
			out.Bands = append(out.Bands, cloneBand(b))
		}
	}
	absences := out.KnownAbsences[:0]
	for _, a := range s.KnownAbsences {
		if want[a.Band] {
			absences = append(absences, a)
		}
	}
	out.KnownAbsences = absences
	return out, nil
}

func apply(s *domain.Survey, o Override) error {
	if len(o.Fields) > 0 {
		fields, err := domain.NewFields(o.Fields)
		if err != nil {
			return err
		}
		s.Fields = fields
	}
	for _, bo := range o.Bands {
		if err := applyBand(s, bo); err != nil {
			return err
		}
	}
	if o.Lines != nil {
		lines := make([]domain.SpectralLine, 0, len(o.Lines))
		for _, l := range o.Lines {
			q, err := freq.Parse(l.Rest)
			if err != nil {
				return fmt.Errorf("%w: line %s: %v", domain.ErrConfiguration, l.Name, err)
			}
			lines = append(lines, domain.SpectralLine{Name: l.Name, Rest: q})
		}
		s.Lines = lines
	}
	if o.KnownAbsences != nil {
		s.KnownAbsences = append([]domain.KnownAbsence(nil), o.KnownAbsences...)
	}
	return nil
}

func applyBand(s *domain.Survey, bo BandOverride) error {
	idx := -1
	for i, b := range s.Bands {
		if b.ID == bo.ID {
			idx = i
			break
		}
	}
	if bo.Remove {
		if idx >= 0 {
			s.Bands = append(s.Bands[:idx], s.Bands[idx+1:]...)
		}
		return nil
	}
	if idx < 0 {
		s.Bands = append(s.Bands, domain.Band{ID: bo.ID})
		idx = len(s.Bands) - 1
	}
	band := &s.Bands[idx]
	for _, wo := range bo.Windows {
		if err := applyWindow(band, wo); err != nil {
			return fmt.Errorf("band %s: %w", bo.ID, err)
		}
	}
	sort.Slice(band.Windows, func(i, j int) bool { return band.Windows[i].ID < band.Windows[j].ID })
	return nil
}

func applyWindow(b *domain.Band, wo WindowOverride) error {
	idx := -1
	for i, w := range b.Windows {
		if w.ID == wo.ID {
			idx = i
			break
		}
	}
	if wo.Remove {
		if idx >= 0 {
			b.Windows = append(b.Windows[:idx], b.Windows[idx+1:]...)
		}
		return nil
	}

	var w domain.SpectralWindow
	if idx >= 0 {
		w = b.Windows[idx]
	} else {
		if wo.Min == "" || wo.Max == "" || wo.Channels == 0 {
			return fmt.Errorf("%w: new spw %d needs min, max and channels", domain.ErrConfiguration, wo.ID)
		}
		w.ID = wo.ID
	}
	if wo.Min != "" {
		q, err := freq.Parse(wo.Min)
		if err != nil {
			return fmt.Errorf("%w: spw %d min: %v", domain.ErrConfiguration, wo.ID, err)
		}
		w.Min = q
	}
	if wo.Max != "" {
		q, err := freq.Parse(wo.Max)
		if err != nil {
			return fmt.Errorf("%w: spw %d max: %v", domain.ErrConfiguration, wo.ID, err)
		}
		w.Max = q
	}
	if wo.Channels != 0 {
		w.Channels = wo.Channels
	}

	if idx >= 0 {
		b.Windows[idx] = w
	} else {
		b.Windows = append(b.Windows, w)
	}
	return nil
}

func clone(s domain.Survey) domain.Survey {
	out := domain.Survey{
		Bands:         make([]domain.Band, len(s.Bands)),
		Fields:        append([]domain.Field(nil), s.Fields...),
		Lines:         append([]domain.SpectralLine(nil), s.Lines...),
		KnownAbsences: append([]domain.KnownAbsence(nil), s.KnownAbsences...),
	}
	for i, b := range s.Bands {
		out.Bands[i] = cloneBand(b)
	}
	return out
}

func cloneBand(b domain.Band) domain.Band {
	return domain.Band{ID: b.ID, Windows: append([]domain.SpectralWindow(nil), b.Windows...)}
}
