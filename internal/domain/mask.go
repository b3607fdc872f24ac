package domain

// Mask records, for one spectral window, which channels each field excluded
// from continuum imaging. true means excluded.
type Mask struct {
	fields   int
	channels int
	bits     []bool
}

// NewMask returns an all-false mask of fields x channels.
func NewMask(fields, channels int) *Mask {
	return &Mask{
		fields:   fields,
		channels: channels,
		bits:     make([]bool, fields*channels),
	}
}

// Fields returns the number of rows.
func (m *Mask) Fields() int { return m.fields }

// Channels returns the number of columns.
func (m *Mask) Channels() int { return m.channels }

// Set marks channel ch of field f as excluded.
func (m *Mask) Set(f, ch int) { m.bits[f*m.channels+ch] = true }

// At reports whether channel ch of field f is excluded.
func (m *Mask) At(f, ch int) bool { return m.bits[f*m.channels+ch] }

// Row returns a copy of field f's row.
func (m *Mask) Row(f int) []bool {
	row := make([]bool, m.channels)
	copy(row, m.bits[f*m.channels:(f+1)*m.channels])
	return row
}

// Excluded counts the excluded channels of field f.
func (m *Mask) Excluded(f int) int {
	n := 0
	for _, b := range m.bits[f*m.channels : (f+1)*m.channels] {
		if b {
			n++
		}
	}
	return n
}

// Included counts the channels of field f that were kept.
func (m *Mask) Included(f int) int { return m.channels - m.Excluded(f) }

// Any reports whether any field excluded any channel.
func (m *Mask) Any() bool {
	for _, b := range m.bits {
		if b {
			return true
		}
	}
	return false
}
