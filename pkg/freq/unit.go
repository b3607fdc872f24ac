package freq

import "fmt"

// Unit is a frequency unit. The zero value is not a valid unit.
type Unit string

// Supported units.
const (
	Hz  Unit = "Hz"
	KHz Unit = "kHz"
	MHz Unit = "MHz"
	GHz Unit = "GHz"
)

// units is ordered longest symbol first so prefix matching never stops at "Hz"
// when a scaled unit is present.
var units = []Unit{KHz, MHz, GHz, Hz}

// Scale returns the number of hertz in one unit, or 0 for an unknown unit.
func (u Unit) Scale() float64 {
	switch u {
	case Hz:
		return 1
	case KHz:
		return 1e3
	case MHz:
		return 1e6
	case GHz:
		return 1e9
	default:
		return 0
	}
}

// Valid reports whether u is one of the supported units.
func (u Unit) Valid() bool { return u.Scale() != 0 }

// ParseUnit resolves a unit symbol. Symbols are case-sensitive: "mHz" is
// millihertz, not MHz, and is rejected.
func ParseUnit(s string) (Unit, error) {
	for _, u := range units {
		if s == string(u) {
			return u, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
}

// cutUnit matches the longest supported unit symbol at the start of s and
// returns it together with whatever follows.
func cutUnit(s string) (Unit, string, bool) {
	for _, u := range units {
		n := len(u)
		if len(s) >= n && s[:n] == string(u) {
			return u, s[n:], true
		}
	}
	return "", s, false
}
