package freq

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnknownUnit is returned when a unit symbol is not recognised.
	ErrUnknownUnit = errors.New("freq: unknown unit")

	// ErrMalformed is returned when a quantity string cannot be parsed.
	ErrMalformed = errors.New("freq: malformed quantity")
)

// Quantity is a frequency value tagged with its unit.
//
// Arithmetic keeps the receiver's unit. Converting a quantity into the unit it
// already carries returns the stored value untouched, so comparisons made in
// one unit are exact.
type Quantity struct {
	Value float64 `json:"value" yaml:"value"`
	Unit  Unit    `json:"unit" yaml:"unit"`
}

// New returns a quantity of v in unit u.
func New(v float64, u Unit) Quantity { return Quantity{Value: v, Unit: u} }

// In returns the value of q expressed in unit u.
func (q Quantity) In(u Unit) float64 {
	if q.Unit == u {
		return q.Value
	}
	return q.Value * q.Unit.Scale() / u.Scale()
}

// To converts q into unit u.
func (q Quantity) To(u Unit) Quantity { return Quantity{Value: q.In(u), Unit: u} }

// Hertz returns q in Hz.
func (q Quantity) Hertz() float64 { return q.In(Hz) }

// Add returns q + o in q's unit.
func (q Quantity) Add(o Quantity) Quantity {
	return Quantity{Value: q.Value + o.In(q.Unit), Unit: q.Unit}
}

// Sub returns q - o in q's unit.
func (q Quantity) Sub(o Quantity) Quantity {
	return Quantity{Value: q.Value - o.In(q.Unit), Unit: q.Unit}
}

// Mul scales q by f.
func (q Quantity) Mul(f float64) Quantity {
	return Quantity{Value: q.Value * f, Unit: q.Unit}
}

// Div returns q / n.
func (q Quantity) Div(n float64) Quantity {
	return Quantity{Value: q.Value / n, Unit: q.Unit}
}

// Ratio returns q / o as a dimensionless number.
func (q Quantity) Ratio(o Quantity) float64 {
	return q.Value / o.In(q.Unit)
}

// Less reports whether q < o.
func (q Quantity) Less(o Quantity) bool { return q.Value < o.In(q.Unit) }

// String formats q as "<value><unit>", e.g. "93.1737GHz".
func (q Quantity) String() string {
	return strconv.FormatFloat(q.Value, 'f', -1, 64) + string(q.Unit)
}

// Parse parses a quantity such as "93.173700GHz". Surrounding whitespace is
// ignored; the unit is mandatory.
func Parse(s string) (Quantity, error) {
	q, rest, err := ParsePrefix(strings.TrimSpace(s))
	if err != nil {
		return Quantity{}, err
	}
	if rest != "" {
		return Quantity{}, fmt.Errorf("%w: trailing %q in %q", ErrMalformed, rest, s)
	}
	return q, nil
}

// ParsePrefix parses a number immediately followed by a unit at the start of
// s and returns the unparsed remainder.
func ParsePrefix(s string) (Quantity, string, error) {
	num, tail := splitNumber(s)
	if num == "" {
		return Quantity{}, s, fmt.Errorf("%w: no number in %q", ErrMalformed, s)
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Quantity{}, s, fmt.Errorf("%w: %q: %v", ErrMalformed, s, err)
	}
	u, rest, ok := cutUnit(tail)
	if !ok {
		return Quantity{}, s, fmt.Errorf("%w: %q", ErrUnknownUnit, tail)
	}
	return Quantity{Value: v, Unit: u}, rest, nil
}

// ParseValue parses a bare number.
func ParseValue(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrMalformed, s, err)
	}
	return v, nil
}

// splitNumber returns the leading run of characters that may form a float
// literal and the rest of s.
func splitNumber(s string) (string, string) {
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c == '.', c == '+', c == '-':
		case c == 'e' || c == 'E':
			// An exponent marker must be followed by a digit or sign.
			if i+1 >= len(s) || !strings.ContainsRune("0123456789+-", rune(s[i+1])) {
				return s[:i], s[i:]
			}
		default:
			return s[:i], s[i:]
		}
		i++
	}
	return s, ""
}
