package selection

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alma-imf/contsel/pkg/freq"
)

var (
	// ErrInvalidInterval is returned when a range has low >= high.
	ErrInvalidInterval = errors.New("selection: low bound not below high bound")

	// ErrMalformedToken is returned when a range token cannot be parsed.
	ErrMalformedToken = errors.New("selection: malformed range token")
)

// Interval is an open frequency range (Low, High). Low always carries the
// same unit as High.
type Interval struct {
	Low  freq.Quantity `json:"low"`
	High freq.Quantity `json:"high"`
}

// Contains reports whether f lies strictly inside the interval. f is
// expressed in unit u.
func (iv Interval) Contains(f float64, u freq.Unit) bool {
	return iv.Low.In(u) < f && f < iv.High.In(u)
}

// Width returns High - Low.
func (iv Interval) Width() freq.Quantity { return iv.High.Sub(iv.Low) }

// String formats the interval in selection-file syntax.
func (iv Interval) String() string {
	return fmt.Sprintf("%g~%s", iv.Low.Value, iv.High)
}

// ParseInterval parses a "<low>~<high><unit>" token. A trailing frame tag
// glued to the unit ("93.15GHzLSRK") is accepted when it equals frame.
func ParseInterval(token, frame string) (Interval, error) {
	token = strings.TrimSpace(token)
	lowStr, highStr, ok := strings.Cut(token, "~")
	if !ok {
		return Interval{}, fmt.Errorf("%w: %q has no '~'", ErrMalformedToken, token)
	}

	high, rest, err := freq.ParsePrefix(highStr)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: %q: %w", ErrMalformedToken, token, err)
	}
	if rest != "" && (frame == "" || rest != frame) {
		return Interval{}, fmt.Errorf("%w: %q: unexpected suffix %q", ErrMalformedToken, token, rest)
	}

	lowVal, err := freq.ParseValue(lowStr)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: %q: %v", ErrMalformedToken, token, err)
	}
	low := freq.New(lowVal, high.Unit)

	// Written as a negation so NaN bounds are rejected too.
	if !(low.Value < high.Value) {
		return Interval{}, fmt.Errorf("%w: %q", ErrInvalidInterval, token)
	}
	return Interval{Low: low, High: high}, nil
}
