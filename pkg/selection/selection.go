package selection

import (
	"fmt"
	"strings"
)

// Separator joins range tokens in the serialized form exchanged between the
// file parser and the interval parser.
const Separator = ";"

// Selection is the ordered list of excluded intervals of one field, all in a
// single reference frame.
type Selection []Interval

// Join serializes tokens in order.
func Join(tokens []string) string { return strings.Join(tokens, Separator) }

// Split reverses Join. An empty string yields no tokens, so a list holding a
// single empty token does not survive the round trip; Classify never emits
// empty tokens.
func Split(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, Separator)
}

// Parse parses a ";"-joined list of range tokens. The first invalid token
// aborts the whole parse.
func Parse(joined, frame string) (Selection, error) {
	tokens := Split(joined)
	sel := make(Selection, 0, len(tokens))
	for i, tok := range tokens {
		iv, err := ParseInterval(tok, frame)
		if err != nil {
			return nil, fmt.Errorf("token %d: %w", i, err)
		}
		sel = append(sel, iv)
	}
	return sel, nil
}
