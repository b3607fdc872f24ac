package selection

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alma-imf/contsel/pkg/freq"
)

// DefaultFrame is the reference frame used by the survey pipeline.
const DefaultFrame = "LSRK"

// maxLineBytes bounds a single selection-file line.
const maxLineBytes = 1 << 20

// Classify decides whether line belongs to frame and returns its range
// token. The frame tag must appear as a whole whitespace-delimited field or
// be glued directly to the unit of the range token; an incidental substring
// such as "LSRKX" or "NOLSRK" does not qualify. Comment lines start with '#'.
func Classify(line, frame string) (string, bool) {
	if frame == "" {
		return "", false
	}
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return "", false
	}
	for _, f := range fields[1:] {
		if f == frame {
			return fields[0], true
		}
	}
	if taggedRange(fields[0], frame) {
		return fields[0], true
	}
	return "", false
}

// taggedRange reports whether tok is "<low>~<high><unit><frame>".
func taggedRange(tok, frame string) bool {
	_, high, ok := strings.Cut(tok, "~")
	if !ok {
		return false
	}
	_, rest, err := freq.ParsePrefix(high)
	return err == nil && rest == frame
}

// ReadTokens returns the range tokens of every line of r that belongs to
// frame, in file order.
func ReadTokens(r io.Reader, frame string) ([]string, error) {
	var tokens []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		if tok, ok := Classify(sc.Text(), frame); ok {
			tokens = append(tokens, tok)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}

// ParseFile reads the selection file at path and returns its eligible range
// tokens joined with Separator. A file without eligible lines yields "".
func ParseFile(path, frame string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	tokens, err := ReadTokens(f, frame)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return Join(tokens), nil
}
