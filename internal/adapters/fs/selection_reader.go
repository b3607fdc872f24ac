package fs

import (
	"context"

	"github.com/alma-imf/contsel/pkg/selection"
)

// SelectionReader implements ports.SelectionReader for cont.dat files.
type SelectionReader struct {
	frame string
}

// NewSelectionReader returns a reader honouring only lines tagged frame.
func NewSelectionReader(frame string) *SelectionReader {
	return &SelectionReader{frame: frame}
}

// Frame returns the reference frame the reader filters on.
func (r *SelectionReader) Frame() string { return r.frame }

// ReadSelection reads and parses the selection file at path.
func (r *SelectionReader) ReadSelection(ctx context.Context, path string) (selection.Selection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	joined, err := selection.ParseFile(path, r.frame)
	if err != nil {
		return nil, err
	}
	return selection.Parse(joined, r.frame)
}
