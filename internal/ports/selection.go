package ports

import (
	"context"

	"github.com/alma-imf/contsel/internal/domain"
	"github.com/alma-imf/contsel/pkg/selection"
)

// SelectionLookup maps a field and band to the path of its selection file.
type SelectionLookup interface {
	// Lookup returns the path for field in band, or false when the survey
	// has no selection file for that pair.
	Lookup(field string, band domain.BandID) (string, bool)

	// Paths lists every distinct selection file path, sorted.
	Paths() []string
}

// SelectionReader reads the intervals a selection file excludes.
type SelectionReader interface {
	// ReadSelection parses the file at path. Malformed or reversed ranges
	// fail the whole file.
	ReadSelection(ctx context.Context, path string) (selection.Selection, error)
}
