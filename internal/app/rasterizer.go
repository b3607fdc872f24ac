package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/alma-imf/contsel/internal/domain"
	"github.com/alma-imf/contsel/internal/ports"
	"github.com/alma-imf/contsel/pkg/selection"
)

// Rasterizer turns per-field selections into a channel mask for one
// spectral window.
type Rasterizer struct {
	lookup ports.SelectionLookup
	reader ports.SelectionReader
	logger ports.Logger
}

// NewRasterizer creates a rasterizer.
func NewRasterizer(lookup ports.SelectionLookup, reader ports.SelectionReader, logger ports.Logger) *Rasterizer {
	return &Rasterizer{lookup: lookup, reader: reader, logger: logger}
}

// Raster is the outcome of rasterizing one spectral window.
type Raster struct {
	Mask *domain.Mask
	Grid Grid

	// Missing lists the fields that had no selection file for the band.
	Missing map[string]bool
}

// Rasterize builds the mask of spw in band for fields. Fields without a
// selection file keep an all-false row. A selection that cannot be read or
// parsed aborts the window.
func (r *Rasterizer) Rasterize(ctx context.Context, band domain.BandID, spw domain.SpectralWindow, fields []domain.Field) (Raster, error) {
	grid, err := BuildGrid(spw)
	if err != nil {
		return Raster{}, err
	}
	mask := domain.NewMask(len(fields), grid.Len())
	missing := make(map[string]bool)

	for _, f := range fields {
		if err := ctx.Err(); err != nil {
			return Raster{}, err
		}

		path, ok := r.lookup.Lookup(f.Name, band)
		if !ok {
			r.logger.Warn("selection file missing",
				ports.String("field", f.Name),
				ports.String("band", string(band)),
				ports.Err(domain.ErrMissingSelectionFile),
			)
			missing[f.Name] = true
			continue
		}

		sel, err := r.reader.ReadSelection(ctx, path)
		if err != nil {
			if errors.Is(err, selection.ErrInvalidInterval) || errors.Is(err, selection.ErrMalformedToken) {
				return Raster{}, fmt.Errorf("%w: field %s band %s (%s): %w", domain.ErrValidation, f.Name, band, path, err)
			}
			return Raster{}, fmt.Errorf("field %s band %s: read %s: %w", f.Name, band, path, err)
		}

		mark(mask, f.Index, grid, sel)
		r.logger.Debug("rasterized selection",
			ports.String("field", f.Name),
			ports.String("band", string(band)),
			ports.Int("spw", spw.ID),
			ports.Int("ranges", len(sel)),
			ports.Int("excluded", mask.Excluded(f.Index)),
		)
	}

	return Raster{Mask: mask, Grid: grid, Missing: missing}, nil
}

// mark sets every channel of row strictly inside one of the intervals.
func mark(mask *domain.Mask, row int, grid Grid, sel selection.Selection) {
	for _, iv := range sel {
		lo, hi := iv.Low.In(grid.Unit), iv.High.In(grid.Unit)
		for ch, f := range grid.Samples {
			if lo < f && f < hi {
				mask.Set(row, ch)
			}
		}
	}
}
