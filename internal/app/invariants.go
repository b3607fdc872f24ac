package app

import (
	"fmt"

	"github.com/alma-imf/contsel/internal/domain"
)

// requireExclusions fails when no field excluded any channel of spw.
func requireExclusions(band domain.BandID, spw domain.SpectralWindow, mask *domain.Mask) error {
	if !mask.Any() {
		return fmt.Errorf("%w: band %s spw %d: no channel excluded by any field", domain.ErrInvariantViolation, band, spw.ID)
	}
	return nil
}

// checkKnownAbsences fails when a field declared absent from band excluded a
// channel of spw.
func checkKnownAbsences(s domain.Survey, band domain.BandID, spw domain.SpectralWindow, mask *domain.Mask) error {
	for _, a := range s.KnownAbsences {
		if a.Band != band {
			continue
		}
		f, ok := s.Field(a.Field)
		if !ok {
			return fmt.Errorf("%w: known absence names unknown field %q", domain.ErrConfiguration, a.Field)
		}
		if n := mask.Excluded(f.Index); n > 0 {
			return fmt.Errorf("%w: band %s spw %d: %s excludes %d channels but is declared absent (%s)",
				domain.ErrInvariantViolation, band, spw.ID, a.Field, n, a.Reason)
		}
	}
	return nil
}
