package coverage

import "github.com/alma-imf/contsel/internal/domain"

// Re-exported domain types.
type (
	Report         = domain.Report
	BandCoverage   = domain.BandCoverage
	WindowCoverage = domain.WindowCoverage
	FieldWindow    = domain.FieldWindow
	BandID         = domain.BandID
	BandError      = domain.BandError
	Survey         = domain.Survey
	Band           = domain.Band
	SpectralWindow = domain.SpectralWindow
	Field          = domain.Field
	SpectralLine   = domain.SpectralLine
	KnownAbsence   = domain.KnownAbsence
)

// Re-exported domain errors.
var (
	ErrValidation           = domain.ErrValidation
	ErrMissingSelectionFile = domain.ErrMissingSelectionFile
	ErrInvariantViolation   = domain.ErrInvariantViolation
	ErrConfiguration        = domain.ErrConfiguration
)
