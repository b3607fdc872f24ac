package report

import (
	"context"

	"github.com/alma-imf/contsel/internal/domain"
)

// Repository handles report persistence.
type Repository interface {
	// Load retrieves the last saved report.
	// Returns an empty report and nil error if none exists.
	Load(ctx context.Context) (domain.Report, error)

	// Save persists the report atomically.
	Save(ctx context.Context, r domain.Report) error
}
