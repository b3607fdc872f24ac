package ports

import (
	"context"

	"github.com/alma-imf/contsel/internal/domain"
)

// ReportSink receives the report of every successful run.
type ReportSink interface {
	Publish(ctx context.Context, report domain.Report) error
}
