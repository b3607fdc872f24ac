package app

import (
	"context"
	"time"

	"github.com/alma-imf/contsel/internal/domain"
	"github.com/alma-imf/contsel/internal/ports"
)

// EngineConfig contains the inputs of a coverage run.
type EngineConfig struct {
	Survey domain.Survey

	// Frame is recorded on the report; filtering happens in the reader.
	Frame string

	// Now stamps the report. Defaults to time.Now.
	Now func() time.Time
}

// Engine runs the band / spectral window / field passes.
type Engine struct {
	config     EngineConfig
	rasterizer *Rasterizer
	logger     ports.Logger
}

// NewEngine creates an engine with the given dependencies.
func NewEngine(
	config EngineConfig,
	lookup ports.SelectionLookup,
	reader ports.SelectionReader,
	logger ports.Logger,
) *Engine {
	if config.Now == nil {
		config.Now = time.Now
	}
	return &Engine{
		config:     config,
		rasterizer: NewRasterizer(lookup, reader, logger),
		logger:     logger,
	}
}

// Run computes the coverage report.
// On a fatal error it stops and returns the bands completed so far together
// with a *domain.BandError naming the failing band.
func (e *Engine) Run(ctx context.Context) (domain.Report, error) {
	s := e.config.Survey
	report := domain.Report{
		Frame:       e.config.Frame,
		GeneratedAt: e.config.Now().UTC(),
	}

	if err := s.Validate(); err != nil {
		return report, err
	}

	for _, band := range s.Bands {
		start := time.Now()
		bc, err := e.runBand(ctx, s, band)
		if err != nil {
			e.logger.Error("band failed",
				ports.String("band", string(band.ID)),
				ports.Err(err),
			)
			return report, &domain.BandError{Band: band.ID, Err: err}
		}
		report.Bands = append(report.Bands, bc)
		e.logger.Info("band complete",
			ports.String("band", string(band.ID)),
			ports.Int("spws", len(band.Windows)),
			ports.Stringer("total", bc.Total),
			ports.Duration("elapsed", time.Since(start)),
		)
	}
	return report, nil
}

func (e *Engine) runBand(ctx context.Context, s domain.Survey, band domain.Band) (domain.BandCoverage, error) {
	agg := NewAggregator(band, s.Fields, s.Lines)

	for _, spw := range band.Windows {
		if err := ctx.Err(); err != nil {
			return domain.BandCoverage{}, err
		}

		r, err := e.rasterizer.Rasterize(ctx, band.ID, spw, s.Fields)
		if err != nil {
			return domain.BandCoverage{}, err
		}
		if err := requireExclusions(band.ID, spw, r.Mask); err != nil {
			return domain.BandCoverage{}, err
		}
		if err := checkKnownAbsences(s, band.ID, spw, r.Mask); err != nil {
			return domain.BandCoverage{}, err
		}

		agg.Add(spw, r)
		e.logger.Debug("spw complete",
			ports.String("band", string(band.ID)),
			ports.Int("spw", spw.ID),
			ports.Int("channels", spw.Channels),
			ports.Stringer("width", r.Grid.Width),
			ports.Int("missing", len(r.Missing)),
		)
	}

	return agg.Finish()
}
