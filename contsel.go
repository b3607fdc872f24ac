// Package contsel computes continuum bandwidth coverage for the ALMA-IMF
// survey.
//
// Example usage:
//
//	cfg := contsel.Config{LookupPath: "/data/alma-imf/contdatfiles.json"}
//	r, err := contsel.Run(context.Background(), cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(r.BandFractions())
//
// For sinks, plugins and custom surveys use pkg/coverage directly.
package contsel

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/alma-imf/contsel/internal/cliconfig"
	"github.com/alma-imf/contsel/internal/survey"
	"github.com/alma-imf/contsel/pkg/coverage"
)

// Config holds the configuration of a coverage run.
type Config = coverage.Config

// Report is the outcome of a coverage run.
type Report = coverage.Report

// Run computes the coverage report once.
func Run(ctx context.Context, cfg Config, opts ...coverage.Option) (Report, error) {
	c, err := coverage.New(cfg, opts...)
	if err != nil {
		return Report{}, err
	}
	return c.Run(ctx)
}

// DefaultSurvey returns the compiled-in ALMA-IMF band table, field list and
// line catalog.
func DefaultSurvey() coverage.Survey {
	return survey.Default()
}

// Logger returns the package-level zerolog logger used by the CLI.
func Logger() zerolog.Logger {
	return cliconfig.Logger()
}
