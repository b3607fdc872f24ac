// Package coverage provides an embeddable continuum coverage engine for the
// ALMA-IMF survey.
//
// For every band, spectral window and field, the engine reads the field's
// cont.dat selection file, rasterizes the excluded frequency ranges onto the
// window's channel grid and reports how much bandwidth is left for
// continuum imaging.
//
// # Basic Usage
//
//	cfg := coverage.Config{
//	    LookupPath: "/data/contdatfiles.json",
//	}
//
//	c, err := coverage.New(cfg,
//	    coverage.WithSink(report.NewFileRepository("/data/reports")),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	r, err := c.Run(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(r.BandFractions())
//
// # Configuration
//
// Only LookupPath is required. BaseDir defaults to the directory holding
// the lookup table and Frame defaults to LSRK. BandTable names a YAML file
// of survey overrides (extra or patched spectral windows, a different line
// catalog) and Bands restricts a run to a subset of bands.
//
// # Errors
//
// Run returns errors wrapping one of [ErrValidation], [ErrInvariantViolation]
// or [ErrConfiguration]; use errors.Is to classify them and errors.As with
// *[BandError] to find the failing band. Missing selection files are not
// errors: they are logged and flagged on the report.
//
// # Plugins
//
// Plugins registered with [WithPlugin] are initialized by [Coverage.Start]
// and receive a Trigger that re-runs the engine. The selectionwatcher
// plugin uses it to recompute coverage whenever a selection file changes.
package coverage
