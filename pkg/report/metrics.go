package report

import (
	"context"
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/alma-imf/contsel/internal/domain"
)

// Metrics exposes coverage reports as Prometheus gauges.
type Metrics struct {
	gatherer prometheus.Gatherer
	textfile string

	IncludedBandwidth *prometheus.GaugeVec
	BandFraction      *prometheus.GaugeVec
	ExcludedFraction  *prometheus.GaugeVec
	TotalBandwidth    *prometheus.GaugeVec
	MissingSelections *prometheus.GaugeVec
	Runs              *prometheus.CounterVec
	LastRun           prometheus.Gauge
}

// NewMetrics registers the coverage metrics against reg, defaulting to the
// global Prometheus registry when nil.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}
	m := &Metrics{gatherer: gatherer}

	var err error
	if m.IncludedBandwidth, err = registerGaugeVec(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "contsel_included_bandwidth_hz",
		Help: "Bandwidth left for continuum imaging, per band and field.",
	}, []string{"band", "field"}), "contsel_included_bandwidth_hz"); err != nil {
		return nil, err
	}
	if m.BandFraction, err = registerGaugeVec(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "contsel_band_fraction",
		Help: "Included bandwidth divided by declared bandwidth, per band and field.",
	}, []string{"band", "field"}), "contsel_band_fraction"); err != nil {
		return nil, err
	}
	if m.ExcludedFraction, err = registerGaugeVec(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "contsel_excluded_channel_fraction",
		Help: "Fraction of channels excluded, per band, spectral window and field.",
	}, []string{"band", "spw", "field"}), "contsel_excluded_channel_fraction"); err != nil {
		return nil, err
	}
	if m.TotalBandwidth, err = registerGaugeVec(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "contsel_band_total_bandwidth_hz",
		Help: "Declared bandwidth summed over spectral windows, per band.",
	}, []string{"band"}), "contsel_band_total_bandwidth_hz"); err != nil {
		return nil, err
	}
	if m.MissingSelections, err = registerGaugeVec(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "contsel_missing_selection_files",
		Help: "Fields without a selection file, per band.",
	}, []string{"band"}), "contsel_missing_selection_files"); err != nil {
		return nil, err
	}
	if m.Runs, err = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "contsel_runs_total",
		Help: "Coverage runs, labeled by result.",
	}, []string{"result"}), "contsel_runs_total"); err != nil {
		return nil, err
	}
	if m.LastRun, err = registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "contsel_last_run_timestamp_seconds",
		Help: "Unix time of the last successful coverage run.",
	}), "contsel_last_run_timestamp_seconds"); err != nil {
		return nil, err
	}
	return m, nil
}

// WithTextfile makes Publish also write every metric to path in the text
// exposition format.
func (m *Metrics) WithTextfile(path string) *Metrics {
	m.textfile = path
	return m
}

// Observe replaces the coverage gauges with the content of r.
func (m *Metrics) Observe(r domain.Report) {
	m.IncludedBandwidth.Reset()
	m.BandFraction.Reset()
	m.ExcludedFraction.Reset()
	m.TotalBandwidth.Reset()
	m.MissingSelections.Reset()

	for _, b := range r.Bands {
		band := string(b.Band)
		m.TotalBandwidth.WithLabelValues(band).Set(b.Total.Hertz())
		for field, q := range b.Included {
			m.IncludedBandwidth.WithLabelValues(band, field).Set(q.Hertz())
		}
		for field, f := range b.Fraction {
			m.BandFraction.WithLabelValues(band, field).Set(f)
		}

		missing := make(map[string]bool)
		for _, wc := range b.Windows {
			spw := strconv.Itoa(wc.Window.ID)
			for _, fw := range wc.Fields {
				m.ExcludedFraction.WithLabelValues(band, spw, fw.Field).Set(fw.ExcludedFraction)
				if fw.Missing {
					missing[fw.Field] = true
				}
			}
		}
		m.MissingSelections.WithLabelValues(band).Set(float64(len(missing)))
	}
	m.LastRun.Set(float64(r.GeneratedAt.Unix()))
}

// ObserveRun counts a run outcome.
func (m *Metrics) ObserveRun(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.Runs.WithLabelValues(result).Inc()
}

// Publish implements ports.ReportSink.
func (m *Metrics) Publish(ctx context.Context, r domain.Report) error {
	m.Observe(r)
	if m.textfile == "" {
		return nil
	}
	return m.WriteTextfile(m.textfile)
}

// WriteTextfile writes every gathered metric to path, atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.gatherer); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}

func registerGaugeVec(reg prometheus.Registerer, vec *prometheus.GaugeVec, name string) (*prometheus.GaugeVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.GaugeVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
