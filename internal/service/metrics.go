package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks render cost per output format. A nil *Metrics records nothing.
type Metrics struct {
	renderDuration *prometheus.HistogramVec
	renderFailures *prometheus.CounterVec
}

// NewMetrics registers the render collectors on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		renderDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cv_render_duration_seconds",
				Help:    "Time spent rendering a CV document.",
				Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10, 30},
			},
			[]string{"format"},
		),
		renderFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cv_render_failures_total",
				Help: "Renders that returned an error.",
			},
			[]string{"format"},
		),
	}
	for _, c := range []prometheus.Collector{m.renderDuration, m.renderFailures} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observeRender(format string, start time.Time, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.renderFailures.WithLabelValues(format).Inc()
		return
	}
	m.renderDuration.WithLabelValues(format).Observe(time.Since(start).Seconds())
}
