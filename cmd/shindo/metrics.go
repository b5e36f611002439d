package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors of the intensity receiver.
type Metrics struct {
	Evaluations *prometheus.CounterVec // labels: unit
	Failures    *prometheus.CounterVec // labels: unit, reason
	Intensity   *prometheus.GaugeVec   // labels: unit
	AValue      *prometheus.GaugeVec   // labels: unit
	Duration    prometheus.Histogram

	registry *prometheus.Registry
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shindo",
			Name:      "evaluations_total",
			Help:      "Windows evaluated per unit.",
		}, []string{"unit"}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shindo",
			Name:      "failures_total",
			Help:      "Messages or windows that could not be evaluated.",
		}, []string{"unit", "reason"}),
		Intensity: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "shindo",
			Name:      "intensity",
			Help:      "Latest JMA instrumental seismic intensity.",
		}, []string{"unit"}),
		AValue: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "shindo",
			Name:      "avalue_gal",
			Help:      "Latest a-value in gal.",
		}, []string{"unit"}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "shindo",
			Name:      "evaluation_duration_seconds",
			Help:      "Duration of one intensity computation.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		registry: prometheus.NewRegistry(),
	}
	m.registry.MustRegister(m.Evaluations, m.Failures, m.Intensity, m.AValue, m.Duration)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
