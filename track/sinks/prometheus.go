package sinks

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gradsignal/traintrack/track"
)

// Prometheus exports scalars as collectors: the latest value and step per
// tag, plus an emission counter. Prometheus keeps only the most recent value
// per tag, so the step gauge preserves where in the run that value came from.
type Prometheus struct {
	values    *prometheus.GaugeVec
	steps     *prometheus.GaugeVec
	emissions *prometheus.CounterVec
}

var _ track.Logger = (*Prometheus)(nil)

// NewPrometheus registers the collectors against the provided registry
// (prometheus.DefaultRegisterer when nil).
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &Prometheus{
		values: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "traintrack_scalar",
			Help: "Latest scalar value per tag.",
		}, []string{"tag"}),
		steps: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "traintrack_scalar_step",
			Help: "Step of the latest scalar value per tag.",
		}, []string{"tag"}),
		emissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "traintrack_scalar_emissions_total",
			Help: "Total scalars emitted per tag.",
		}, []string{"tag"}),
	}
	for _, collector := range []prometheus.Collector{s.values, s.steps, s.emissions} {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("register scalar collector: %w", err)
		}
	}
	return s, nil
}

// LogScalar updates the per-tag collectors.
func (s *Prometheus) LogScalar(_ context.Context, tag string, value float64, step int) error {
	s.values.WithLabelValues(tag).Set(value)
	s.steps.WithLabelValues(tag).Set(float64(step))
	s.emissions.WithLabelValues(tag).Inc()
	return nil
}
