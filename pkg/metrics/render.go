package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RenderMetrics records sketch rendering and document export outcomes.
type RenderMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewRenderMetrics registers the render metrics on the provided registerer.
func NewRenderMetrics(reg prometheus.Registerer) *RenderMetrics {
	if reg == nil {
		return &RenderMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "render_duration_seconds",
		Help:    "Duration of sketch renders and exports in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"target"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "render_success",
		Help: "Successful sketch renders and exports.",
	}, []string{"target"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "render_failure",
		Help: "Failed sketch renders and exports.",
	}, []string{"target"})
	reg.MustRegister(duration, success, failure)
	return &RenderMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the duration for the named render target.
func (m *RenderMetrics) ObserveDuration(target string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(target)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named render target.
func (m *RenderMetrics) IncSuccess(target string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(target)).Inc()
}

// IncFailure increments the failure counter for the named render target.
func (m *RenderMetrics) IncFailure(target string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(target)).Inc()
}

func normalizeLabel(target string) string {
	if target == "" {
		return "unknown"
	}
	return target
}
