// Package metrics provides Prometheus instruments for the frame pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns the pipeline's Prometheus instruments. A nil *Manager is valid
// and records nothing.
type Manager struct {
	namespace       string
	durationBuckets []float64
	registry        *prometheus.Registry

	framesProcessed prometheus.Counter
	framesWithout   prometheus.Counter
	framesSkipped   prometheus.Counter
	commandsEmitted *prometheus.CounterVec
	sinkErrors      *prometheus.CounterVec
	detectErrors    prometheus.Counter
	latchEngaged    prometheus.Gauge
	mediaState      prometheus.Gauge
	frameDuration   prometheus.Histogram
}

// New creates a Manager. Without WithRegistry the instruments live on a fresh
// registry, so several managers can coexist in tests.
func New(opts ...Option) *Manager {
	m := &Manager{
		namespace:       "mudra",
		durationBuckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	auto := promauto.With(m.registry)

	m.framesProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "frames_processed_total",
		Help:      "Frames run through detection and the active controller.",
	})
	m.framesWithout = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "frames_without_hand_total",
		Help:      "Processed frames in which the selected hand was absent.",
	})
	m.framesSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "frames_skipped_total",
		Help:      "Frames dropped by the motion gate before detection.",
	})
	m.commandsEmitted = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "commands_emitted_total",
		Help:      "Commands emitted by the active controller, by kind.",
	}, []string{"kind"})
	m.sinkErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "sink_errors_total",
		Help:      "Commands the input-injection sink failed to deliver.",
	}, []string{"sink"})
	m.detectErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "detect_errors_total",
		Help:      "Landmark detection failures.",
	})
	m.latchEngaged = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "pinch_engaged",
		Help:      "1 while the pinch latch holds the button down.",
	})
	m.mediaState = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "media_state",
		Help:      "Media controller state: 0 idle, 1 playing, 2 paused.",
	})
	m.frameDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "frame_duration_seconds",
		Help:      "Time spent processing one frame.",
		Buckets:   m.durationBuckets,
	})

	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Manager) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the registry the instruments are registered on.
func (m *Manager) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveFrame records one processed frame.
func (m *Manager) ObserveFrame(d time.Duration, handPresent bool) {
	if m == nil {
		return
	}
	m.framesProcessed.Inc()
	if !handPresent {
		m.framesWithout.Inc()
	}
	m.frameDuration.Observe(d.Seconds())
}

// FrameSkipped records a frame dropped by the motion gate.
func (m *Manager) FrameSkipped() {
	if m == nil {
		return
	}
	m.framesSkipped.Inc()
}

// CommandEmitted counts one command by kind name.
func (m *Manager) CommandEmitted(kind string) {
	if m == nil {
		return
	}
	m.commandsEmitted.WithLabelValues(kind).Inc()
}

// SinkError counts one failed delivery.
func (m *Manager) SinkError(sink string) {
	if m == nil {
		return
	}
	m.sinkErrors.WithLabelValues(sink).Inc()
}

// DetectError counts one detection failure.
func (m *Manager) DetectError() {
	if m == nil {
		return
	}
	m.detectErrors.Inc()
}

// SetLatch records the pinch latch state.
func (m *Manager) SetLatch(engaged bool) {
	if m == nil {
		return
	}
	if engaged {
		m.latchEngaged.Set(1)
	} else {
		m.latchEngaged.Set(0)
	}
}

// SetMediaState records the media controller state.
func (m *Manager) SetMediaState(state int) {
	if m == nil {
		return
	}
	m.mediaState.Set(float64(state))
}
