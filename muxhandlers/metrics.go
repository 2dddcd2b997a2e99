package muxhandlers

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vitalvas/kroute/mux"
)

type metricsKey struct{}

// MetricsConfig configures the Prometheus metrics hooks.
type MetricsConfig struct {
	// Namespace is the metrics namespace. Defaults to "kroute".
	Namespace string

	// Subsystem is the metrics subsystem.
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for dispatch duration.
	// Defaults to prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registry the collectors are registered
	// with. Defaults to prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// dispatchMetrics holds the collectors shared by a pair of metrics hooks.
type dispatchMetrics struct {
	dispatches *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	inFlight   prometheus.Gauge
}

func newDispatchMetrics(cfg MetricsConfig) *dispatchMetrics {
	factory := promauto.With(cfg.Registry)

	return &dispatchMetrics{
		dispatches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "dispatches_total",
			Help:        "Total number of dispatched requests by endpoint, action and status.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"endpoint", "action", "status"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "dispatch_duration_seconds",
			Help:        "Time from endpoint resolution to serialized response.",
			ConstLabels: cfg.ConstLabels,
			Buckets:     cfg.Buckets,
		}, []string{"endpoint", "action"}),

		inFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "dispatches_in_flight",
			Help:        "Number of dispatches currently running.",
			ConstLabels: cfg.ConstLabels,
		}),
	}
}

// MetricsHooks returns hooks that collect Prometheus metrics:
//
//   - kroute_dispatches_total: counter by endpoint, action and status
//   - kroute_dispatch_duration_seconds: histogram by endpoint and action
//   - kroute_dispatches_in_flight: gauge of running dispatches
//
// The collectors are registered when MetricsHooks is called, so it panics
// if called twice with the same registry.
func MetricsHooks(cfg MetricsConfig) (mux.HookBefore, mux.HookAfter) {
	if cfg.Namespace == "" {
		cfg.Namespace = "kroute"
	}
	if cfg.Buckets == nil {
		cfg.Buckets = prometheus.DefBuckets
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.DefaultRegisterer
	}

	m := newDispatchMetrics(cfg)

	before := func(req *mux.Request, _ *mux.Response, endpoint, method string, _ int) error {
		m.inFlight.Inc()
		req.SetValue(metricsKey{}, dispatchInfo{start: time.Now(), endpoint: endpoint, method: method})
		return nil
	}

	after := func(req *mux.Request, res *mux.Response, _ bool, _ string, _ int) {
		info, ok := req.Value(metricsKey{}).(dispatchInfo)
		if !ok {
			return
		}

		m.inFlight.Dec()
		m.dispatches.WithLabelValues(info.endpoint, info.method, strconv.Itoa(res.Status)).Inc()
		m.duration.WithLabelValues(info.endpoint, info.method).Observe(time.Since(info.start).Seconds())
	}

	return before, after
}
