package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics implements EngineHooks and HTTPHooks with Prometheus collectors
// on a private registry.
type Metrics struct {
	LoadsTotal          *prometheus.CounterVec
	LoadDuration        prometheus.Histogram
	RepairsTotal        prometheus.Counter
	StructuresLoaded    prometheus.Histogram
	SavesTotal          *prometheus.CounterVec
	SaveSizeBytes       prometheus.Histogram
	MutationsTotal      *prometheus.CounterVec
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewMetrics creates a Metrics with all collectors registered.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}
	f := promauto.With(m.registry)

	m.LoadsTotal = f.NewCounterVec(prometheus.CounterOpts{
		Name: "hellion_blueprint_loads_total",
		Help: "Blueprint documents reconstructed, by result",
	}, []string{"result"})
	m.LoadDuration = f.NewHistogram(prometheus.HistogramOpts{
		Name:    "hellion_blueprint_load_duration_seconds",
		Help:    "Time to decode and reconstruct a blueprint",
		Buckets: prometheus.DefBuckets,
	})
	m.RepairsTotal = f.NewCounter(prometheus.CounterOpts{
		Name: "hellion_blueprint_repairs_total",
		Help: "Port data repairs made while reconstructing blueprints",
	})
	m.StructuresLoaded = f.NewHistogram(prometheus.HistogramOpts{
		Name:    "hellion_blueprint_structures",
		Help:    "Structures per loaded blueprint",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250},
	})
	m.SavesTotal = f.NewCounterVec(prometheus.CounterOpts{
		Name: "hellion_blueprint_saves_total",
		Help: "Blueprint documents written, by result",
	}, []string{"result"})
	m.SaveSizeBytes = f.NewHistogram(prometheus.HistogramOpts{
		Name:    "hellion_blueprint_save_size_bytes",
		Help:    "Size of written blueprint documents",
		Buckets: []float64{1000, 10000, 100000, 1000000},
	})
	m.MutationsTotal = f.NewCounterVec(prometheus.CounterOpts{
		Name: "hellion_blueprint_mutations_total",
		Help: "Graph mutations, by operation and result status",
	}, []string{"op", "status"})
	m.HTTPRequestsTotal = f.NewCounterVec(prometheus.CounterOpts{
		Name: "hellion_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})
	m.HTTPRequestDuration = f.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hellion_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	return m
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Metrics) OnLoad(_ context.Context, structures, repairs int, duration time.Duration, err error) {
	m.LoadsTotal.WithLabelValues(result(err)).Inc()
	m.LoadDuration.Observe(duration.Seconds())
	if err == nil {
		m.RepairsTotal.Add(float64(repairs))
		m.StructuresLoaded.Observe(float64(structures))
	}
}

func (m *Metrics) OnSave(_ context.Context, size int, _ time.Duration, err error) {
	m.SavesTotal.WithLabelValues(result(err)).Inc()
	if err == nil {
		m.SaveSizeBytes.Observe(float64(size))
	}
}

func (m *Metrics) OnMutation(_ context.Context, op, status string) {
	m.MutationsTotal.WithLabelValues(op, status).Inc()
}

func (m *Metrics) OnRequest(_ context.Context, method, route string, statusCode int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

var (
	_ EngineHooks = (*Metrics)(nil)
	_ HTTPHooks   = (*Metrics)(nil)
)
