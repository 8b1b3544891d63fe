package metrics

import (
	"context"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// invokeBuckets are tuned for host invocations, which range from an in-process
// recorder (sub-millisecond) to a cluster round trip (seconds).
var invokeBuckets = []float64{0.1, 0.5, 1, 5, 10, 50, 100, 250, 500, 1000, 2500, 5000}

// PrometheusMetrics exports metrics through a dedicated prometheus.Registry.
// Collectors are created on first use of a name.
type PrometheusMetrics struct {
	namespace string
	registry  *prometheus.Registry
	factory   promauto.Factory

	mu         sync.Mutex
	gauges     map[string]prometheus.Gauge
	counters   map[string]prometheus.Counter
	histograms map[string]prometheus.Histogram
}

// NewPrometheusMetrics creates a PrometheusMetrics whose metric names are
// prefixed with namespace.
func NewPrometheusMetrics(namespace string) *PrometheusMetrics {
	reg := prometheus.NewRegistry()
	return &PrometheusMetrics{
		namespace:  namespace,
		registry:   reg,
		factory:    promauto.With(reg),
		gauges:     make(map[string]prometheus.Gauge),
		counters:   make(map[string]prometheus.Counter),
		histograms: make(map[string]prometheus.Histogram),
	}
}

// Registry returns the registry holding the swap collectors.
func (p *PrometheusMetrics) Registry() *prometheus.Registry {
	return p.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (p *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// Initialize implements Metrics.
func (p *PrometheusMetrics) Initialize(context.Context) error { return nil }

// Flush implements Metrics. Prometheus scrapes, so there is nothing to push.
func (p *PrometheusMetrics) Flush(context.Context) error { return nil }

// Shutdown implements Metrics.
func (p *PrometheusMetrics) Shutdown(context.Context) error { return nil }

// UpdateGauge implements Metrics.
func (p *PrometheusMetrics) UpdateGauge(_ context.Context, name string, value float64) error {
	p.gauge(name).Set(value)
	return nil
}

// IncrementCounter implements Metrics.
func (p *PrometheusMetrics) IncrementCounter(_ context.Context, name string, value uint64) error {
	p.counter(name).Add(float64(value))
	return nil
}

// RecordHistogram implements Metrics.
func (p *PrometheusMetrics) RecordHistogram(_ context.Context, name string, value float64) error {
	p.histogram(name).Observe(value)
	return nil
}

func (p *PrometheusMetrics) gauge(name string) prometheus.Gauge {
	p.mu.Lock()
	defer p.mu.Unlock()

	g, ok := p.gauges[name]
	if !ok {
		g = p.factory.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Name:      name,
			Help:      "swapcpi gauge " + name,
		})
		p.gauges[name] = g
	}
	return g
}

func (p *PrometheusMetrics) counter(name string) prometheus.Counter {
	p.mu.Lock()
	defer p.mu.Unlock()

	c, ok := p.counters[name]
	if !ok {
		c = p.factory.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Name:      name,
			Help:      "swapcpi counter " + name,
		})
		p.counters[name] = c
	}
	return c
}

func (p *PrometheusMetrics) histogram(name string) prometheus.Histogram {
	p.mu.Lock()
	defer p.mu.Unlock()

	h, ok := p.histograms[name]
	if !ok {
		h = p.factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Name:      name,
			Help:      "swapcpi histogram " + name,
			Buckets:   invokeBuckets,
		})
		p.histograms[name] = h
	}
	return h
}
