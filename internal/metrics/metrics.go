// Package metrics records swap dispatch activity.
//
// Dispatchers report through the Metrics interface; a Collection fans every call
// out to several backends so a process can log and export at the same time.
package metrics

import (
	"context"
	"log/slog"
	"sync"
)

// Metric names reported by the swap dispatcher.
const (
	MetricDispatchTotal            = "swap_dispatch_total"
	MetricDispatchSucceeded        = "swap_dispatch_succeeded"
	MetricDispatchFailed           = "swap_dispatch_failed"
	MetricUnknownProtocol          = "swap_unknown_protocol"
	MetricRegisteredProtocols      = "swap_registered_protocols"
	MetricInvokeTimeMilliseconds   = "swap_invoke_time_milliseconds"
	MetricRPCSimulations           = "swap_rpc_simulations"
	MetricRPCTransactionsSent      = "swap_rpc_transactions_sent"
	MetricRPCThrottleWaitMillisecs = "swap_rpc_throttle_wait_milliseconds"
)

// Metrics is implemented by every metrics backend.
type Metrics interface {
	// Initialize prepares the backend for data collection.
	Initialize(ctx context.Context) error

	// Flush reports buffered values.
	Flush(ctx context.Context) error

	// Shutdown releases backend resources.
	Shutdown(ctx context.Context) error

	// UpdateGauge sets a gauge metric to value.
	UpdateGauge(ctx context.Context, name string, value float64) error

	// IncrementCounter adds value to a counter metric.
	IncrementCounter(ctx context.Context, name string, value uint64) error

	// RecordHistogram observes value in a histogram metric.
	RecordHistogram(ctx context.Context, name string, value float64) error
}

// Collection delegates every call to a set of backends, stopping at the first error.
type Collection struct {
	mu       sync.RWMutex
	backends []Metrics
}

// NewCollection creates a Collection over backends.
func NewCollection(backends ...Metrics) *Collection {
	return &Collection{backends: backends}
}

// Add appends a backend.
func (c *Collection) Add(m Metrics) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.backends = append(c.backends, m)
}

// Len returns the number of backends.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.backends)
}

func (c *Collection) each(fn func(Metrics) error) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, m := range c.backends {
		if err := fn(m); err != nil {
			return err
		}
	}
	return nil
}

// Initialize initializes every backend.
func (c *Collection) Initialize(ctx context.Context) error {
	return c.each(func(m Metrics) error { return m.Initialize(ctx) })
}

// Flush flushes every backend.
func (c *Collection) Flush(ctx context.Context) error {
	return c.each(func(m Metrics) error { return m.Flush(ctx) })
}

// Shutdown shuts down every backend.
func (c *Collection) Shutdown(ctx context.Context) error {
	return c.each(func(m Metrics) error { return m.Shutdown(ctx) })
}

// UpdateGauge updates a gauge in every backend.
func (c *Collection) UpdateGauge(ctx context.Context, name string, value float64) error {
	return c.each(func(m Metrics) error { return m.UpdateGauge(ctx, name, value) })
}

// IncrementCounter increments a counter in every backend.
func (c *Collection) IncrementCounter(ctx context.Context, name string, value uint64) error {
	return c.each(func(m Metrics) error { return m.IncrementCounter(ctx, name, value) })
}

// RecordHistogram records a histogram value in every backend.
func (c *Collection) RecordHistogram(ctx context.Context, name string, value float64) error {
	return c.each(func(m Metrics) error { return m.RecordHistogram(ctx, name, value) })
}

// NoopMetrics discards everything.
type NoopMetrics struct{}

// NewNoopMetrics creates a new NoopMetrics.
func NewNoopMetrics() *NoopMetrics {
	return &NoopMetrics{}
}

func (n *NoopMetrics) Initialize(context.Context) error                       { return nil }
func (n *NoopMetrics) Flush(context.Context) error                            { return nil }
func (n *NoopMetrics) Shutdown(context.Context) error                         { return nil }
func (n *NoopMetrics) UpdateGauge(context.Context, string, float64) error     { return nil }
func (n *NoopMetrics) IncrementCounter(context.Context, string, uint64) error { return nil }
func (n *NoopMetrics) RecordHistogram(context.Context, string, float64) error { return nil }

// histogramSummary is what LogMetrics keeps per histogram.
type histogramSummary struct {
	Count uint64  `json:"count"`
	Sum   float64 `json:"sum"`
	Max   float64 `json:"max"`
}

// LogMetrics keeps metrics in memory and writes them to a slog.Logger on Flush.
type LogMetrics struct {
	logger *slog.Logger

	mu         sync.RWMutex
	gauges     map[string]float64
	counters   map[string]uint64
	histograms map[string]histogramSummary
}

// NewLogMetrics creates a LogMetrics. A nil logger means slog.Default().
func NewLogMetrics(logger *slog.Logger) *LogMetrics {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMetrics{
		logger:     logger,
		gauges:     make(map[string]float64),
		counters:   make(map[string]uint64),
		histograms: make(map[string]histogramSummary),
	}
}

// Initialize implements Metrics.
func (l *LogMetrics) Initialize(context.Context) error {
	l.logger.Debug("metrics initialized", "backend", "log")
	return nil
}

// Flush logs the current values.
func (l *LogMetrics) Flush(context.Context) error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	l.logger.Info("metrics flush",
		"gauges", l.gauges,
		"counters", l.counters,
		"histograms", l.histograms,
	)
	return nil
}

// Shutdown implements Metrics.
func (l *LogMetrics) Shutdown(context.Context) error {
	l.logger.Debug("metrics shutdown", "backend", "log")
	return nil
}

// UpdateGauge implements Metrics.
func (l *LogMetrics) UpdateGauge(_ context.Context, name string, value float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.gauges[name] = value
	return nil
}

// IncrementCounter implements Metrics.
func (l *LogMetrics) IncrementCounter(_ context.Context, name string, value uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.counters[name] += value
	return nil
}

// RecordHistogram implements Metrics.
func (l *LogMetrics) RecordHistogram(_ context.Context, name string, value float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	h := l.histograms[name]
	h.Count++
	h.Sum += value
	if h.Count == 1 || value > h.Max {
		h.Max = value
	}
	l.histograms[name] = h
	return nil
}

// Counter returns the current value of a counter.
func (l *LogMetrics) Counter(name string) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.counters[name]
}

// Gauge returns the current value of a gauge.
func (l *LogMetrics) Gauge(name string) float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.gauges[name]
}

// HistogramCount returns how many values a histogram has observed.
func (l *LogMetrics) HistogramCount(name string) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.histograms[name].Count
}
