// Package promadapters provides a Prometheus adapter for the geotab
// metrics interface, for users who expose metrics via a Prometheus
// registry instead of OpenTelemetry.
package promadapters

import (
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"telematics-hq/mygeotab-go/geotab"
)

// MetricsCollector implements geotab.MetricsCollector on top of a
// Prometheus registerer. Collectors are created on demand the first time a
// metric name is used; the label names of that first call become the fixed
// label set of the metric.
type MetricsCollector struct {
	registerer prometheus.Registerer
	mu         sync.Mutex
	histograms map[string]*prometheus.HistogramVec
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
}

// NewMetricsCollector creates a new Prometheus metrics collector
// registering its metrics with the given registerer.
func NewMetricsCollector(registerer prometheus.Registerer) *MetricsCollector {
	return &MetricsCollector{
		registerer: registerer,
		histograms: make(map[string]*prometheus.HistogramVec),
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
	}
}

// RecordDuration records a duration observation in seconds.
func (m *MetricsCollector) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	histogram := m.getOrCreateHistogram(metric, labelNames(labels))
	if histogram == nil {
		return
	}

	histogram.With(labels).Observe(duration.Seconds())
}

// IncrementCounter increments a monotonic counter.
func (m *MetricsCollector) IncrementCounter(metric string, labels map[string]string) {
	counter := m.getOrCreateCounter(metric, labelNames(labels))
	if counter == nil {
		return
	}

	counter.With(labels).Inc()
}

// RecordValue sets a gauge to the given value.
func (m *MetricsCollector) RecordValue(metric string, value float64, labels map[string]string) {
	gauge := m.getOrCreateGauge(metric, labelNames(labels))
	if gauge == nil {
		return
	}

	gauge.With(labels).Set(value)
}

func (m *MetricsCollector) getOrCreateHistogram(metric string, names []string) *prometheus.HistogramVec {
	m.mu.Lock()
	defer m.mu.Unlock()

	if histogram, exists := m.histograms[metric]; exists {
		return histogram
	}

	histogram := prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: metric + "_seconds"}, names)
	if registerErr := m.registerer.Register(histogram); registerErr != nil {
		return nil
	}

	m.histograms[metric] = histogram

	return histogram
}

func (m *MetricsCollector) getOrCreateCounter(metric string, names []string) *prometheus.CounterVec {
	m.mu.Lock()
	defer m.mu.Unlock()

	if counter, exists := m.counters[metric]; exists {
		return counter
	}

	counter := prometheus.NewCounterVec(prometheus.CounterOpts{Name: metric + "_total"}, names)
	if registerErr := m.registerer.Register(counter); registerErr != nil {
		return nil
	}

	m.counters[metric] = counter

	return counter
}

func (m *MetricsCollector) getOrCreateGauge(metric string, names []string) *prometheus.GaugeVec {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gauge, exists := m.gauges[metric]; exists {
		return gauge
	}

	gauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: metric}, names)
	if registerErr := m.registerer.Register(gauge); registerErr != nil {
		return nil
	}

	m.gauges[metric] = gauge

	return gauge
}

func labelNames(labels map[string]string) []string {
	names := make([]string, 0, len(labels))

	for name := range labels {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

var _ geotab.MetricsCollector = (*MetricsCollector)(nil)
