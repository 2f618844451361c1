// Package metrics exposes Prometheus metrics for conversions.
//
// Metrics:
//   - <ns>_conversions_total: conversions by mode and outcome
//   - <ns>_conversion_duration_seconds: time spent in the converter
//   - <ns>_conversion_input_bytes: size of the submitted input
//   - <ns>_conversion_records: records produced by successful conversions
//   - <ns>_conversions_in_flight: conversions holding a limiter slot
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeSuccess     = "success"
	OutcomeEmptyInput  = "empty_input"
	OutcomeFormatError = "format_error"
)

// Collector owns the conversion metrics and the registry they live in.
type Collector struct {
	registry  *prometheus.Registry
	namespace string

	conversionsTotal *prometheus.CounterVec
	duration         *prometheus.HistogramVec
	inputBytes       *prometheus.HistogramVec
	records          *prometheus.HistogramVec
}

// NewCollector creates and registers conversion metrics. A nil registry gets
// a fresh one with the Go and process collectors attached.
func NewCollector(namespace string, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	c := &Collector{
		registry:  registry,
		namespace: namespace,

		conversionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "conversions_total",
				Help:      "Total number of conversions by mode and outcome",
			},
			[]string{"mode", "outcome"},
		),

		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "conversion_duration_seconds",
				Help:      "Time spent converting input in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8), // 100µs to ~1.6s
			},
			[]string{"mode"},
		),

		inputBytes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "conversion_input_bytes",
				Help:      "Size of conversion input in bytes",
				Buckets:   prometheus.ExponentialBuckets(256, 4, 8), // 256B to 4MB
			},
			[]string{"mode"},
		),

		records: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "conversion_records",
				Help:      "Number of records in successful conversions",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"mode"},
		),
	}

	registry.MustRegister(
		c.conversionsTotal,
		c.duration,
		c.inputBytes,
		c.records,
	)

	return c
}

// ObserveConversion records one finished conversion. records is ignored
// unless outcome is OutcomeSuccess.
func (c *Collector) ObserveConversion(mode, outcome string, d time.Duration, inputBytes, records int) {
	c.conversionsTotal.WithLabelValues(mode, outcome).Inc()
	c.duration.WithLabelValues(mode).Observe(d.Seconds())
	c.inputBytes.WithLabelValues(mode).Observe(float64(inputBytes))
	if outcome == OutcomeSuccess {
		c.records.WithLabelValues(mode).Observe(float64(records))
	}
}

// TrackInFlight exports f as the conversions_in_flight gauge. It panics if
// called twice on the same collector.
func (c *Collector) TrackInFlight(f func() int) {
	c.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: c.namespace,
			Name:      "conversions_in_flight",
			Help:      "Conversions currently running",
		},
		func() float64 { return float64(f()) },
	))
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler returns the /metrics endpoint for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
