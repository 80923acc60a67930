// Package capmetrics exposes Prometheus metrics for packet capture and
// injection loops.
package capmetrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// -------------------------------------------------------------------------
// Prometheus Metric Constants
// -------------------------------------------------------------------------

const (
	namespace = "hatchet"
	subsystem = "datalink"
)

// Label names for capture metrics.
const (
	labelSource = "source"
)

// -------------------------------------------------------------------------
// Collector — Prometheus Capture Metrics
// -------------------------------------------------------------------------

// Collector holds all capture Prometheus metrics.
//
// Packet and byte counters track capture volume per source (interface
// name or file path); error counters separate parse failures from read
// failures so a surge of malformed traffic is distinguishable from a
// dying capture source.
type Collector struct {
	// PacketsRead counts packets successfully read and parsed per source.
	PacketsRead *prometheus.CounterVec

	// PacketsWritten counts packets successfully written per source.
	PacketsWritten *prometheus.CounterVec

	// BytesRead counts the wire bytes of successfully parsed packets.
	BytesRead *prometheus.CounterVec

	// ParseErrors counts frames that could not be parsed into layers.
	ParseErrors *prometheus.CounterVec

	// ReadErrors counts failures reading from the capture source.
	ReadErrors *prometheus.CounterVec
}

// NewCollector creates a Collector with all capture metrics registered
// against the provided prometheus.Registerer. If reg is nil,
// prometheus.DefaultRegisterer is used.
//
// All metrics are created with the "hatchet_datalink_" prefix
// (namespace_subsystem) to avoid collisions with other exporters.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := newMetrics()

	reg.MustRegister(
		c.PacketsRead,
		c.PacketsWritten,
		c.BytesRead,
		c.ParseErrors,
		c.ReadErrors,
	)

	return c
}

// newMetrics creates all Prometheus metric vectors without registering them.
func newMetrics() *Collector {
	sourceLabels := []string{labelSource}

	return &Collector{
		PacketsRead: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "packets_read_total",
			Help:      "Total packets read and parsed from a capture source.",
		}, sourceLabels),

		PacketsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "packets_written_total",
			Help:      "Total packets written to a capture source.",
		}, sourceLabels),

		BytesRead: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "bytes_read_total",
			Help:      "Total wire bytes of successfully parsed packets.",
		}, sourceLabels),

		ParseErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "parse_errors_total",
			Help:      "Total frames that failed layer parsing.",
		}, sourceLabels),

		ReadErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "read_errors_total",
			Help:      "Total failures reading from a capture source.",
		}, sourceLabels),
	}
}

// ObserveRead records one successfully parsed packet of n wire bytes.
func (c *Collector) ObserveRead(source string, n int) {
	c.PacketsRead.WithLabelValues(source).Inc()
	c.BytesRead.WithLabelValues(source).Add(float64(n))
}

// ObserveWrite records one successfully written packet.
func (c *Collector) ObserveWrite(source string) {
	c.PacketsWritten.WithLabelValues(source).Inc()
}

// ObserveParseError records a frame that failed layer parsing.
func (c *Collector) ObserveParseError(source string) {
	c.ParseErrors.WithLabelValues(source).Inc()
}

// ObserveReadError records a failed read from the capture source.
func (c *Collector) ObserveReadError(source string) {
	c.ReadErrors.WithLabelValues(source).Inc()
}
