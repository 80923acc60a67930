package capmetrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	capmetrics "github.com/sharksforarms/hatchet/internal/metrics"
)

func TestNewCollector(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := capmetrics.NewCollector(reg)

	if c.PacketsRead == nil {
		t.Error("PacketsRead is nil")
	}
	if c.PacketsWritten == nil {
		t.Error("PacketsWritten is nil")
	}
	if c.BytesRead == nil {
		t.Error("BytesRead is nil")
	}
	if c.ParseErrors == nil {
		t.Error("ParseErrors is nil")
	}
	if c.ReadErrors == nil {
		t.Error("ReadErrors is nil")
	}

	// Verify all metrics are registered by gathering them.
	if _, err := reg.Gather(); err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
}

func TestObserveRead(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := capmetrics.NewCollector(reg)

	c.ObserveRead("eth0", 64)
	c.ObserveRead("eth0", 1500)

	if got := testutil.ToFloat64(c.PacketsRead.WithLabelValues("eth0")); got != 2 {
		t.Errorf("packets_read_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.BytesRead.WithLabelValues("eth0")); got != 1564 {
		t.Errorf("bytes_read_total = %v, want 1564", got)
	}
}

func TestObserveErrorsAreSeparate(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := capmetrics.NewCollector(reg)

	c.ObserveParseError("eth0")
	c.ObserveReadError("eth0")
	c.ObserveReadError("eth0")

	if got := testutil.ToFloat64(c.ParseErrors.WithLabelValues("eth0")); got != 1 {
		t.Errorf("parse_errors_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.ReadErrors.WithLabelValues("eth0")); got != 2 {
		t.Errorf("read_errors_total = %v, want 2", got)
	}
}

func TestObserveWritePerSource(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := capmetrics.NewCollector(reg)

	c.ObserveWrite("eth0")
	c.ObserveWrite("lo")
	c.ObserveWrite("lo")

	if got := testutil.ToFloat64(c.PacketsWritten.WithLabelValues("eth0")); got != 1 {
		t.Errorf("packets_written_total{eth0} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.PacketsWritten.WithLabelValues("lo")); got != 2 {
		t.Errorf("packets_written_total{lo} = %v, want 2", got)
	}
}
