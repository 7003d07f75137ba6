package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Counter.GetValue()
}

func TestDefaultRegistry(t *testing.T) {
	if DefaultRegistry() != DefaultRegistry() {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordAutosave(t *testing.T) {
	r := NewRegistry()
	r.RecordAutosave(StatusOK, 120, time.Millisecond)
	r.RecordAutosave(StatusOK, 80, time.Millisecond)
	r.RecordAutosave(StatusError, 0, time.Millisecond)

	ok, err := r.AutosaveTotal.GetMetricWithLabelValues(StatusOK)
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if got := counterValue(t, ok); got != 2 {
		t.Errorf("ok autosaves = %v, want 2", got)
	}

	var gauge dto.Metric
	if err := r.AutosaveBytes.Write(&gauge); err != nil {
		t.Fatal(err)
	}
	if gauge.Gauge.GetValue() != 80 {
		t.Errorf("autosave bytes = %v, want size of last successful write", gauge.Gauge.GetValue())
	}
}

func TestRecordRegistryTraffic(t *testing.T) {
	r := NewRegistry()
	r.RecordRegistryWrite("primary", StatusOK)
	r.RecordRegistryWrite("primary", StatusSkipped)
	r.RecordRegistryWrite("primary", StatusSkipped)
	r.RecordRegistryRead("mirror", StatusNotFound)

	skipped, _ := r.RegistryWritesTotal.GetMetricWithLabelValues("primary", StatusSkipped)
	if got := counterValue(t, skipped); got != 2 {
		t.Errorf("skipped writes = %v, want 2", got)
	}
	notFound, _ := r.RegistryReadsTotal.GetMetricWithLabelValues("mirror", StatusNotFound)
	if got := counterValue(t, notFound); got != 1 {
		t.Errorf("not found reads = %v, want 1", got)
	}
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.RecordCommit(3, 2)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)

	for _, want := range []string{"routemap_commits_total 1", "routemap_graph_nodes 3", "routemap_graph_edges 2"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
