package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectorRecordsSandboxMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}

	c.ModeInitialized("freeform")
	c.ModeInitialized("freeform")
	c.NoBaseline()
	c.Transition("pop")
	c.ScenarioInstantiated("builtin", 20*time.Millisecond)

	if got := testutil.ToFloat64(c.ModeInitializations.WithLabelValues("freeform")); got != 2 {
		t.Fatalf("sandbox_mode_initializations_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.BaselineMissing); got != 1 {
		t.Fatalf("sandbox_baseline_missing_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.Transitions.WithLabelValues("pop")); got != 1 {
		t.Fatalf("sandbox_transitions_total = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(c.ScenarioDurations); n != 1 {
		t.Fatalf("histogram series = %d, want 1", n)
	}

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "sandbox_baseline_missing_total 1") {
		t.Fatalf("metrics output missing baseline counter:\n%s", rec.Body.String())
	}
}

func TestCollectorReusesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	b, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("second NewCollector: %v", err)
	}
	a.ModeInitialized("create gridlock")
	if got := testutil.ToFloat64(b.ModeInitializations.WithLabelValues("create gridlock")); got != 1 {
		t.Fatalf("shared counter = %v, want 1", got)
	}
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector
	c.ModeInitialized("freeform")
	c.NoBaseline()
	c.Transition("pop")
	c.ScenarioInstantiated("file", time.Second)
}
