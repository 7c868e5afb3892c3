package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestMetricsWritePrometheus(t *testing.T) {
	m := newMetrics()
	m.ObserveAPI("POST", "/api/challenges/:id/correct", "200", 30*time.Millisecond)
	m.IncAnswer("incorrect", "hearts_exhausted", false)
	m.IncAnswer("incorrect", "hearts_exhausted", false)
	m.IncAggregateConflict("progress.apply_correct")

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`lingo_api_requests_total{method="POST",route="/api/challenges/:id/correct",status="200"} 1`,
		`lingo_answers_total{kind="incorrect",outcome="hearts_exhausted",practice="false"} 2`,
		`lingo_aggregate_conflicts_total{op="progress.apply_correct"} 1`,
		`lingo_api_request_duration_seconds_bucket{method="POST",route="/api/challenges/:id/correct",status="200",le="0.05"} 1`,
		`lingo_api_request_duration_seconds_count{method="POST",route="/api/challenges/:id/correct",status="200"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing series %q in:\n%s", want, out)
		}
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/", "200", time.Millisecond)
	m.IncAnswer("correct", "applied", true)
	m.ApiInflightInc()
	m.ObserveJob("leaderboard_warm", "success", time.Second)
	if err := m.WritePrometheus(&bytes.Buffer{}); err != nil {
		t.Fatalf("WritePrometheus(nil): %v", err)
	}
}

func TestGaugeIncDec(t *testing.T) {
	g := NewGauge("g", "test gauge")
	g.Inc()
	g.Inc()
	g.Dec()
	if g.Value() != 1 {
		t.Fatalf("gauge: want=1 got=%v", g.Value())
	}
}

func TestLabelEscaping(t *testing.T) {
	got := labelString([]string{"route"}, []string{`a"b`})
	if got != `{route="a\"b"}` {
		t.Fatalf("labelString: got %s", got)
	}
	if withLe("", "+Inf") != `{le="+Inf"}` {
		t.Fatalf("withLe(empty): got %s", withLe("", "+Inf"))
	}
}
