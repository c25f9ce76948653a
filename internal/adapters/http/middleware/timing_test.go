package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"powerpump/internal/adapters/metrics"
)

const requestMetric = "powerpump_http_request_duration_seconds"

func newRecorder(t *testing.T) (*metrics.Recorder, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return metrics.New(reg), reg
}

func okHandler(status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	})
}

// TestTimingMiddleware_ObservesRequest verifies that a request is recorded in the histogram.
func TestTimingMiddleware_ObservesRequest(t *testing.T) {
	rec, reg := newRecorder(t)
	handler := Timing(rec, time.Second, nil)(okHandler(http.StatusOK))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/stats", nil))

	n, err := testutil.GatherAndCount(reg, requestMetric)
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if n != 1 {
		t.Errorf("series = %d, want 1", n)
	}
}

// TestTimingMiddleware_SkipsStatic verifies static assets are excluded from timing.
func TestTimingMiddleware_SkipsStatic(t *testing.T) {
	rec, reg := newRecorder(t)
	handler := Timing(rec, time.Second, nil)(okHandler(http.StatusOK))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/static/style.css", nil))

	n, _ := testutil.GatherAndCount(reg, requestMetric)
	if n != 0 {
		t.Errorf("series = %d, want 0 (static excluded)", n)
	}
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
}

// TestTimingMiddleware_UsesRouteLabel verifies routeOf collapses paths into one series.
func TestTimingMiddleware_UsesRouteLabel(t *testing.T) {
	rec, reg := newRecorder(t)
	label := func(*http.Request) string { return "/api/members/{id}" }
	handler := Timing(rec, time.Second, label)(okHandler(http.StatusNotFound))

	for _, p := range []string{"/api/members/a", "/api/members/b", "/api/members/c"} {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest("GET", p, nil))
		if rr.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", p, rr.Code)
		}
	}

	n, _ := testutil.GatherAndCount(reg, requestMetric)
	if n != 1 {
		t.Errorf("series = %d, want 1", n)
	}
}

// TestTimingMiddleware_NilRecorder verifies middleware works without metrics.
func TestTimingMiddleware_NilRecorder(t *testing.T) {
	handler := Timing(nil, 0, nil)(okHandler(http.StatusOK))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/api/test", nil))

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
}
