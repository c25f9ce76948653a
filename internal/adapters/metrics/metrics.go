package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for member changes.
const (
	MemberAdded   = "added"
	MemberUpdated = "updated"
	MemberDeleted = "deleted"
)

// Recorder exposes the service's Prometheus instruments.
// A nil *Recorder is valid and records nothing, so tests and tools can skip metrics.
type Recorder struct {
	requests      *prometheus.HistogramVec
	queries       *prometheus.HistogramVec
	clockEvents   *prometheus.CounterVec
	memberChanges *prometheus.CounterVec
	gatherer      prometheus.Gatherer
}

// New registers the instruments on reg.
// PRE: reg is non-nil and has not already had these instruments registered
// POST: Returns a Recorder whose Handler serves reg
func New(reg *prometheus.Registry) *Recorder {
	r := &Recorder{
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "powerpump_http_request_duration_seconds",
			Help:    "HTTP request latency by method, route and status.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route", "status"}),
		queries: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "powerpump_storage_duration_seconds",
			Help:    "Storage operation latency by backend and operation.",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		}, []string{"backend", "op"}),
		clockEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "powerpump_clock_events_total",
			Help: "Kiosk clock attempts by action and outcome.",
		}, []string{"action", "outcome"}),
		memberChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "powerpump_member_changes_total",
			Help: "Member registry writes by kind.",
		}, []string{"kind"}),
		gatherer: reg,
	}
	reg.MustRegister(r.requests, r.queries, r.clockEvents, r.memberChanges)
	return r
}

// ObserveRequest records one HTTP request.
func (r *Recorder) ObserveRequest(method, route string, status int, d time.Duration) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

// ObserveQuery records one storage operation.
func (r *Recorder) ObserveQuery(backend, op string, d time.Duration) {
	if r == nil {
		return
	}
	r.queries.WithLabelValues(backend, op).Observe(d.Seconds())
}

// CountClock records a clock-in or clock-out attempt. Outcome is "ok" or a failure reason.
func (r *Recorder) CountClock(action, outcome string) {
	if r == nil {
		return
	}
	r.clockEvents.WithLabelValues(action, outcome).Inc()
}

// CountMember records a member registry write.
func (r *Recorder) CountMember(kind string) {
	if r == nil {
		return
	}
	r.memberChanges.WithLabelValues(kind).Inc()
}

// Handler serves the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}
