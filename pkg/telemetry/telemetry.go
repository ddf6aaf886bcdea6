package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"arenadb/pkg/logger"
)

// Request metrics plus a handful of domain counters. Collectors are
// registered on the default registry so /metrics (promhttp) picks them up
// without extra wiring.

var (
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "arena_http_request_duration_seconds",
		Help:    "HTTP request latency by route and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "status"})

	turnsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "arena_turns_total",
		Help: "Completed comparison turns.",
	})

	turnFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arena_turn_failures_total",
		Help: "Failed turns by failure kind.",
	}, []string{"kind"})

	classifierFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "arena_classifier_fallbacks_total",
		Help: "Turns where the emotion classifier was unavailable and the keyword heuristic was used.",
	})

	votesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arena_votes_total",
		Help: "Submitted votes by value.",
	}, []string{"vote"})

	backupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arena_backups_total",
		Help: "Backup attempts by outcome.",
	}, []string{"outcome"})
)

var slowThreshold = 2 * time.Second

// SetSlowThreshold sets the duration above which requests get a warn log.
func SetSlowThreshold(d time.Duration) {
	if d > 0 {
		slowThreshold = d
	}
}

// CountTurn records one finished turn; kind is empty on success.
func CountTurn(kind string) {
	if kind == "" {
		turnsTotal.Inc()
		return
	}
	turnFailures.WithLabelValues(kind).Inc()
}

// CountClassifierFallback records a heuristic-labelled turn side.
func CountClassifierFallback() { classifierFallbacks.Inc() }

// CountVote records a submitted vote value.
func CountVote(vote string) { votesTotal.WithLabelValues(vote).Inc() }

// CountBackup records a backup attempt ("ok", "upstream_error", "unconfigured").
func CountBackup(outcome string) { backupsTotal.WithLabelValues(outcome).Inc() }

// Middleware records request latency per route and logs slow requests.
// The route label uses the raw path; the API surface is small enough that
// cardinality stays bounded.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(srw, r)

		dur := time.Since(start)
		requestDuration.WithLabelValues(r.URL.Path, strconv.Itoa(srw.status)).Observe(dur.Seconds())
		if dur > slowThreshold {
			logger.Warn("slow_request", "path", r.URL.Path, "status", srw.status, "duration_ms", dur.Milliseconds())
		}
	})
}

// statusRecorder captures the response status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
