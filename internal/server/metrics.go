package server

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/katalvlaran/layoutopt/qap"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	rateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "layoutopt_rate_limited_total",
			Help: "Requests rejected by the per-client rate limiter",
		},
	)

	solvesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "layoutopt_solves_total",
			Help: "Solver runs by engine and outcome",
		},
		[]string{"algo", "outcome"}, // outcome: complete, partial, error
	)

	solveDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "layoutopt_solve_duration_seconds",
			Help:    "Solver wall-clock time in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		},
		[]string{"algo"},
	)

	evaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "layoutopt_cost_evaluations_total",
			Help: "Full layout cost evaluations performed",
		},
		[]string{"algo"},
	)
)

// PrometheusMiddleware records HTTP request metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		path := ctx.FullPath()
		if path == "/metrics" || path == "/health" {
			ctx.Next()
			return
		}
		if path == "" {
			path = "unmatched"
		}

		httpRequestsInFlight.Inc()
		start := time.Now()

		ctx.Next()

		httpRequestsInFlight.Dec()
		status := strconv.Itoa(ctx.Writer.Status())
		httpRequestsTotal.WithLabelValues(ctx.Request.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(ctx.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// MetricsHandler serves the default Prometheus registry.
func MetricsHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(ctx *gin.Context) {
		h.ServeHTTP(ctx.Writer, ctx.Request)
	}
}

// recordSolve updates the solver metrics for one engine run.
func recordSolve(res qap.Result, err error) {
	algo := res.Algo.String()
	outcome := "complete"
	switch {
	case err != nil && res.Evaluations == 0:
		outcome = "error"
	case !res.Complete:
		outcome = "partial"
	}
	solvesTotal.WithLabelValues(algo, outcome).Inc()
	if res.Evaluations > 0 {
		solveDuration.WithLabelValues(algo).Observe(res.Elapsed.Seconds())
		evaluationsTotal.WithLabelValues(algo).Add(float64(res.Evaluations))
	}
}
