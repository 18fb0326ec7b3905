// Package metrics provides Prometheus instrumentation for the sportsbook ledger.
package metrics

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

var (
	// WagersPlaced counts committed placements by bet type.
	WagersPlaced = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sportsbook_wagers_placed_total",
		Help: "Total number of wagers placed",
	}, []string{"bet_type"})

	// StakeVolume tracks cumulative stake placed.
	StakeVolume = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sportsbook_stake_volume_total",
		Help: "Cumulative stake placed in balance units",
	})

	WagersCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sportsbook_wagers_cancelled_total",
		Help: "Total number of pending wagers cancelled and refunded",
	})

	// WagersSettled counts settlements by outcome (won, lost).
	WagersSettled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sportsbook_wagers_settled_total",
		Help: "Total number of wagers settled",
	}, []string{"outcome"})

	PayoutVolume = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sportsbook_payout_volume_total",
		Help: "Cumulative amount credited by settlements",
	})

	// Rejections counts failed operations by operation and reason.
	Rejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sportsbook_rejections_total",
		Help: "Operations rejected, by reason",
	}, []string{"operation", "reason"})

	OperationLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sportsbook_operation_latency_seconds",
		Help:    "Ledger operation latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// PeriodTransitions counts period state changes by new state.
	PeriodTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sportsbook_period_transitions_total",
		Help: "Betting period state transitions",
	}, []string{"state"})

	// EventsPublished counts events forwarded to the message bus.
	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sportsbook_events_published_total",
		Help: "Events published to NATS, by subject and result",
	}, []string{"subject", "result"})

	// WebSocketClients tracks connected WebSocket clients.
	WebSocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sportsbook_websocket_clients",
		Help: "Number of connected WebSocket clients",
	})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sportsbook_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sportsbook_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
	}, []string{"method", "path"})
)

// RecordPlacement records a committed wager placement.
func RecordPlacement(betType string, stake decimal.Decimal) {
	WagersPlaced.WithLabelValues(betType).Inc()
	StakeVolume.Add(stake.InexactFloat64())
}

// RecordSettlement records a committed settlement.
func RecordSettlement(outcome string, payout decimal.Decimal) {
	WagersSettled.WithLabelValues(outcome).Inc()
	PayoutVolume.Add(payout.InexactFloat64())
}

// RecordRejection records an operation that returned an error.
func RecordRejection(operation, reason string) {
	Rejections.WithLabelValues(operation, reason).Inc()
}

// ObserveOperation records the latency of an operation started at start.
func ObserveOperation(operation string, start time.Time) {
	OperationLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware returns an HTTP middleware that records request metrics.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		duration := time.Since(start).Seconds()

		// Route pattern keeps the path label low-cardinality
		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}
		HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack lets WebSocket upgrades pass through the middleware.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	return h.Hijack()
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
