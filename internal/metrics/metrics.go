// Package metrics exposes Prometheus collectors for the ledger and the HTTP surfaces.
//
// A nil *Metrics is valid and records nothing, so tests and tools can run
// without a registry.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/konta/internal/models"
)

const namespace = "konta"

// Metrics holds every collector the server exports.
type Metrics struct {
	operations   *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	httpRequests *prometheus.CounterVec
	rpcRequests  *prometheus.CounterVec
	members      prometheus.Gauge
	bills        prometheus.Gauge
	totalDebt    prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "operations_total",
			Help:      "Ledger operations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "operation_duration_seconds",
			Help:      "Ledger operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "requests_total",
			Help:      "RPC calls by procedure and Connect code.",
		}, []string{"procedure", "code"}),
		members: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "members",
			Help:      "Number of household members.",
		}),
		bills: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bills",
			Help:      "Number of recorded bills.",
		}),
		totalDebt: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "total_debt",
			Help:      "Sum of every member's balance.",
		}),
	}

	reg.MustRegister(m.operations, m.duration, m.httpRequests, m.rpcRequests, m.members, m.bills, m.totalDebt)
	return m
}

// Handler serves the exposition format for the given gatherer.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// ObserveOperation records one ledger operation that started at start.
func (m *Metrics) ObserveOperation(operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, Outcome(err)).Inc()
	m.duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(route string, status int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

// ObserveRPC records one RPC call. code is "ok" or a Connect code name.
func (m *Metrics) ObserveRPC(procedure, code string) {
	if m == nil {
		return
	}
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
}

// SetMembers sets the member gauge.
func (m *Metrics) SetMembers(n int) {
	if m == nil {
		return
	}
	m.members.Set(float64(n))
}

// SetBills sets the bill gauge.
func (m *Metrics) SetBills(n int) {
	if m == nil {
		return
	}
	m.bills.Set(float64(n))
}

// SetTotalDebt sets the total debt gauge.
func (m *Metrics) SetTotalDebt(v float64) {
	if m == nil {
		return
	}
	m.totalDebt.Set(v)
}

// Outcome maps an operation error to a low-cardinality label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, models.ErrValidation):
		return "validation"
	case errors.Is(err, models.ErrNotFound):
		return "not_found"
	case errors.Is(err, models.ErrDivisionUndefined):
		return "division_undefined"
	case errors.Is(err, models.ErrLogPersistence):
		return "log_persistence"
	case errors.Is(err, models.ErrPersistence):
		return "persistence"
	case errors.Is(err, models.ErrAuth):
		return "auth"
	default:
		return "error"
	}
}
