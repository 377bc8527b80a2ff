// Package metrics holds the Prometheus collectors for the guest list.
// All methods are safe on a nil *Metrics so callers can run without them.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "guestlist"

// Metrics groups every collector the service exports.
type Metrics struct {
	Guests          prometheus.Gauge
	Mutations       *prometheus.CounterVec
	PersistWrites   prometheus.Counter
	PersistFailures prometheus.Counter
	SeedFetches     *prometheus.CounterVec
	RPCRequests     *prometheus.CounterVec
	RPCDuration     *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Guests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "guests",
			Help:      "Guests currently held in memory.",
		}),
		Mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Guest list mutations by operation.",
		}, []string{"op"}),
		PersistWrites: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persist_writes_total",
			Help:      "Snapshots written to the durable slot.",
		}),
		PersistFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persist_failures_total",
			Help:      "Snapshot writes the durable slot rejected.",
		}),
		SeedFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "seed_fetches_total",
			Help:      "Remote seed fetches by result.",
		}, []string{"result"}),
		RPCRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and connect code.",
		}, []string{"procedure", "code"}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
	}

	reg.MustRegister(
		m.Guests,
		m.Mutations,
		m.PersistWrites,
		m.PersistFailures,
		m.SeedFetches,
		m.RPCRequests,
		m.RPCDuration,
	)
	return m
}

// SetGuests records the current list length.
func (m *Metrics) SetGuests(n int) {
	if m == nil {
		return
	}
	m.Guests.Set(float64(n))
}

// Mutation counts one applied mutation.
func (m *Metrics) Mutation(op string) {
	if m == nil {
		return
	}
	m.Mutations.WithLabelValues(op).Inc()
}

// Persisted counts a snapshot write and whether it failed.
func (m *Metrics) Persisted(err error) {
	if m == nil {
		return
	}
	m.PersistWrites.Inc()
	if err != nil {
		m.PersistFailures.Inc()
	}
}

// SeedFetched counts a seed fetch attempt sequence by outcome.
func (m *Metrics) SeedFetched(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.SeedFetches.WithLabelValues(result).Inc()
}

// RPC records one finished call.
func (m *Metrics) RPC(procedure, code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RPCRequests.WithLabelValues(procedure, code).Inc()
	m.RPCDuration.WithLabelValues(procedure).Observe(elapsed.Seconds())
}
