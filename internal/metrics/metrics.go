// Package metrics exposes prometheus instrumentation for the forwarding
// engine. A nil *Metrics is valid and records nothing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for operations_total.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Trie labels for trie_nodes.
const (
	TrieForward  = "forward"
	TrieBackward = "backward"
)

// Metrics groups the collectors updated by the engine.
type Metrics struct {
	operations *prometheus.CounterVec
	rollbacks  prometheus.Counter
	rules      prometheus.Gauge
	nodes      *prometheus.GaugeVec
}

// New creates the collectors under namespace and registers them with reg.
// reg may be nil, in which case the collectors are not registered.
func New(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "The total number of engine operations by outcome.",
		}, []string{"operation", "outcome"}),
		rollbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rollbacks_total",
			Help:      "The total number of mutations rolled back.",
		}),
		rules: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rules",
			Help:      "The number of forwarding rules currently stored.",
		}),
		nodes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "trie_nodes",
			Help:      "The number of live nodes per trie.",
		}, []string{"trie"}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.operations, m.rollbacks, m.rules, m.nodes} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// ObserveOperation counts one call of op with the given outcome.
func (m *Metrics) ObserveOperation(op, outcome string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, outcome).Inc()
}

// ObserveRollback counts one rolled back mutation.
func (m *Metrics) ObserveRollback() {
	if m == nil {
		return
	}
	m.rollbacks.Inc()
}

// SetSize records the current rule count and node counts.
func (m *Metrics) SetSize(rules, forwardNodes, backwardNodes int) {
	if m == nil {
		return
	}
	m.rules.Set(float64(rules))
	m.nodes.WithLabelValues(TrieForward).Set(float64(forwardNodes))
	m.nodes.WithLabelValues(TrieBackward).Set(float64(backwardNodes))
}
