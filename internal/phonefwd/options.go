package phonefwd

import (
	"github.com/rs/zerolog"

	"github.com/kumarlokesh/sysd/exercises/phone-forward/internal/metrics"
)

// Option configures an Engine.
type Option func(*options)

type options struct {
	maxForwardNodes  int
	maxBackwardNodes int
	pruneBackward    bool
	logger           zerolog.Logger
	metrics          *metrics.Metrics
}

func defaultOptions() options {
	return options{
		pruneBackward: true,
		logger:        zerolog.Nop(),
	}
}

// WithLogger sets the logger used for mutation and rejection events.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics sets the collectors updated by the engine.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithCapacity caps the number of nodes in the forward and backward tries.
// Zero leaves a trie unbounded.
func WithCapacity(forward, backward int) Option {
	return func(o *options) {
		o.maxForwardNodes = forward
		o.maxBackwardNodes = backward
	}
}

// WithBackwardPruning controls whether a backward node is released as soon
// as its last entry is removed. When disabled, empty backward nodes are only
// released by Remove.
func WithBackwardPruning(enabled bool) Option {
	return func(o *options) {
		o.pruneBackward = enabled
	}
}
