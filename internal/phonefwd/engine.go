// Package phonefwd stores telephone number forwarding rules and resolves
// numbers through them in both directions.
//
// A rule maps a source prefix to a destination prefix: every number that
// starts with the source is forwarded to the number obtained by replacing
// that prefix with the destination. When several rules match, the one with
// the longest source wins. Rules are never chained.
//
// The engine keeps two tries in sync: a forward trie keyed by source and a
// backward trie keyed by destination, which lists the sources currently
// forwarded to each destination. An Engine is not safe for concurrent use.
package phonefwd

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/kumarlokesh/sysd/exercises/phone-forward/internal/alphabet"
	"github.com/kumarlokesh/sysd/exercises/phone-forward/internal/config"
	"github.com/kumarlokesh/sysd/exercises/phone-forward/internal/metrics"
	"github.com/kumarlokesh/sysd/exercises/phone-forward/internal/trie"
)

var (
	// ErrInvalidNumber is returned when a number is empty or contains a
	// symbol other than 0-9, '*' or '#'.
	ErrInvalidNumber = errors.New("phonefwd: invalid number")

	// ErrSelfForward is returned when a rule would forward a prefix to
	// itself.
	ErrSelfForward = errors.New("phonefwd: source equals destination")

	// ErrCapacityExceeded is returned when a trie has no room for the nodes
	// a rule needs. The engine is left unchanged.
	ErrCapacityExceeded = trie.ErrCapacityExceeded
)

const (
	opAdd        = "add"
	opRemove     = "remove"
	opGet        = "get"
	opReverse    = "reverse"
	opGetReverse = "get_reverse"
)

// Rule is a single forwarding rule.
type Rule struct {
	Source      string
	Destination string
}

// Stats describes the current size of an engine.
type Stats struct {
	Rules          int
	ReverseEntries int
	ForwardNodes   int
	BackwardNodes  int
}

// Engine holds the forwarding rules.
type Engine struct {
	forward  *trie.Forward
	backward *trie.Backward
	log      zerolog.Logger
	metrics  *metrics.Metrics
}

// New creates an engine with no rules.
func New(opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{
		forward:  trie.NewForward(o.maxForwardNodes),
		backward: trie.NewBackward(o.maxBackwardNodes, o.pruneBackward),
		log:      o.logger,
		metrics:  o.metrics,
	}
	e.observeSize()
	return e
}

// NewFromConfig creates an engine using the engine and metrics sections of
// cfg. When metrics are enabled the collectors are registered with reg.
// Options are applied after the configuration and take precedence.
func NewFromConfig(cfg *config.Config, reg prometheus.Registerer, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	base := []Option{
		WithCapacity(cfg.Engine.MaxForwardNodes, cfg.Engine.MaxBackwardNodes),
		WithBackwardPruning(cfg.Engine.PruneBackward),
	}
	if cfg.Metrics.Enabled {
		m, err := metrics.New(cfg.Metrics.Namespace, reg)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		base = append(base, WithMetrics(m))
	}

	return New(append(base, opts...)...), nil
}

// Close releases every rule held by the engine. Close on a nil engine does
// nothing; any other use of a closed engine is a programming error.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	e.forward = nil
	e.backward = nil
	e.log.Debug().Msg("Engine closed")
}

// Add forwards every number starting with source to the number obtained by
// replacing source with destination, replacing any earlier rule for source.
func (e *Engine) Add(source, destination string) error {
	if err := validateRule(source, destination); err != nil {
		e.reject(opAdd, err)
		return err
	}

	tx := e.begin(opAdd)
	previous, err := e.forward.Set(source, destination)
	if err != nil {
		tx.end(false)
		return e.fail(opAdd, fmt.Errorf("failed to add rule %s -> %s: %w", source, destination, err))
	}
	tx.onAbort(func() {
		if previous == "" {
			e.forward.Unset(source)
			return
		}
		// The node exists, so restoring the old destination cannot fail.
		_, _ = e.forward.Set(source, previous)
	})

	if previous != destination {
		if err := e.backward.AddEntry(source, destination); err != nil {
			tx.end(false)
			return e.fail(opAdd, fmt.Errorf("failed to index rule %s -> %s: %w", source, destination, err))
		}
		if previous != "" {
			e.backward.RemoveEntry(previous, source)
		}
	}
	tx.end(true)

	e.log.Debug().
		Str("source", source).
		Str("destination", destination).
		Str("replaced", previous).
		Msg("Rule added")
	e.metrics.ObserveOperation(opAdd, metrics.OutcomeOK)
	e.observeSize()
	return nil
}

// Remove deletes every rule whose source starts with prefix and returns how
// many were deleted. A malformed prefix deletes nothing.
func (e *Engine) Remove(prefix string) int {
	if err := validateNumber(prefix); err != nil {
		e.reject(opRemove, err)
		return 0
	}

	removed := e.forward.RemoveSubtree(prefix, func(source, destination string) {
		e.backward.RemoveEntry(destination, source)
		e.backward.Compact(destination)
	})

	e.log.Debug().
		Str("prefix", prefix).
		Int("removed", removed).
		Msg("Rules removed")
	e.metrics.ObserveOperation(opRemove, metrics.OutcomeOK)
	e.observeSize()
	return removed
}

// Get returns the number that number is forwarded to. The result holds
// exactly one element, or none if number is malformed.
func (e *Engine) Get(number string) *Numbers {
	if err := validateNumber(number); err != nil {
		e.reject(opGet, err)
		return newNumbers()
	}
	e.metrics.ObserveOperation(opGet, metrics.OutcomeOK)
	return newNumbers(e.resolve(number))
}

// Reverse returns every number that a rule could forward to number, plus
// number itself, without duplicates and sorted by alphabet rank. Candidates
// are not checked against longer rules that may shadow them; see
// GetReverse.
func (e *Engine) Reverse(number string) *Numbers {
	if err := validateNumber(number); err != nil {
		e.reject(opReverse, err)
		return newNumbers()
	}
	e.metrics.ObserveOperation(opReverse, metrics.OutcomeOK)
	return newNumbers(e.candidates(number).Values()...)
}

// GetReverse returns the numbers x for which Get(x) yields exactly number,
// sorted by alphabet rank.
func (e *Engine) GetReverse(number string) *Numbers {
	if err := validateNumber(number); err != nil {
		e.reject(opGetReverse, err)
		return newNumbers()
	}

	var verified []string
	for _, c := range e.candidates(number).Values() {
		if e.resolve(c) == number {
			verified = append(verified, c)
		}
	}
	e.metrics.ObserveOperation(opGetReverse, metrics.OutcomeOK)
	return newNumbers(verified...)
}

// Rules returns a snapshot of all rules ordered by source.
func (e *Engine) Rules() []Rule {
	rules := make([]Rule, 0, e.forward.Len())
	e.forward.Walk(func(source, destination string) bool {
		rules = append(rules, Rule{Source: source, Destination: destination})
		return true
	})
	return rules
}

// Stats reports the current size of the engine.
func (e *Engine) Stats() Stats {
	return Stats{
		Rules:          e.forward.Len(),
		ReverseEntries: e.backward.Len(),
		ForwardNodes:   e.forward.Nodes(),
		BackwardNodes:  e.backward.Nodes(),
	}
}

// resolve applies the longest matching rule to a well-formed number.
func (e *Engine) resolve(number string) string {
	destination, depth, ok := e.forward.LongestPrefixMatch(number)
	if !ok {
		return number
	}
	return destination + number[depth:]
}

// candidates collects number and, for every backward node on its path, each
// source with the unmatched tail of number appended.
func (e *Engine) candidates(number string) *numberSet {
	set := newNumberSet()
	set.Add(number)
	e.backward.Walk(number, func(depth int, sources []string) {
		suffix := number[depth:]
		for _, s := range sources {
			set.Add(s + suffix)
		}
	})
	return set
}

func (e *Engine) reject(op string, err error) {
	e.log.Debug().Err(err).Str("operation", op).Msg("Rejected input")
	e.metrics.ObserveOperation(op, metrics.OutcomeRejected)
}

func (e *Engine) fail(op string, err error) error {
	e.log.Error().Err(err).Str("operation", op).Msg("Operation failed")
	e.metrics.ObserveOperation(op, metrics.OutcomeFailed)
	return err
}

func (e *Engine) observeSize() {
	e.metrics.SetSize(e.forward.Len(), e.forward.Nodes(), e.backward.Nodes())
}

func validateNumber(number string) error {
	if err := alphabet.Validate(number); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidNumber, err)
	}
	return nil
}

func validateRule(source, destination string) error {
	if err := validateNumber(source); err != nil {
		return err
	}
	if err := validateNumber(destination); err != nil {
		return err
	}
	if source == destination {
		return fmt.Errorf("%w: %s", ErrSelfForward, source)
	}
	return nil
}
