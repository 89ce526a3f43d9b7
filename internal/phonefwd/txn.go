package phonefwd

import (
	"github.com/rs/zerolog"

	"github.com/kumarlokesh/sysd/exercises/phone-forward/internal/metrics"
)

// txn groups the forward and backward mutations of one engine operation.
// Every applied step registers how to undo itself; end either keeps all of
// them or reverts them in reverse order.
type txn struct {
	op      string
	undo    []func()
	done    bool
	log     zerolog.Logger
	metrics *metrics.Metrics
}

// begin starts a transaction for op
func (e *Engine) begin(op string) *txn {
	return &txn{
		op:      op,
		log:     e.log,
		metrics: e.metrics,
	}
}

// onAbort registers the inverse of a step that has just been applied.
func (t *txn) onAbort(f func()) {
	t.undo = append(t.undo, f)
}

// end finishes the transaction. Calling end more than once has no effect.
func (t *txn) end(commit bool) {
	if t.done {
		return
	}
	t.done = true

	if commit {
		t.undo = nil
		return
	}

	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.log.Warn().
		Str("operation", t.op).
		Int("steps", len(t.undo)).
		Msg("Rolled back transaction")
	t.metrics.ObserveRollback()
	t.undo = nil
}
