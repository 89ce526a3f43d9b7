package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New("test", reg)
	require.NoError(t, err)

	m.ObserveOperation("add", OutcomeOK)
	m.ObserveOperation("add", OutcomeOK)
	m.ObserveOperation("add", OutcomeRejected)
	m.ObserveRollback()
	m.SetSize(3, 7, 5)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues("add", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("add", OutcomeRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rollbacks))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.rules))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.nodes.WithLabelValues(TrieForward)))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.nodes.WithLabelValues(TrieBackward)))

	count, err := testutil.GatherAndCount(reg, "test_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New("dup", reg)
	require.NoError(t, err)

	_, err = New("dup", reg)
	assert.Error(t, err)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveOperation("get", OutcomeOK)
		m.ObserveRollback()
		m.SetSize(1, 1, 1)
	})
}
