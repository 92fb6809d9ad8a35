package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Load(SlotSave, SourceDefault)
	m.Load(SlotProfile, SourceFile)
	m.Load(SlotProfile, SourceFile)
	m.Write(SlotSave, SourceFile)
	m.DecodeFailure(SlotProfile)
	m.Wipe()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.loads.WithLabelValues(SlotSave, SourceDefault)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.loads.WithLabelValues(SlotProfile, SourceFile)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.writes.WithLabelValues(SlotSave, SourceFile)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.decodeFailures.WithLabelValues(SlotProfile)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.wipes))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 4)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Load(SlotSave, SourceFile)
		m.Write(SlotSave, SourceFile)
		m.DecodeFailure(SlotSave)
		m.Wipe()
	})
}
