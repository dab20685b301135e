package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordAt_SameTickAccumulates(t *testing.T) {
	m := NewMetrics()
	m.RecordAt(1, "m", 1.0)
	m.RecordAt(1, "m", 2.5)

	stats, ok := m.Stats("m")
	require.True(t, ok)
	assert.Equal(t, 3.5, stats.Total)
	assert.Equal(t, 3.5, stats.Average)
	assert.Equal(t, 3.5, stats.Min)
	assert.Equal(t, 3.5, stats.Max)
	assert.Equal(t, 1, stats.Count)
}

func TestMetrics_RecordAt_DifferentTicksAppend(t *testing.T) {
	m := NewMetrics()
	m.RecordAt(1, "m", 1.0)
	m.RecordAt(2, "m", 3.0)

	stats, ok := m.Stats("m")
	require.True(t, ok)
	assert.Equal(t, 4.0, stats.Total)
	assert.Equal(t, 2.0, stats.Average)
	assert.Equal(t, 1.0, stats.Min)
	assert.Equal(t, 3.0, stats.Max)
	assert.Equal(t, 2, stats.Count)
	assert.Equal(t, []Sample{{Tick: 1, Value: 1.0}, {Tick: 2, Value: 3.0}}, stats.Series)
}

func TestMetrics_Stats_UnknownNameReturnsFalse(t *testing.T) {
	m := NewMetrics()
	_, ok := m.Stats("missing")
	assert.False(t, ok)
}

func TestMetrics_Stats_NaNDoesNotDisplaceRealMinMax(t *testing.T) {
	m := NewMetrics()
	m.RecordAt(1, "m", 1.0)
	m.RecordAt(2, "m", math.NaN())
	m.RecordAt(3, "m", 5.0)

	stats, ok := m.Stats("m")
	require.True(t, ok)
	assert.Equal(t, 1.0, stats.Min)
	assert.Equal(t, 5.0, stats.Max)
	assert.Equal(t, 3, stats.Count)
	assert.True(t, math.IsNaN(stats.Series[1].Value))
}

func TestMetrics_Stats_NaNFirstDoesNotStickAsMinMax(t *testing.T) {
	m := NewMetrics()
	m.RecordAt(1, "m", math.NaN())
	m.RecordAt(2, "m", 1.0)
	m.RecordAt(3, "m", 5.0)

	stats, ok := m.Stats("m")
	require.True(t, ok)
	assert.Equal(t, 1.0, stats.Min)
	assert.Equal(t, 5.0, stats.Max)
	assert.Equal(t, 3, stats.Count)
}

func TestMetrics_Stats_AllNaNYieldsNaNMinMax(t *testing.T) {
	m := NewMetrics()
	m.RecordAt(1, "m", math.NaN())

	stats, ok := m.Stats("m")
	require.True(t, ok)
	assert.True(t, math.IsNaN(stats.Min))
	assert.True(t, math.IsNaN(stats.Max))
}

func TestMetrics_Names_Sorted(t *testing.T) {
	m := NewMetrics()
	m.RecordAt(1, "zebra", 1)
	m.RecordAt(1, "alpha", 1)
	assert.Equal(t, []MetricName{"alpha", "zebra"}, m.Names())
}

func TestMetrics_SnapshotRestore_RoundTrip(t *testing.T) {
	m := NewMetrics()
	m.RecordAt(1, "m", 1.0)
	m.RecordAt(1, "m", 2.0)
	m.RecordAt(5, "m", 9.0)
	m.RecordAt(2, "other", -1.0)

	snap := m.Snapshot()
	restored := RestoreMetrics(snap)

	for _, name := range m.Names() {
		want, _ := m.Stats(name)
		got, ok := restored.Stats(name)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}
