// Tracks named time series recorded by entity scripts via
// world.record_metric, and derives summary statistics for final reporting.
// Same-tick calls for one name accumulate into a single sample rather than
// appending a new one (see Metrics.RecordAt).

package sim

import (
	"fmt"
	"math"
	"sort"
)

// Sample is one (tick, value) point in a metric's time series.
type Sample struct {
	Tick  Tick
	Value float64
}

// MetricStats summarizes one metric's full series.
type MetricStats struct {
	Total   float64
	Average float64
	Min     float64
	Max     float64
	Count   int
	Series  []Sample
}

// Metrics aggregates per-name time series for a World. Useful for evaluating
// simulation behavior and for the observability package's Prometheus export.
type Metrics struct {
	series map[MetricName][]Sample
}

// NewMetrics returns an empty Metrics aggregator.
func NewMetrics() *Metrics {
	return &Metrics{series: make(map[MetricName][]Sample)}
}

// RecordAt records value for name at tick now. If name's last sample was
// recorded at the same tick, value is added to it; otherwise a new sample is
// appended. NaN values are stored verbatim; they do not displace a real
// Min/Max (Go's native float64 comparison semantics).
func (m *Metrics) RecordAt(now Tick, name MetricName, value float64) {
	series := m.series[name]
	if n := len(series); n > 0 && series[n-1].Tick == now {
		series[n-1].Value += value
		return
	}
	m.series[name] = append(series, Sample{Tick: now, Value: value})
}

// Stats derives summary statistics for name, or (zero, false) if name has no
// samples recorded.
func (m *Metrics) Stats(name MetricName) (MetricStats, bool) {
	series, ok := m.series[name]
	if !ok || len(series) == 0 {
		return MetricStats{}, false
	}
	stats := MetricStats{
		Min:    math.Inf(1),
		Max:    math.Inf(-1),
		Count:  len(series),
		Series: append([]Sample(nil), series...),
	}
	sawReal := false
	for _, s := range series {
		stats.Total += s.Value
		if math.IsNaN(s.Value) {
			continue
		}
		sawReal = true
		if s.Value < stats.Min {
			stats.Min = s.Value
		}
		if s.Value > stats.Max {
			stats.Max = s.Value
		}
	}
	if !sawReal {
		stats.Min = math.NaN()
		stats.Max = math.NaN()
	}
	if stats.Count > 0 {
		stats.Average = stats.Total / float64(stats.Count)
	}
	return stats, true
}

// Names returns every recorded metric name, sorted for deterministic
// iteration.
func (m *Metrics) Names() []MetricName {
	names := make([]MetricName, 0, len(m.series))
	for name := range m.series {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Print displays aggregated metrics for quick inspection.
func (m *Metrics) Print() {
	fmt.Println("=== Simulation Metrics ===")
	for _, name := range m.Names() {
		stats, _ := m.Stats(name)
		fmt.Printf("%-20s total=%.4f avg=%.4f min=%.4f max=%.4f count=%d\n",
			name, stats.Total, stats.Average, stats.Min, stats.Max, stats.Count)
	}
}

// MetricsSnapshot is the serializable form of Metrics, used by Snapshot/Restore.
type MetricsSnapshot struct {
	Series map[MetricName][]Sample
}

// Snapshot captures every sample verbatim.
func (m *Metrics) Snapshot() MetricsSnapshot {
	cp := make(map[MetricName][]Sample, len(m.series))
	for name, series := range m.series {
		cp[name] = append([]Sample(nil), series...)
	}
	return MetricsSnapshot{Series: cp}
}

// RestoreMetrics rebuilds a Metrics aggregator from a snapshot, preserving
// every sample verbatim.
func RestoreMetrics(snap MetricsSnapshot) *Metrics {
	m := NewMetrics()
	for name, series := range snap.Series {
		m.series[name] = append([]Sample(nil), series...)
	}
	return m
}
