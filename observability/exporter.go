// Package observability exposes a *sim.World as a Prometheus collector. It
// is pull-model glue only: Collect reads Metrics/World accessors and never
// mutates simulation state, so mounting it cannot perturb determinism.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vivarium-sim/vivarium/sim"
)

// Exporter adapts one World's metrics and clock into Prometheus gauges.
// Callers decide whether and how to serve them (e.g. promhttp.Handler);
// this package never starts an HTTP server itself.
type Exporter struct {
	world *sim.World

	metricTotal   *prometheus.Desc
	metricCount   *prometheus.Desc
	metricAverage *prometheus.Desc
	worldClock    *prometheus.Desc
	worldEntities *prometheus.Desc
}

// NewExporter returns an Exporter wrapping world. Register it with a
// prometheus.Registry to publish its metrics.
func NewExporter(world *sim.World) *Exporter {
	return &Exporter{
		world: world,
		metricTotal: prometheus.NewDesc(
			"vivarium_metric_total", "Cumulative total of a named simulation metric.",
			[]string{"name"}, nil),
		metricCount: prometheus.NewDesc(
			"vivarium_metric_count", "Number of samples recorded for a named simulation metric.",
			[]string{"name"}, nil),
		metricAverage: prometheus.NewDesc(
			"vivarium_metric_average", "Running average of a named simulation metric.",
			[]string{"name"}, nil),
		worldClock: prometheus.NewDesc(
			"vivarium_world_clock_ticks", "Current logical tick of the world.", nil, nil),
		worldEntities: prometheus.NewDesc(
			"vivarium_world_entities", "Number of live entities in the world.", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (e *Exporter) Describe(ch chan<- *prometheus.Desc) {
	ch <- e.metricTotal
	ch <- e.metricCount
	ch <- e.metricAverage
	ch <- e.worldClock
	ch <- e.worldEntities
}

// Collect implements prometheus.Collector.
func (e *Exporter) Collect(ch chan<- prometheus.Metric) {
	metrics := e.world.Metrics()
	for _, name := range metrics.Names() {
		stats, ok := metrics.Stats(name)
		if !ok {
			continue
		}
		ch <- prometheus.MustNewConstMetric(e.metricTotal, prometheus.GaugeValue, stats.Total, string(name))
		ch <- prometheus.MustNewConstMetric(e.metricCount, prometheus.GaugeValue, float64(stats.Count), string(name))
		ch <- prometheus.MustNewConstMetric(e.metricAverage, prometheus.GaugeValue, stats.Average, string(name))
	}
	ch <- prometheus.MustNewConstMetric(e.worldClock, prometheus.GaugeValue, float64(e.world.Clock()))
	ch <- prometheus.MustNewConstMetric(e.worldEntities, prometheus.GaugeValue, float64(e.world.EntityCount()))
}
