// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"time"

	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"

	dto "github.com/prometheus/client_model/go"
)

const levelLabel = "level"

var _ prometheus.Gatherer = (*gatherer)(nil)

// Metric names carry no namespace. Callers register the gatherer under a
// prefix.
type metrics struct {
	delayStart time.Time
	writeStall metric.Averager

	getLatency metric.Averager
	putLatency metric.Averager

	compactions       *prometheus.CounterVec
	activeCompactions prometheus.Gauge

	tombstones prometheus.Gauge
	diskUsage  prometheus.Gauge
}

func newMetrics() (*prometheus.Registry, *metrics, error) {
	r := prometheus.NewRegistry()
	errs := wrappers.Errs{}
	m := &metrics{
		writeStall: metric.NewAveragerWithErrs(
			"write_stall",
			"time spent waiting for disk write",
			r,
			&errs,
		),
		getLatency: metric.NewAveragerWithErrs(
			"get_latency",
			"time spent reading an executable",
			r,
			&errs,
		),
		putLatency: metric.NewAveragerWithErrs(
			"put_latency",
			"time spent writing an executable",
			r,
			&errs,
		),
		compactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "compactions",
			Help: "number of compactions by input level (l0 or other)",
		}, []string{levelLabel}),
		activeCompactions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "active_compactions",
			Help: "number of active compactions",
		}),
		tombstones: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tombstones",
			Help: "approximate count of removed executables not yet compacted away",
		}),
		diskUsage: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "disk_usage",
			Help: "bytes used on disk by the executable database",
		}),
	}
	errs.Add(
		r.Register(m.compactions),
		r.Register(m.activeCompactions),
		r.Register(m.tombstones),
		r.Register(m.diskUsage),
	)
	return r, m, errs.Err
}

func (db *Database) onCompactionBegin(info pebble.CompactionInfo) {
	db.metrics.activeCompactions.Inc()
	level := "other"
	if len(info.Input) > 0 && info.Input[0].Level == 0 {
		level = "l0"
	}
	db.metrics.compactions.WithLabelValues(level).Inc()
}

func (db *Database) onCompactionEnd(pebble.CompactionInfo) {
	db.metrics.activeCompactions.Dec()
}

func (db *Database) onWriteStallBegin(pebble.WriteStallBeginInfo) {
	db.metrics.delayStart = time.Now()
}

func (db *Database) onWriteStallEnd() {
	db.metrics.writeStall.Observe(float64(time.Since(db.metrics.delayStart)))
}

// updateMetrics copies the database gauges into the registry. It is a
// no-op once the database is closed.
func (db *Database) updateMetrics() {
	db.l.RLock()
	defer db.l.RUnlock()

	if db.closed {
		return
	}
	m := db.db.Metrics()
	db.metrics.tombstones.Set(float64(m.Keys.TombstoneCount))
	db.metrics.diskUsage.Set(float64(m.DiskSpaceUsage()))
}

// gatherer refreshes the gauges before every scrape, so a short-lived
// process reports current values.
type gatherer struct {
	db       *Database
	registry *prometheus.Registry
}

func (g *gatherer) Gather() ([]*dto.MetricFamily, error) {
	g.db.updateMetrics()
	return g.registry.Gather()
}
