// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package device

import (
	"context"
	"time"

	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "device"

type Metrics struct {
	executions        prometheus.Counter
	executionFailures prometheus.Counter
	executionTime     prometheus.Histogram
}

// NewMetrics registers the device metrics with [r].
func NewMetrics(r prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		executions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "executions",
			Help:      "number of programs handed to a device runtime",
		}),
		executionFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "execution_failures",
			Help:      "number of programs a device runtime failed to execute",
		}),
		executionTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "execution_time",
			Help:      "time spent executing a program (s)",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.executions),
		r.Register(m.executionFailures),
		r.Register(m.executionTime),
	)
	return m, errs.Err
}

type meteredRuntime struct {
	Runtime
	metrics *Metrics
}

// WithMetrics records every execution of [rt] in [m].
func WithMetrics(rt Runtime, m *Metrics) Runtime {
	return &meteredRuntime{Runtime: rt, metrics: m}
}

func (r *meteredRuntime) Execute(ctx context.Context, p *Program, args ...any) error {
	start := time.Now()
	err := r.Runtime.Execute(ctx, p, args...)
	r.metrics.executions.Inc()
	r.metrics.executionTime.Observe(time.Since(start).Seconds())
	if err != nil {
		r.metrics.executionFailures.Inc()
	}
	return err
}
