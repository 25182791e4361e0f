// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package store

import (
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "store"

type metrics struct {
	saves        prometheus.Counter
	loads        prometheus.Counter
	loadFailures prometheus.Counter
	bytesWritten prometheus.Counter
}

func newMetrics(r prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		saves: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "saves",
			Help:      "number of executables saved",
		}),
		loads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loads",
			Help:      "number of executables loaded",
		}),
		loadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "load_failures",
			Help:      "number of stored executables that failed to load",
		}),
		bytesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_written",
			Help:      "number of executable bytes written",
		}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.saves),
		r.Register(m.loads),
		r.Register(m.loadFailures),
		r.Register(m.bytesWritten),
	)
	return m, errs.Err
}
