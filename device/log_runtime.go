// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package device

import (
	"context"

	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

var _ Runtime = (*LogRuntime)(nil)

// LogRuntime stands in for a device: it logs the instructions it is handed
// instead of running them.
type LogRuntime struct {
	log  logging.Logger
	runs atomic.Uint64
}

func NewLogRuntime(log logging.Logger) *LogRuntime {
	return &LogRuntime{log: log}
}

func (r *LogRuntime) Execute(_ context.Context, p *Program, args ...any) error {
	r.runs.Inc()
	r.log.Info("run instructions",
		zap.String("program", p.Name),
		zap.String("deviceType", p.DeviceType),
		zap.ByteString("code", p.Code),
		zap.Int("args", len(args)),
	)
	return nil
}

// Runs returns the number of programs handed to the runtime.
func (r *LogRuntime) Runs() uint64 {
	return r.runs.Load()
}
