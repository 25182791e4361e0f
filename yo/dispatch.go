// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package yo

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ava-labs/yort/device"
	"github.com/ava-labs/yort/runtime"
)

// dispatchCase pairs a predicate on the requested name with the function
// returned when it matches.
type dispatchCase struct {
	match  func(m *Module, requested string) bool
	handle func(m *Module) runtime.PackedFunc
}

// dispatchTable is evaluated in order and the first match wins. A module
// named "get_symbol" therefore still answers get_symbol with its name
// rather than running its code.
var dispatchTable = []dispatchCase{
	{
		match:  func(_ *Module, requested string) bool { return requested == runtime.GetSymbolFnName },
		handle: (*Module).getSymbol,
	},
	{
		match:  func(_ *Module, requested string) bool { return requested == runtime.GetConstVarsFnName },
		handle: (*Module).getConstVars,
	},
	{
		match:  func(m *Module, requested string) bool { return requested == runtime.InitFnName(m.name) },
		handle: (*Module).initConsts,
	},
	{
		match:  func(m *Module, requested string) bool { return requested == m.name },
		handle: (*Module).run,
	},
}

// GetFunction returns the function exported under [name], or nil when the
// module exports nothing under that name. Lookups never change the module.
func (m *Module) GetFunction(name string) runtime.PackedFunc {
	m.log.Debug("looking up function",
		zap.String("module", m.name),
		zap.String("function", name),
	)
	for _, c := range dispatchTable {
		if c.match(m, name) {
			return c.handle(m)
		}
	}
	return nil
}

func (m *Module) getSymbol() runtime.PackedFunc {
	return func(context.Context, ...any) (any, error) {
		return m.name, nil
	}
}

// Yo modules own no constants.
func (*Module) getConstVars() runtime.PackedFunc {
	return func(context.Context, ...any) (any, error) {
		return []string{}, nil
	}
}

// initConsts is the hook for initializing constant tensors. Yo modules have
// none, so it only checks that it was handed exactly one argument.
func (*Module) initConsts() runtime.PackedFunc {
	return func(_ context.Context, args ...any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: got %d expected %d", ErrArityMismatch, len(args), 1)
		}
		return InitSuccess, nil
	}
}

// run hands the module code to the device runtime.
func (m *Module) run() runtime.PackedFunc {
	return func(ctx context.Context, args ...any) (any, error) {
		rt := m.pinned
		if rt == nil {
			var ok bool
			rt, ok = m.devices.Get(m.deviceType)
			if !ok {
				m.log.Warn("no runtime registered for device type, falling back",
					zap.String("module", m.name),
					zap.String("deviceType", m.deviceType),
				)
				rt = m.devices.Fallback()
			}
		}
		m.log.Debug("running module",
			zap.String("module", m.name),
			zap.String("deviceType", m.deviceType),
			zap.String("device", DeviceDescriptor),
			zap.Int("codeSize", len(m.code)),
		)
		return nil, rt.Execute(ctx, &device.Program{
			Name:       m.name,
			DeviceType: m.deviceType,
			Code:       m.code,
			Config:     m.deviceConfig,
		}, args...)
	}
}
