// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package yo

import (
	"github.com/ava-labs/avalanchego/utils/wrappers"

	"github.com/ava-labs/yort/codec"
	"github.com/ava-labs/yort/runtime"
)

// Setup types
func init() {
	if err := Register(runtime.DefaultRegistry); err != nil {
		panic(err)
	}
}

// Register adds the Yo loader and construction entry point to [r].
func Register(r *runtime.Registry, opts ...Option) error {
	errs := &wrappers.Errs{}
	errs.Add(
		r.RegisterLoader(TypeKey, func(p *codec.Packer) (runtime.Module, error) {
			m, err := LoadFromBinary(p, opts...)
			if err != nil {
				return nil, err
			}
			return m, nil
		}),
		r.RegisterCreator(CreateFnName, func(name string, deviceType string, code []byte, deviceConfig []byte) (runtime.Module, error) {
			return New(name, deviceType, code, deviceConfig, opts...), nil
		}),
	)
	return errs.Err
}

// CreateRuntimeModule builds a module for [targetDevice] through the
// construction entry point registered with the DefaultRegistry, so the
// result is indistinguishable from one restored from an executable. An
// empty [name] defaults to DefaultSymbol.
func CreateRuntimeModule(targetDevice string, code []byte, deviceConfig []byte, name string) (runtime.Module, error) {
	if len(name) == 0 {
		name = DefaultSymbol
	}
	return runtime.DefaultRegistry.Create(CreateFnName, name, targetDevice, code, deviceConfig)
}
