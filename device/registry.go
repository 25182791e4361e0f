// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package device

import (
	"slices"
	"sync"

	"github.com/ava-labs/avalanchego/utils/logging"
	"golang.org/x/exp/maps"
)

// DevDeviceType is the device type the compiler emits when no target is
// configured.
const DevDeviceType = "dev"

// DefaultRegistry resolves device types for modules that are not given a
// registry. It only knows the logging runtime.
var DefaultRegistry = NewRegistry(NewLogRuntime(logging.NoLog{}))

func init() {
	if err := DefaultRegistry.Register(DevDeviceType, DefaultRegistry.Fallback()); err != nil {
		panic(err)
	}
}

// Registry maps device types to the runtime executing their code.
type Registry struct {
	l        sync.RWMutex
	runtimes map[string]Runtime
	fallback Runtime
}

// NewRegistry returns an empty registry that resolves unknown device types
// to [fallback]. A nil [fallback] is replaced by a logging runtime that
// discards its output.
func NewRegistry(fallback Runtime) *Registry {
	if fallback == nil {
		fallback = NewLogRuntime(logging.NoLog{})
	}
	return &Registry{
		runtimes: map[string]Runtime{},
		fallback: fallback,
	}
}

func (r *Registry) Register(deviceType string, rt Runtime) error {
	if len(deviceType) == 0 {
		return ErrEmptyDeviceType
	}
	if rt == nil {
		return ErrNilRuntime
	}

	r.l.Lock()
	defer r.l.Unlock()

	if _, ok := r.runtimes[deviceType]; ok {
		return ErrDuplicateDevice
	}
	r.runtimes[deviceType] = rt
	return nil
}

func (r *Registry) Get(deviceType string) (Runtime, bool) {
	r.l.RLock()
	defer r.l.RUnlock()

	rt, ok := r.runtimes[deviceType]
	return rt, ok
}

// Resolve returns the runtime registered for [deviceType], or the fallback
// runtime if there is none.
func (r *Registry) Resolve(deviceType string) Runtime {
	if rt, ok := r.Get(deviceType); ok {
		return rt
	}
	return r.fallback
}

func (r *Registry) Fallback() Runtime {
	return r.fallback
}

// DeviceTypes returns every registered device type, sorted.
func (r *Registry) DeviceTypes() []string {
	r.l.RLock()
	types := maps.Keys(r.runtimes)
	r.l.RUnlock()

	slices.Sort(types)
	return types
}
