// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package yo

import (
	"bytes"

	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/ava-labs/yort/device"
	"github.com/ava-labs/yort/runtime"
)

var _ runtime.Module = (*Module)(nil)

// Module is one unit of code compiled for a Yo device.
//
// All fields are set at construction and never change, so a Module may be
// shared and dispatched from concurrently. Whether the main execution entry
// may run concurrently depends on the device runtime executing [code].
type Module struct {
	name         string
	deviceType   string
	code         []byte
	deviceConfig []byte

	log     logging.Logger
	devices *device.Registry
	// pinned, when set, executes [code] instead of the runtime registered
	// for [deviceType].
	pinned device.Runtime
}

type Option func(*Module)

// WithLogger sets the logger used for dispatch and execution.
func WithLogger(log logging.Logger) Option {
	return func(m *Module) {
		m.log = log
	}
}

// WithDevices sets the registry used to resolve the device runtime. A nil
// [r] keeps device.DefaultRegistry.
func WithDevices(r *device.Registry) Option {
	return func(m *Module) {
		if r != nil {
			m.devices = r
		}
	}
}

// WithDevice pins the runtime that executes the module code.
func WithDevice(rt device.Runtime) Option {
	return func(m *Module) {
		m.pinned = rt
	}
}

// New creates a module. Contents are not validated: any value, including
// empty ones, is accepted. [code] and [deviceConfig] are copied and never
// interpreted.
func New(name string, deviceType string, code []byte, deviceConfig []byte, opts ...Option) *Module {
	m := &Module{
		name:         name,
		deviceType:   deviceType,
		code:         bytes.Clone(code),
		deviceConfig: bytes.Clone(deviceConfig),
		log:          logging.NoLog{},
		devices:      device.DefaultRegistry,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (*Module) TypeKey() string {
	return TypeKey
}

func (*Module) DeviceDescriptor() string {
	return DeviceDescriptor
}

// Name is the symbol of the module and the name of its main execution
// entry.
func (m *Module) Name() string {
	return m.name
}

func (m *Module) DeviceType() string {
	return m.deviceType
}

// Code returns a copy of the compiled payload.
func (m *Module) Code() []byte {
	return bytes.Clone(m.code)
}

// DeviceConfig returns a copy of the device configuration payload.
func (m *Module) DeviceConfig() []byte {
	return bytes.Clone(m.deviceConfig)
}

// Equal reports whether [m] and [o] carry the same fields.
func (m *Module) Equal(o *Module) bool {
	return m.name == o.name &&
		m.deviceType == o.deviceType &&
		bytes.Equal(m.code, o.code) &&
		bytes.Equal(m.deviceConfig, o.deviceConfig)
}
