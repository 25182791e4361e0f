// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package yo

const (
	// TypeKey identifies Yo modules inside a persisted executable.
	TypeKey = "Yo"

	// DeviceDescriptor is the device class shared by every Yo module. It is
	// only used for identification.
	DeviceDescriptor = "yoDev"

	// CreateFnName is the name the construction entry point is registered
	// under.
	CreateFnName = "yo_module.create"

	// DefaultSymbol is used when the compiler does not name the module.
	DefaultSymbol = "main"

	// InitSuccess is returned by a successful initializer call.
	InitSuccess = 0
)
