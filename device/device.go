// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package device holds the runtimes that execute compiled module code on a
// device.
package device

import "context"

// Program is the compiled code handed to a device runtime.
type Program struct {
	Name       string
	DeviceType string
	Code       []byte
	Config     []byte
}

// Runtime executes compiled code on a device.
//
// Execute must not modify [p.Code] or [p.Config], which are shared with the
// module. A module may invoke its main entry from several goroutines at
// once; a Runtime registered for such modules must be safe for concurrent
// use.
type Runtime interface {
	Execute(ctx context.Context, p *Program, args ...any) error
}
