// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package device

import "errors"

var (
	ErrDuplicateDevice = errors.New("duplicate device type")
	ErrEmptyDeviceType = errors.New("empty device type")
	ErrNilRuntime      = errors.New("nil runtime")
)
