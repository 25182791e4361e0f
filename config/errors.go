// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import "errors"

var (
	ErrUnknownBackend     = errors.New("unknown store backend")
	ErrInvalidStreamSize  = errors.New("invalid max stream size")
	ErrInvalidPassConfig  = errors.New("invalid pass config")
	ErrInvalidTraceConfig = errors.New("invalid trace config")
)
