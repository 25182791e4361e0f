// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

import (
	"github.com/ava-labs/avalanchego/utils/units"
	"github.com/ava-labs/avalanchego/version"
)

const Name = "yort"

var Version = &version.Semantic{
	Major: 0,
	Minor: 1,
	Patch: 0,
}

const (
	ByteLen   = 1
	IntLen    = 4
	MaxUint8  = ^uint8(0)
	MaxUint32 = ^uint32(0)
	MaxUint   = ^uint(0)
	MaxInt    = int(MaxUint >> 1)

	// DefaultStreamSize is the initial capacity reserved when serializing
	// an executable.
	DefaultStreamSize = 4 * units.KiB

	// MaxStreamSize bounds how large a persisted executable may be when it
	// is read back.
	MaxStreamSize = 256 * units.MiB
)
