// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"context"

	"github.com/ava-labs/yort/codec"
)

// Module is a unit of compiled code that the host can persist, restore and
// call into without knowing anything about the code it carries.
type Module interface {
	// TypeKey identifies the module family. It selects the loader used to
	// restore the module from a persisted executable.
	TypeKey() string

	// GetFunction returns the function exported under [name], or nil if the
	// module does not provide one. A nil result is not an error: callers
	// use it to probe for optional capabilities.
	GetFunction(name string) PackedFunc

	// SaveToBinary appends the module segment to [p].
	SaveToBinary(p *codec.Packer)
}

// PackedFunc is the type-erased calling convention shared by every module
// family. The zero value (nil) means "not found".
type PackedFunc func(ctx context.Context, args ...any) (any, error)
