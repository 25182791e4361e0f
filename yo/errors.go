// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package yo

import "errors"

var (
	ErrCorruptStream = errors.New("corrupt stream")
	ErrArityMismatch = errors.New("arity mismatch")
)
