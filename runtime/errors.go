// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import "errors"

var (
	ErrCapabilityNotFound = errors.New("capability not found")
	ErrInvalidReturn      = errors.New("invalid return value")
	ErrUnknownTypeKey     = errors.New("unknown module type key")
	ErrUnknownCreator     = errors.New("unknown module creator")
	ErrCorruptExecutable  = errors.New("corrupt executable")
	ErrUnsupportedVersion = errors.New("unsupported executable version")
	ErrTrailingBytes      = errors.New("trailing bytes after executable")
	ErrTooLarge           = errors.New("executable too large")
)
