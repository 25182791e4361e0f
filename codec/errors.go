// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "errors"

var (
	ErrDuplicateItem     = errors.New("duplicate item")
	ErrFieldNotPopulated = errors.New("field is not populated")
	ErrFieldTooLarge     = errors.New("field is too large")
	ErrInvalidSize       = errors.New("invalid size")
	ErrEmptyTag          = errors.New("empty tag")
	ErrNilDecoder        = errors.New("nil decoder")
)
