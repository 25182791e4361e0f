// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/utils/wrappers"

	"github.com/ava-labs/yort/codec"
	"github.com/ava-labs/yort/consts"
)

// SaveExecutable serializes [mods] into a single executable. Each module is
// written as its type key followed by the segment produced by its
// SaveToBinary. An executable larger than [limit] bytes fails with
// ErrTooLarge, so anything saved loads back with the same [limit].
func SaveExecutable(mods []Module, limit int) ([]byte, error) {
	p := codec.NewWriter(max(0, min(consts.DefaultStreamSize, limit)), limit)
	p.PackByte(ExecutableVersion)
	p.PackInt(uint32(len(mods)))
	for _, m := range mods {
		p.PackString(m.TypeKey())
		m.SaveToBinary(p)
	}
	if err := p.Err(); err != nil {
		if errors.Is(err, codec.ErrFieldTooLarge) || errors.Is(err, wrappers.ErrInsufficientLength) {
			return nil, fmt.Errorf("%w: limit %d: %w", ErrTooLarge, limit, err)
		}
		return nil, fmt.Errorf("failed to save executable: %w", err)
	}
	return p.Bytes(), nil
}

// LoadExecutable restores every module of an executable produced by
// SaveExecutable. Any failure aborts the whole load: no module is returned
// unless every module was restored and every byte was consumed.
func (r *Registry) LoadExecutable(b []byte, limit int) ([]Module, error) {
	p := codec.NewReader(b, limit)
	version := p.UnpackByte()
	count := p.UnpackInt(false)
	if err := p.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptExecutable, err)
	}
	if version != ExecutableVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	// [count] is untrusted, so never reserve more entries than there are
	// bytes left to describe them.
	mods := make([]Module, 0, min(int(count), len(b)-p.Offset()))
	for i := uint32(0); i < count; i++ {
		typeKey := p.UnpackString(true)
		if err := p.Err(); err != nil {
			return nil, fmt.Errorf("%w: module %d type key: %w", ErrCorruptExecutable, i, err)
		}
		m, err := r.Load(typeKey, p)
		if err != nil {
			return nil, fmt.Errorf("failed to load module %d (%s): %w", i, typeKey, err)
		}
		mods = append(mods, m)
	}
	if !p.Empty() {
		return nil, fmt.Errorf("%w: %d remaining", ErrTrailingBytes, len(b)-p.Offset())
	}
	return mods, nil
}

// LoadExecutable restores an executable with the DefaultRegistry.
func LoadExecutable(b []byte) ([]Module, error) {
	return DefaultRegistry.LoadExecutable(b, consts.MaxStreamSize)
}
