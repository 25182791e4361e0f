// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package yo

import (
	"fmt"

	"github.com/ava-labs/yort/codec"
	"github.com/ava-labs/yort/consts"
)

// Size is the number of bytes SaveToBinary appends.
func (m *Module) Size() int {
	return codec.StringLen(m.name) +
		codec.StringLen(m.deviceType) +
		codec.BytesLen(m.code) +
		codec.BytesLen(m.deviceConfig)
}

// SaveToBinary appends the module to [p]. The field order is part of the
// wire format and must not change without a new executable version.
func (m *Module) SaveToBinary(p *codec.Packer) {
	p.PackString(m.name)
	p.PackString(m.deviceType)
	p.PackBytes(m.code)
	p.PackBytes(m.deviceConfig)
}

// Bytes returns the serialized module. Modules Parse would reject as too
// large fail here with codec.ErrFieldTooLarge.
func (m *Module) Bytes() ([]byte, error) {
	p := codec.NewWriter(min(m.Size(), consts.MaxStreamSize), consts.MaxStreamSize)
	m.SaveToBinary(p)
	return p.Bytes(), p.Err()
}

// LoadFromBinary reads a module written by SaveToBinary. Running out of
// bytes before all four fields are read fails with ErrCorruptStream; no
// partially populated module is ever returned.
func LoadFromBinary(p *codec.Packer, opts ...Option) (*Module, error) {
	var (
		name         = p.UnpackString(false)
		deviceType   = p.UnpackString(false)
		code         []byte
		deviceConfig []byte
	)
	p.UnpackBytes(-1, false, &code)
	p.UnpackBytes(-1, false, &deviceConfig)
	if err := p.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptStream, err)
	}
	return New(name, deviceType, code, deviceConfig, opts...), nil
}

// Parse restores a module from bytes produced by Bytes. Unconsumed bytes
// are reported as ErrCorruptStream.
func Parse(b []byte, opts ...Option) (*Module, error) {
	p := codec.NewReader(b, consts.MaxStreamSize)
	m, err := LoadFromBinary(p, opts...)
	if err != nil {
		return nil, err
	}
	if !p.Empty() {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorruptStream, len(b)-p.Offset())
	}
	return m, nil
}
