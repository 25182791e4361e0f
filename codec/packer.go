// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"github.com/ava-labs/avalanchego/utils/wrappers"

	"github.com/ava-labs/yort/consts"
)

// Packer is a wrapper struct for the Packer struct
// from avalanchego/utils/wrappers/packing.go. The first error encountered
// while packing or unpacking is kept and every later call is a no-op, so
// callers only need to check [Err] once they are done.
type Packer struct {
	p *wrappers.Packer

	// limit bounds the size of any single variable length field that is
	// unpacked.
	limit int
}

// NewReader returns a Packer that reads from [src]. No variable length
// field larger than [limit] will be unpacked.
func NewReader(src []byte, limit int) *Packer {
	return &Packer{
		p:     &wrappers.Packer{Bytes: src},
		limit: limit,
	}
}

// NewWriter returns a Packer with [initial] bytes of capacity that will
// error once more than [limit] bytes have been packed.
func NewWriter(initial, limit int) *Packer {
	return &Packer{
		p:     &wrappers.Packer{Bytes: make([]byte, 0, initial), MaxSize: limit},
		limit: limit,
	}
}

func (p *Packer) PackByte(b byte) {
	p.p.PackByte(b)
}

func (p *Packer) UnpackByte() byte {
	return p.p.UnpackByte()
}

func (p *Packer) PackInt(v uint32) {
	p.p.PackInt(v)
}

// UnpackInt unpacks a uint32. If [required] is set, a zero value is
// reported as ErrFieldNotPopulated.
func (p *Packer) UnpackInt(required bool) uint32 {
	v := p.p.UnpackInt()
	if required && v == 0 && !p.p.Errored() {
		p.addErr(ErrFieldNotPopulated)
	}
	return v
}

// PackBytes packs [b] prefixed by its length as a uint32.
func (p *Packer) PackBytes(b []byte) {
	if !p.fits(len(b)) {
		p.addErr(ErrFieldTooLarge)
		return
	}
	p.p.PackBytes(b)
}

// UnpackBytes unpacks a length prefixed byte slice into [dest]. A [limit]
// of -1 falls back to the limit of the Packer. The returned slice never
// aliases the source buffer.
func (p *Packer) UnpackBytes(limit int, required bool, dest *[]byte) {
	if p.p.Errored() {
		return
	}
	if limit < 0 {
		limit = p.limit
	}
	size := p.p.UnpackInt()
	if p.p.Errored() {
		return
	}
	if limit >= 0 && uint64(size) > uint64(limit) {
		p.addErr(ErrFieldTooLarge)
		return
	}
	b := p.p.UnpackFixedBytes(int(size))
	if p.p.Errored() {
		return
	}
	if required && len(b) == 0 {
		p.addErr(ErrFieldNotPopulated)
		return
	}
	*dest = make([]byte, len(b))
	copy(*dest, b)
}

// PackString packs [s] with the same uint32 length prefix as PackBytes, so
// strings are not limited to the uint16 prefix of wrappers.Packer.PackStr
// and may carry arbitrary bytes (including zero bytes).
func (p *Packer) PackString(s string) {
	if !p.fits(len(s)) {
		p.addErr(ErrFieldTooLarge)
		return
	}
	p.p.PackInt(uint32(len(s)))
	p.p.PackFixedBytes([]byte(s))
}

func (p *Packer) UnpackString(required bool) string {
	var b []byte
	p.UnpackBytes(-1, required, &b)
	return string(b)
}

func (p *Packer) Bytes() []byte {
	return p.p.Bytes
}

func (p *Packer) Offset() int {
	return p.p.Offset
}

// Empty reports whether every byte of a reader has been consumed.
func (p *Packer) Empty() bool {
	return p.p.Offset == len(p.p.Bytes)
}

func (p *Packer) Err() error {
	return p.p.Err
}

// fits reports whether a field of [size] bytes can be packed and read back
// by a reader with the same limit.
func (p *Packer) fits(size int) bool {
	if size > int(consts.MaxUint32) {
		return false
	}
	return p.limit < 0 || size <= p.limit
}

func (p *Packer) addErr(err error) {
	p.p.Add(err)
}
