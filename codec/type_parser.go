// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"slices"
	"sync"

	"golang.org/x/exp/maps"
)

// TypeParser maps a string tag to the decoder able to rebuild a [T] from a
// Packer. Tags are append-only: once registered, a decoder is never
// replaced.
type TypeParser[T any] struct {
	l        sync.RWMutex
	decoders map[string]func(*Packer) (T, error)
}

func NewTypeParser[T any]() *TypeParser[T] {
	return &TypeParser[T]{
		decoders: map[string]func(*Packer) (T, error){},
	}
}

func (p *TypeParser[T]) Register(tag string, f func(*Packer) (T, error)) error {
	if len(tag) == 0 {
		return ErrEmptyTag
	}
	if f == nil {
		return ErrNilDecoder
	}

	p.l.Lock()
	defer p.l.Unlock()

	if _, ok := p.decoders[tag]; ok {
		return ErrDuplicateItem
	}
	p.decoders[tag] = f
	return nil
}

func (p *TypeParser[T]) Lookup(tag string) (func(*Packer) (T, error), bool) {
	p.l.RLock()
	defer p.l.RUnlock()

	f, ok := p.decoders[tag]
	return f, ok
}

// Tags returns every registered tag in sorted order.
func (p *TypeParser[T]) Tags() []string {
	p.l.RLock()
	tags := maps.Keys(p.decoders)
	p.l.RUnlock()

	slices.Sort(tags)
	return tags
}
