// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"golang.org/x/exp/maps"

	"github.com/ava-labs/yort/codec"
)

// LoaderFunc restores a module from its persisted segment.
type LoaderFunc func(*codec.Packer) (Module, error)

// CreateFunc builds a module directly from compiler output, bypassing
// serialization.
type CreateFunc func(name string, deviceType string, code []byte, deviceConfig []byte) (Module, error)

// DefaultRegistry is the process-wide registry module families register
// themselves with during package initialization.
var DefaultRegistry = NewRegistry()

// Registry maps loader tags to loaders and creator names to creators.
// Entries are never removed or replaced. Registration after
// initialization is supported; every access is guarded.
type Registry struct {
	loaders *codec.TypeParser[Module]

	l        sync.RWMutex
	creators map[string]CreateFunc
}

func NewRegistry() *Registry {
	return &Registry{
		loaders:  codec.NewTypeParser[Module](),
		creators: map[string]CreateFunc{},
	}
}

// RegisterLoader registers [f] under LoaderTag([typeKey]).
func (r *Registry) RegisterLoader(typeKey string, f LoaderFunc) error {
	if len(typeKey) == 0 {
		return codec.ErrEmptyTag
	}
	if f == nil {
		return codec.ErrNilDecoder
	}
	if err := r.loaders.Register(LoaderTag(typeKey), f); err != nil {
		return fmt.Errorf("%w: loader %s", err, LoaderTag(typeKey))
	}
	return nil
}

// Loader returns the loader registered for [typeKey]. Only tags built with
// LoaderTag are consulted.
func (r *Registry) Loader(typeKey string) (LoaderFunc, bool) {
	f, ok := r.loaders.Lookup(LoaderTag(typeKey))
	if !ok {
		return nil, false
	}
	return f, true
}

// TypeKeys returns the type keys of every registered loader, sorted.
func (r *Registry) TypeKeys() []string {
	tags := r.loaders.Tags()
	keys := make([]string, 0, len(tags))
	for _, tag := range tags {
		keys = append(keys, strings.TrimPrefix(tag, LoaderPrefix))
	}
	return keys
}

// Load restores a module of family [typeKey] from [p].
func (r *Registry) Load(typeKey string, p *codec.Packer) (Module, error) {
	f, ok := r.Loader(typeKey)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTypeKey, typeKey)
	}
	return f(p)
}

// RegisterCreator registers [f] under [name].
func (r *Registry) RegisterCreator(name string, f CreateFunc) error {
	if len(name) == 0 {
		return codec.ErrEmptyTag
	}
	if f == nil {
		return codec.ErrNilDecoder
	}

	r.l.Lock()
	defer r.l.Unlock()

	if _, ok := r.creators[name]; ok {
		return fmt.Errorf("%w: creator %s", codec.ErrDuplicateItem, name)
	}
	r.creators[name] = f
	return nil
}

func (r *Registry) Creator(name string) (CreateFunc, bool) {
	r.l.RLock()
	defer r.l.RUnlock()

	f, ok := r.creators[name]
	return f, ok
}

// Creators returns the names of every registered creator, sorted.
func (r *Registry) Creators() []string {
	r.l.RLock()
	names := maps.Keys(r.creators)
	r.l.RUnlock()

	slices.Sort(names)
	return names
}

// Create builds a module with the creator registered under [creator].
func (r *Registry) Create(
	creator string,
	name string,
	deviceType string,
	code []byte,
	deviceConfig []byte,
) (Module, error) {
	f, ok := r.Creator(creator)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCreator, creator)
	}
	return f(name, deviceType, code, deviceConfig)
}
