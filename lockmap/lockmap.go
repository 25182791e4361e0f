// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package lockmap provides per-key read/write locks. A key's lock only
// exists while it has holders.
package lockmap

import "sync"

type holderLock struct {
	holders int
	mu      sync.RWMutex
}

type Lockmap struct {
	l sync.Mutex
	m map[string]*holderLock
}

func New(initSize int) *Lockmap {
	return &Lockmap{
		m: make(map[string]*holderLock, initSize),
	}
}

func (l *Lockmap) Lock(key string) {
	l.lock(key, true)
}

func (l *Lockmap) Unlock(key string) {
	l.unlock(key, true)
}

func (l *Lockmap) RLock(key string) {
	l.lock(key, false)
}

func (l *Lockmap) RUnlock(key string) {
	l.unlock(key, false)
}

func (l *Lockmap) lock(key string, write bool) {
	l.l.Lock()
	hl, ok := l.m[key]
	if !ok {
		hl = &holderLock{}
		l.m[key] = hl
	}
	hl.holders++
	l.l.Unlock()

	if write {
		hl.mu.Lock()
	} else {
		hl.mu.RLock()
	}
}

func (l *Lockmap) unlock(key string, write bool) {
	l.l.Lock()
	defer l.l.Unlock()

	hl := l.m[key]
	if write {
		hl.mu.Unlock()
	} else {
		hl.mu.RUnlock()
	}
	hl.holders--
	if hl.holders == 0 {
		delete(l.m, key)
	}
}

// Locks returns the number of keys with at least one holder.
func (l *Lockmap) Locks() int {
	l.l.Lock()
	defer l.l.Unlock()

	return len(l.m)
}
