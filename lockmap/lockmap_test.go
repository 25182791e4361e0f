// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lockmap

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestLockmap(t *testing.T) {
	require := require.New(t)

	lm := New(4)
	lm.RLock("a")
	lm.RLock("a")
	lm.Lock("b")
	require.Equal(2, lm.Locks())

	lm.RUnlock("a")
	require.Equal(2, lm.Locks())
	lm.RUnlock("a")
	require.Equal(1, lm.Locks())

	lm.Unlock("b")
	require.Zero(lm.Locks())

	// released locks can be taken again
	lm.Lock("a")
	lm.Unlock("a")
	require.Zero(lm.Locks())
}

func TestLockmapConcurrent(t *testing.T) {
	require := require.New(t)

	var (
		lm       = New(16)
		counters = make([]int, 4)
		g        errgroup.Group
	)
	for i := 0; i < 64; i++ {
		k := i % len(counters)
		g.Go(func() error {
			key := strconv.Itoa(k)
			for j := 0; j < 100; j++ {
				lm.Lock(key)
				counters[k]++
				lm.Unlock(key)

				lm.RLock(key)
				_ = counters[k]
				lm.RUnlock(key)
			}
			return nil
		})
	}
	require.NoError(g.Wait())
	for _, c := range counters {
		require.Equal(1600, c)
	}
	require.Zero(lm.Locks())
}
