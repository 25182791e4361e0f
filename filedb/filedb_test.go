// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package filedb

import (
	"context"
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/units"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/yort/pebble"
)

func TestFileDB(t *testing.T) {
	require := require.New(t)
	db := New(t.TempDir(), true, 1024, 2*units.MiB)

	v, err := db.Get("1")
	require.ErrorIs(err, database.ErrNotFound)
	require.Empty(v)

	require.NoError(db.Put("1", []byte("2")))

	v, err = db.Get("1")
	require.NoError(err)
	require.Equal([]byte("2"), v)

	require.NoError(db.Put("2", []byte("3")))

	v, err = db.Get("2")
	require.NoError(err)
	require.Equal([]byte("3"), v)

	keys, err := db.Keys()
	require.NoError(err)
	require.Equal([]string{"1", "2"}, keys)

	require.NoError(db.Remove("1"))
	require.NoError(db.Remove("2"))
	require.ErrorIs(db.Remove("2"), database.ErrNotFound)

	v, err = db.Get("1")
	require.ErrorIs(err, database.ErrNotFound)
	require.Empty(v)
	v, err = db.Get("2")
	require.ErrorIs(err, database.ErrNotFound)
	require.Empty(v)

	require.Zero(db.lm.Locks())
	require.NoError(db.Close())
}

func TestFileDBReadsThroughCache(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	require.NoError(os.WriteFile(filepath.Join(dir, "exe"), []byte{1, 2}, 0o600))

	db := New(dir, false, 16, units.MiB)
	has, err := db.Has("exe")
	require.NoError(err)
	require.True(has)

	v, err := db.Get("exe")
	require.NoError(err)
	require.Equal([]byte{1, 2}, v)

	// mutating a returned value does not change what is stored
	v[0] = 9
	v, err = db.Get("exe")
	require.NoError(err)
	require.Equal([]byte{1, 2}, v)

	has, err = db.Has("missing")
	require.NoError(err)
	require.False(has)
}

func TestFileDBFailedPutKeepsValue(t *testing.T) {
	for _, sync := range []bool{true, false} {
		t.Run(fmt.Sprintf("sync=%v", sync), func(t *testing.T) {
			require := require.New(t)

			dir := t.TempDir()
			db := New(dir, sync, 16, units.MiB)
			require.NoError(db.Put("exe", []byte{1, 2, 3}))
			require.NoError(db.Put("exe", []byte{4, 5}))

			keys, err := db.Keys()
			require.NoError(err)
			require.Equal([]string{"exe"}, keys)

			// block the pending directory so the next write cannot start
			require.NoError(os.RemoveAll(filepath.Join(dir, pendingDir)))
			require.NoError(os.WriteFile(filepath.Join(dir, pendingDir), nil, 0o600))
			require.Error(db.Put("exe", []byte{6}))

			v, err := db.Get("exe")
			require.NoError(err)
			require.Equal([]byte{4, 5}, v)

			reopened := New(dir, sync, 16, units.MiB)
			v, err = reopened.Get("exe")
			require.NoError(err)
			require.Equal([]byte{4, 5}, v)
			require.Zero(db.lm.Locks())
		})
	}
}

func TestFileDBInvalidKey(t *testing.T) {
	db := New(t.TempDir(), false, 16, units.MiB)
	for _, key := range []string{"", ".", "..", pendingDir, "a/b", `a\b`, "../escape"} {
		t.Run(key, func(t *testing.T) {
			require := require.New(t)

			require.ErrorIs(db.Put(key, nil), ErrInvalidKey)
			_, err := db.Get(key)
			require.ErrorIs(err, ErrInvalidKey)
			_, err = db.Has(key)
			require.ErrorIs(err, ErrInvalidKey)
			require.ErrorIs(db.Remove(key), ErrInvalidKey)
		})
	}
}

func BenchmarkFileDB(b *testing.B) {
	for _, sync := range []bool{true, false} {
		b.Run(fmt.Sprintf("sync=%v", sync), func(b *testing.B) {
			b.StopTimer()
			db := New(b.TempDir(), sync, 1024, 32*units.MiB)
			msg := make([]byte, 1.5*units.MiB)
			_, err := rand.Read(msg)
			if err != nil {
				b.Fatal(err)
			}
			b.StartTimer()
			for i := 0; i < b.N; i++ {
				if err := db.Put(fmt.Sprintf("%d", i), msg); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkFileDBConcurrent(b *testing.B) {
	for _, sync := range []bool{true, false} {
		b.Run(fmt.Sprintf("sync=%v", sync), func(b *testing.B) {
			b.StopTimer()
			db := New(b.TempDir(), sync, 1024, 32*units.MiB)
			msg := make([]byte, 1.5*units.MiB)
			_, err := rand.Read(msg)
			if err != nil {
				b.Fatal(err)
			}
			b.StartTimer()
			g, _ := errgroup.WithContext(context.TODO())
			g.SetLimit(runtime.NumCPU())
			for i := 0; i < b.N; i++ {
				ti := i
				g.Go(func() error {
					return db.Put(fmt.Sprintf("%d", ti), msg)
				})
			}
			if err := g.Wait(); err != nil {
				b.Fatal(err)
			}
		})
	}
}

func BenchmarkPebbleDB(b *testing.B) {
	b.StopTimer()
	db, _, err := pebble.New(b.TempDir(), pebble.NewDefaultConfig())
	if err != nil {
		b.Fatal(err)
	}
	defer db.Close()

	msg := make([]byte, 1.5*units.MiB)
	if _, err := rand.Read(msg); err != nil {
		b.Fatal(err)
	}
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		if err := db.Put(fmt.Sprintf("%d", i), msg); err != nil {
			b.Fatal(err)
		}
	}
}
