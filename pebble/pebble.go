// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/units"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/bloom"
	"github.com/prometheus/client_golang/prometheus"
)

type Config struct {
	CacheSize                   int64 `json:"cacheSize"`
	BytesPerSync                int   `json:"bytesPerSync"`
	WALBytesPerSync             int   `json:"walBytesPerSync"`
	MemTableStopWritesThreshold int   `json:"memTableStopWritesThreshold"`
	MaxOpenFiles                int   `json:"maxOpenFiles"`
	ConcurrentCompactions       int   `json:"concurrentCompactions"`
	Sync                        bool  `json:"sync"`
}

func NewDefaultConfig() Config {
	return Config{
		CacheSize:                   64 * units.MiB,
		BytesPerSync:                512 * units.KiB,
		WALBytesPerSync:             0, // don't sync the WAL in the background
		MemTableStopWritesThreshold: 8,
		MaxOpenFiles:                1_024,
		ConcurrentCompactions:       1,
		Sync:                        false,
	}
}

// Database is a string-keyed store on top of pebble. Keys are stored as
// their raw bytes.
type Database struct {
	db      *pebble.DB
	metrics *metrics
	wOpts   *pebble.WriteOptions

	closed bool
	l      sync.RWMutex
}

// New opens the database at [file]. The returned gatherer reports its
// metrics without a namespace.
func New(file string, cfg Config) (*Database, prometheus.Gatherer, error) {
	registry, metrics, err := newMetrics()
	if err != nil {
		return nil, nil, err
	}
	d := &Database{
		metrics: metrics,
		wOpts:   pebble.NoSync,
	}
	if cfg.Sync {
		d.wOpts = pebble.Sync
	}

	cache := pebble.NewCache(cfg.CacheSize)
	defer cache.Unref()

	// These default settings are based on https://github.com/ethereum/go-ethereum/blob/master/ethdb/pebble/pebble.go
	opts := &pebble.Options{
		Cache:                       cache,
		BytesPerSync:                cfg.BytesPerSync,
		Comparer:                    pebble.DefaultComparer,
		WALBytesPerSync:             cfg.WALBytesPerSync,
		MemTableStopWritesThreshold: cfg.MemTableStopWritesThreshold,
		MaxOpenFiles:                cfg.MaxOpenFiles,
		MaxConcurrentCompactions:    func() int { return cfg.ConcurrentCompactions },
		Levels:                      make([]pebble.LevelOptions, 7),
		EventListener: &pebble.EventListener{
			CompactionBegin: d.onCompactionBegin,
			CompactionEnd:   d.onCompactionEnd,
			WriteStallBegin: d.onWriteStallBegin,
			WriteStallEnd:   d.onWriteStallEnd,
		},
	}
	for i := 0; i < len(opts.Levels); i++ {
		l := &opts.Levels[i]
		l.BlockSize = 32 * units.KiB
		l.IndexBlockSize = 256 * units.KiB
		l.FilterPolicy = bloom.FilterPolicy(10)
		l.FilterType = pebble.TableFilter
		if i > 0 {
			l.TargetFileSize = opts.Levels[i-1].TargetFileSize * 2
		}
		l.EnsureDefaults()
	}
	opts.Experimental.ReadSamplingMultiplier = -1 // explicitly disable seek compaction

	db, err := pebble.Open(file, opts)
	if err != nil {
		return nil, nil, err
	}
	d.db = db
	return d, &gatherer{db: d, registry: registry}, nil
}

func (db *Database) Close() error {
	db.l.Lock()
	defer db.l.Unlock()

	if db.closed {
		return database.ErrClosed
	}
	db.closed = true
	return db.db.Close()
}

func (db *Database) Has(key string) (bool, error) {
	_, err := db.Get(key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, database.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (db *Database) Get(key string) ([]byte, error) {
	db.l.RLock()
	defer db.l.RUnlock()

	if db.closed {
		return nil, database.ErrClosed
	}
	start := time.Now()
	data, closer, err := db.db.Get([]byte(key))
	db.metrics.getLatency.Observe(float64(time.Since(start)))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, database.ErrNotFound
		}
		return nil, err
	}
	defer closer.Close()
	return slices.Clone(data), nil
}

func (db *Database) Put(key string, value []byte) error {
	db.l.RLock()
	defer db.l.RUnlock()

	if db.closed {
		return database.ErrClosed
	}
	start := time.Now()
	err := db.db.Set([]byte(key), value, db.wOpts)
	db.metrics.putLatency.Observe(float64(time.Since(start)))
	return err
}

// Remove deletes [key]. Removing an absent key returns
// database.ErrNotFound.
func (db *Database) Remove(key string) error {
	has, err := db.Has(key)
	if err != nil {
		return err
	}
	if !has {
		return database.ErrNotFound
	}

	db.l.RLock()
	defer db.l.RUnlock()

	if db.closed {
		return database.ErrClosed
	}
	return db.db.Delete([]byte(key), db.wOpts)
}

// Keys returns every stored key in ascending order.
func (db *Database) Keys() ([]string, error) {
	db.l.RLock()
	defer db.l.RUnlock()

	if db.closed {
		return nil, database.ErrClosed
	}
	iter, err := db.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return nil, err
	}
	keys := []string{}
	for iter.First(); iter.Valid(); iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	if err := iter.Error(); err != nil {
		_ = iter.Close()
		return nil, err
	}
	return keys, iter.Close()
}
