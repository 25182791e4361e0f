// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package filedb

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ava-labs/avalanchego/cache"
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/perms"
	"github.com/google/renameio/v2"

	"github.com/ava-labs/yort/lockmap"
)

// pendingDir holds values being written until they are renamed into place.
const pendingDir = ".pending"

var ErrInvalidKey = errors.New("invalid key")

// FileDB stores each value in its own file under [baseDir], named after its
// key. Recently used values are kept in a size-bounded LRU.
type FileDB struct {
	baseDir string
	sync    bool

	lm *lockmap.Lockmap

	fileCache cache.Cacher[string, []byte]
}

func New(baseDir string, sync bool, directoryCache int, dataCache int) *FileDB {
	return &FileDB{
		baseDir:   baseDir,
		sync:      sync,
		lm:        lockmap.New(directoryCache), // concurrent locks
		fileCache: cache.NewSizedLRU[string, []byte](dataCache, func(key string, value []byte) int { return len(key) + len(value) }),
	}
}

// Keys map directly to file names, so they must name a file inside baseDir.
func (f *FileDB) path(key string) (string, error) {
	if len(key) == 0 || key == "." || key == ".." || key == pendingDir || strings.ContainsAny(key, `/\`) || strings.ContainsRune(key, 0) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(f.baseDir, key), nil
}

func (f *FileDB) Put(key string, value []byte) error {
	filePath, err := f.path(key)
	if err != nil {
		return err
	}
	f.lm.Lock(filePath)
	defer f.lm.Unlock(filePath)

	// The previous value stays on disk until the new one is complete, but
	// the cached copy may no longer match it.
	if err := f.replace(filePath, value); err != nil {
		f.fileCache.Evict(filePath)
		return err
	}
	f.fileCache.Put(filePath, slices.Clone(value))
	return nil
}

// replace atomically swaps the file at [filePath] for one holding [value].
// Synced writes are flushed before the rename.
func (f *FileDB) replace(filePath string, value []byte) error {
	tmpDir := filepath.Join(f.baseDir, pendingDir)
	if err := os.MkdirAll(tmpDir, perms.ReadWriteExecute); err != nil {
		return fmt.Errorf("%w: unable to create pending directory", err)
	}
	if f.sync {
		if err := renameio.WriteFile(filePath, value, perms.ReadWrite, renameio.WithTempDir(tmpDir)); err != nil {
			return fmt.Errorf("%w: unable to write file", err)
		}
		return nil
	}

	file, err := os.CreateTemp(tmpDir, filepath.Base(filePath)+".*")
	if err != nil {
		return fmt.Errorf("%w: unable to create file", err)
	}
	defer os.Remove(file.Name()) // no-op once renamed

	if _, err := file.Write(value); err != nil {
		_ = file.Close()
		return fmt.Errorf("%w: unable to write to file", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("%w: unable to close file", err)
	}
	if err := os.Rename(file.Name(), filePath); err != nil {
		return fmt.Errorf("%w: unable to replace file", err)
	}
	return nil
}

func (f *FileDB) Get(key string) ([]byte, error) {
	filePath, err := f.path(key)
	if err != nil {
		return nil, err
	}
	f.lm.RLock(filePath)
	defer f.lm.RUnlock(filePath)

	if value, exists := f.fileCache.Get(filePath); exists {
		return slices.Clone(value), nil
	}

	value, err := os.ReadFile(filePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: unable to read from file", err)
	}
	f.fileCache.Put(filePath, value)
	return slices.Clone(value), nil
}

func (f *FileDB) Has(key string) (bool, error) {
	filePath, err := f.path(key)
	if err != nil {
		return false, err
	}
	f.lm.RLock(filePath)
	defer f.lm.RUnlock(filePath)

	if _, exists := f.fileCache.Get(filePath); exists {
		return true, nil
	}

	_, err = os.Stat(filePath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes [key]. Removing an absent key returns
// database.ErrNotFound.
func (f *FileDB) Remove(key string) error {
	filePath, err := f.path(key)
	if err != nil {
		return err
	}
	f.lm.Lock(filePath)
	defer f.lm.Unlock(filePath)

	f.fileCache.Evict(filePath)
	if err := os.Remove(filePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return database.ErrNotFound
		}
		return err
	}
	return nil
}

// Keys returns every stored key in ascending order.
func (f *FileDB) Keys() ([]string, error) {
	entries, err := os.ReadDir(f.baseDir)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() && e.Name() != pendingDir {
			keys = append(keys, e.Name())
		}
	}
	return keys, nil
}

func (f *FileDB) Close() error {
	f.fileCache.Flush()
	return nil
}
