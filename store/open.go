// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package store

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/yort/config"
	"github.com/ava-labs/yort/filedb"
	"github.com/ava-labs/yort/pebble"
	"github.com/ava-labs/yort/utils"
)

var (
	_ Backend = (*filedb.FileDB)(nil)
	_ Backend = (*pebble.Database)(nil)
)

const (
	fileDBDir = "executables"
	pebbleDir = "db"
)

// OpenBackend opens the backend selected by [cfg] under cfg.StorePath.
// The pebble backend also returns its metrics gatherer.
func OpenBackend(cfg *config.Config) (Backend, prometheus.Gatherer, error) {
	switch cfg.StoreBackend {
	case config.FileDBBackend:
		dir, err := utils.InitSubDirectory(cfg.StorePath, fileDBDir)
		if err != nil {
			return nil, nil, err
		}
		return filedb.New(dir, cfg.StoreSync, 16, cfg.FileCacheSize), prometheus.NewRegistry(), nil
	case config.PebbleBackend:
		dir, err := utils.InitSubDirectory(cfg.StorePath, pebbleDir)
		if err != nil {
			return nil, nil, err
		}
		pcfg := pebble.NewDefaultConfig()
		pcfg.Sync = cfg.StoreSync
		db, gatherer, err := pebble.New(dir, pcfg)
		if err != nil {
			return nil, nil, err
		}
		return db, gatherer, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.StoreBackend)
	}
}
