// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"fmt"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/units"

	"github.com/ava-labs/yort/consts"
	"github.com/ava-labs/yort/device"
	"github.com/ava-labs/yort/device/wasm"
)

const (
	FileDBBackend = "filedb"
	PebbleBackend = "pebble"

	defaultStorePath     = ".yort"
	defaultFileCacheSize = 64 * units.MiB
)

type Config struct {
	LogLevel          logging.Level `json:"logLevel"`
	StoreBackend      string        `json:"storeBackend"`
	StorePath         string        `json:"storePath"`
	StoreSync         bool          `json:"storeSync"`
	FileCacheSize     int           `json:"fileCacheSize"` // bytes of executables kept in memory by filedb
	DefaultDeviceType string        `json:"defaultDeviceType"`
	MaxStreamSize     int           `json:"maxStreamSize"`
	Trace             *TraceConfig  `json:"trace"`
	Wasm              *wasm.Config  `json:"wasm"`
}

func NewConfig() *Config {
	return &Config{
		LogLevel:          logging.Info,
		StoreBackend:      FileDBBackend,
		StorePath:         defaultStorePath,
		FileCacheSize:     defaultFileCacheSize,
		DefaultDeviceType: device.DevDeviceType,
		MaxStreamSize:     consts.MaxStreamSize,
		Trace:             NewTraceConfig(),
		Wasm:              wasm.NewConfig(),
	}
}

// New overlays the JSON document [b] on the default config.
func New(b []byte) (*Config, error) {
	c := NewConfig()
	if len(b) > 0 {
		if err := json.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config %s: %w", string(b), err)
		}
	}
	return c, c.verify()
}

func (c *Config) verify() error {
	switch c.StoreBackend {
	case FileDBBackend, PebbleBackend:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.StoreBackend)
	}
	if c.MaxStreamSize <= 0 || c.MaxStreamSize > consts.MaxStreamSize {
		return fmt.Errorf("%w: %d", ErrInvalidStreamSize, c.MaxStreamSize)
	}
	if c.Trace == nil {
		c.Trace = NewTraceConfig()
	}
	if c.Wasm == nil {
		c.Wasm = wasm.NewConfig()
	}
	_, err := c.TraceConfig()
	return err
}
