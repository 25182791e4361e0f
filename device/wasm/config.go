// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wasm

import (
	"encoding/json"
	"fmt"

	"github.com/ava-labs/avalanchego/utils/units"
)

const (
	DefaultMaxWasmStack   = 256 * units.MiB
	DefaultLimitMaxMemory = int64(18 * 64 * units.KiB) // 18 pages
	DefaultMaxFuel        = uint64(10_000_000)
)

// Config is the device configuration of a wasm program. It is carried
// opaquely by the module and only decoded here.
type Config struct {
	// Entry is the exported function to call. Defaults to the program
	// name.
	Entry string `json:"entry"`

	// MaxFuel bounds the units a single execution may consume.
	MaxFuel uint64 `json:"maxFuel"`

	// LimitMaxMemory is the maximum linear memory (in bytes) available to
	// an instance.
	LimitMaxMemory int64 `json:"limitMaxMemory"`
}

// NewConfig returns a Config with default settings.
func NewConfig() *Config {
	return &Config{
		MaxFuel:        DefaultMaxFuel,
		LimitMaxMemory: DefaultLimitMaxMemory,
	}
}

// ParseConfig overlays [b] on [defaults]. An empty [b] yields a copy of
// [defaults].
func ParseConfig(b []byte, defaults *Config) (*Config, error) {
	c := *defaults
	if len(b) > 0 {
		if err := json.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	if c.MaxFuel == 0 {
		c.MaxFuel = defaults.MaxFuel
	}
	if c.LimitMaxMemory <= 0 {
		c.LimitMaxMemory = defaults.LimitMaxMemory
	}
	return &c, nil
}
