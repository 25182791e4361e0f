// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wasm

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/bytecodealliance/wasmtime-go/v14"
	"go.uber.org/zap"

	"github.com/ava-labs/yort/device"
)

// DeviceType is the device type served by this runtime.
const DeviceType = "wasm"

var _ device.Runtime = (*Runtime)(nil)

// Runtime executes program code as a WebAssembly module. Compiled modules
// are cached by code digest; every execution gets its own store, so a
// Runtime is safe for concurrent use.
type Runtime struct {
	log    logging.Logger
	cfg    *Config
	engine *wasmtime.Engine

	l       sync.Mutex
	modules map[ids.ID]*wasmtime.Module
}

// New returns a Runtime that applies [cfg] to programs whose device
// configuration leaves a setting unset.
func New(log logging.Logger, cfg *Config) *Runtime {
	return &Runtime{
		log:     log,
		cfg:     cfg,
		engine:  wasmtime.NewEngineWithConfig(defaultWasmtimeConfig()),
		modules: map[ids.ID]*wasmtime.Module{},
	}
}

// non-configurable defaults
func defaultWasmtimeConfig() *wasmtime.Config {
	cfg := wasmtime.NewConfig()
	cfg.SetConsumeFuel(true)
	cfg.SetMaxWasmStack(DefaultMaxWasmStack)
	cfg.SetWasmThreads(false)
	cfg.SetWasmMultiMemory(false)
	cfg.SetWasmMemory64(false)
	cfg.SetStrategy(wasmtime.StrategyCranelift)
	cfg.SetCraneliftOptLevel(wasmtime.OptLevelSpeed)
	cfg.SetCraneliftFlag("enable_nan_canonicalization", "true")
	return cfg
}

func (r *Runtime) Execute(ctx context.Context, p *device.Program, args ...any) error {
	cfg, err := ParseConfig(p.Config, r.cfg)
	if err != nil {
		return err
	}
	entry := cfg.Entry
	if len(entry) == 0 {
		entry = p.Name
	}

	mod, err := r.compile(p.Code)
	if err != nil {
		return err
	}

	store := wasmtime.NewStore(r.engine)
	store.Limiter(cfg.LimitMaxMemory, -1, 1, 1, 1)
	if err := store.AddFuel(cfg.MaxFuel); err != nil {
		return err
	}

	inst, err := wasmtime.NewInstance(store, mod, []wasmtime.AsExtern{})
	if err != nil {
		return fmt.Errorf("failed to instantiate %s: %w", p.Name, handleTrapError(err))
	}
	fn := inst.GetFunc(store, entry)
	if fn == nil {
		return fmt.Errorf("%w: %s", ErrMissingEntry, entry)
	}
	params, err := mapFunctionParams(args, fn.Type(store).Params())
	if err != nil {
		return fmt.Errorf("%w for function %s", err, entry)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	result, err := fn.Call(store, params...)
	consumed, _ := store.FuelConsumed()
	if err != nil {
		r.log.Debug("program trapped",
			zap.String("program", p.Name),
			zap.String("entry", entry),
			zap.Uint64("fuel", consumed),
			zap.Error(err),
		)
		return handleTrapError(err)
	}
	r.log.Debug("executed program",
		zap.String("program", p.Name),
		zap.String("entry", entry),
		zap.Uint64("fuel", consumed),
		zap.Any("result", result),
	)
	return nil
}

// Compiled returns the number of cached compiled modules.
func (r *Runtime) Compiled() int {
	r.l.Lock()
	defer r.l.Unlock()

	return len(r.modules)
}

func (r *Runtime) compile(code []byte) (*wasmtime.Module, error) {
	id := ids.ID(hashing.ComputeHash256Array(code))

	r.l.Lock()
	defer r.l.Unlock()

	if mod, ok := r.modules[id]; ok {
		return mod, nil
	}
	mod, err := wasmtime.NewModule(r.engine, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCode, err)
	}
	r.modules[id] = mod
	return mod, nil
}

// mapFunctionParams maps call input to the expected wasm function params.
func mapFunctionParams(input []any, values []*wasmtime.ValType) ([]interface{}, error) {
	if len(input) != len(values) {
		return nil, fmt.Errorf("%w: %d expected: %d", ErrInvalidParamCount, len(input), len(values))
	}
	params := make([]interface{}, len(values))
	for i, v := range values {
		n, err := toInt64(input[i])
		if err != nil {
			return nil, err
		}
		switch v.Kind() {
		case wasmtime.KindI32:
			if n < math.MinInt32 || n > math.MaxInt32 {
				return nil, fmt.Errorf("%w: %d", ErrOverflow, n)
			}
			params[i] = int32(n)
		case wasmtime.KindI64:
			params[i] = n
		default:
			return nil, fmt.Errorf("%w: %v", ErrInvalidParamType, v.Kind())
		}
	}
	return params, nil
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint32:
		return int64(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d", ErrOverflow, n)
		}
		return int64(n), nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrInvalidParamType, v)
	}
}
