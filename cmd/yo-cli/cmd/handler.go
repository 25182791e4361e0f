// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/ava-labs/avalanchego/api/metrics"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/mattn/go-shellwords"
	"github.com/neilotoole/errgroup"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ava-labs/yort/config"
	"github.com/ava-labs/yort/consts"
	"github.com/ava-labs/yort/device"
	"github.com/ava-labs/yort/device/wasm"
	"github.com/ava-labs/yort/runtime"
	"github.com/ava-labs/yort/store"
	"github.com/ava-labs/yort/yo"
)

// Handler owns everything a command needs: the store, the module registry
// and the device runtimes modules execute on.
type Handler struct {
	cfg      *config.Config
	log      logging.Logger
	tracer   trace.Tracer
	devices  *device.Registry
	registry *runtime.Registry
	store    *store.Store
	gatherer metrics.MultiGatherer
}

// NewHandler wires the handler from [cfg]. Device and store metrics are
// gathered under the "yort" prefix and the backend's under its name.
func NewHandler(cfg *config.Config, logDir string) (*Handler, error) {
	log := newLogger(cfg.LogLevel, logDir)
	traceConfig, err := cfg.TraceConfig()
	if err != nil {
		return nil, err
	}
	tracer, err := trace.New(traceConfig)
	if err != nil {
		return nil, err
	}
	gatherer := metrics.NewPrefixGatherer()
	reg, err := metrics.MakeAndRegister(gatherer, consts.Name)
	if err != nil {
		return nil, err
	}
	deviceMetrics, err := device.NewMetrics(reg)
	if err != nil {
		return nil, err
	}

	logRuntime := device.WithMetrics(device.NewLogRuntime(log), deviceMetrics)
	devices := device.NewRegistry(logRuntime)
	errs := wrappers.Errs{}
	errs.Add(
		devices.Register(device.DevDeviceType, logRuntime),
		devices.Register(wasm.DeviceType, device.WithMetrics(wasm.New(log, cfg.Wasm), deviceMetrics)),
	)
	if errs.Errored() {
		return nil, errs.Err
	}

	registry := runtime.NewRegistry()
	if err := yo.Register(registry, yo.WithLogger(log), yo.WithDevices(devices)); err != nil {
		return nil, err
	}

	backend, backendGatherer, err := store.OpenBackend(cfg)
	if err != nil {
		return nil, err
	}
	if err := gatherer.Register(cfg.StoreBackend, backendGatherer); err != nil {
		_ = backend.Close()
		return nil, err
	}
	s, err := store.New(log, tracer, backend, registry, cfg.MaxStreamSize, reg)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	return &Handler{
		cfg:      cfg,
		log:      log,
		tracer:   tracer,
		devices:  devices,
		registry: registry,
		store:    s,
		gatherer: gatherer,
	}, nil
}

func (h *Handler) Gatherer() prometheus.Gatherer {
	return h.gatherer
}

// WriteMetrics dumps every gathered metric to [filename] in the prometheus
// text format.
func (h *Handler) WriteMetrics(filename string) error {
	if err := prometheus.WriteToTextfile(filename, h.gatherer); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	h.log.Debug("wrote metrics", zap.String("file", filename))
	return nil
}

// Create packages [code] as a module named [name] and stores it under
// [key]. An explicit [deviceType] wins over the pass config target, which
// wins over the configured default.
func (h *Handler) Create(
	ctx context.Context,
	key string,
	name string,
	code []byte,
	deviceType string,
	deviceConfig []byte,
	passConfig map[string]string,
	appendModule bool,
) (ids.ID, error) {
	opts, err := config.ParsePassConfig(passConfig)
	if err != nil {
		return ids.Empty, err
	}
	if len(deviceType) == 0 {
		deviceType = opts.DeviceType(h.cfg.DefaultDeviceType)
	}
	m, err := h.registry.Create(yo.CreateFnName, name, deviceType, code, deviceConfig)
	if err != nil {
		return ids.Empty, err
	}

	mods := []runtime.Module{m}
	if appendModule {
		existing, err := h.store.Get(ctx, key)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return ids.Empty, err
		}
		mods = append(existing, m)
	}
	return h.store.Put(ctx, key, mods)
}

// Run initializes then runs every module stored under [key], at most
// [parallelism] at a time.
func (h *Handler) Run(ctx context.Context, key string, initArg int64, parallelism int) error {
	mods, err := h.store.Get(ctx, key)
	if err != nil {
		return err
	}
	g, gctx := errgroup.WithContextN(ctx, parallelism, len(mods))
	for i, m := range mods {
		i, m := i, m
		g.Go(func() error {
			if err := runtime.Init(gctx, m, initArg); err != nil {
				return fmt.Errorf("failed to init module %d: %w", i, err)
			}
			if err := runtime.Run(gctx, m); err != nil {
				return fmt.Errorf("failed to run module %d: %w", i, err)
			}
			h.log.Debug("ran module", zap.String("key", key), zap.Int("index", i))
			return nil
		})
	}
	return g.Wait()
}

// Call invokes [function] on the module of [key] whose symbol is [symbol],
// or on the first module when [symbol] is empty.
func (h *Handler) Call(ctx context.Context, key string, symbol string, function string, args []any) (any, error) {
	mods, err := h.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	m, err := findModule(ctx, mods, symbol)
	if err != nil {
		return nil, err
	}
	return runtime.Call(ctx, m, function, args...)
}

func findModule(ctx context.Context, mods []runtime.Module, symbol string) (runtime.Module, error) {
	if len(mods) == 0 {
		return nil, ErrModuleNotFound
	}
	if len(symbol) == 0 {
		return mods[0], nil
	}
	for _, m := range mods {
		s, err := runtime.Symbol(ctx, m)
		if err != nil {
			return nil, err
		}
		if s == symbol {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, symbol)
}

func (h *Handler) Keys(ctx context.Context) ([]string, error) {
	return h.store.Keys(ctx)
}

func (h *Handler) Remove(ctx context.Context, key string) error {
	return h.store.Remove(ctx, key)
}

func (h *Handler) Close() error {
	errs := wrappers.Errs{}
	errs.Add(
		h.store.Close(),
		h.tracer.Close(),
	)
	h.log.Stop()
	return errs.Err
}

// parseArgs splits [s] like a shell would. Integer words are passed as
// int64, everything else as a string.
func parseArgs(s string) ([]any, error) {
	words, err := shellwords.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgs, err)
	}
	args := make([]any, len(words))
	for i, w := range words {
		if n, err := strconv.ParseInt(w, 10, 64); err == nil {
			args[i] = n
			continue
		}
		args[i] = w
	}
	return args, nil
}
