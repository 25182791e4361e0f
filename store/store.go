// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package store

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ava-labs/yort/runtime"
	"github.com/ava-labs/yort/utils"

	oteltrace "go.opentelemetry.io/otel/trace"
)

var (
	ErrNotFound = database.ErrNotFound
	ErrTooLarge = runtime.ErrTooLarge
)

// Backend persists executables by key. Implementations must be safe for
// concurrent use and report absent keys as database.ErrNotFound.
type Backend interface {
	Put(key string, value []byte) error
	Get(key string) ([]byte, error)
	Has(key string) (bool, error)
	Remove(key string) error
	Keys() ([]string, error)
	Close() error
}

// Store persists executables and restores them through a module registry.
type Store struct {
	log      logging.Logger
	tracer   trace.Tracer
	backend  Backend
	registry *runtime.Registry
	maxSize  int
	metrics  *metrics
}

func New(
	log logging.Logger,
	tracer trace.Tracer,
	backend Backend,
	registry *runtime.Registry,
	maxSize int,
	r prometheus.Registerer,
) (*Store, error) {
	m, err := newMetrics(r)
	if err != nil {
		return nil, err
	}
	return &Store{
		log:      log,
		tracer:   tracer,
		backend:  backend,
		registry: registry,
		maxSize:  maxSize,
		metrics:  m,
	}, nil
}

// Put saves [mods] as one executable under [key], replacing any executable
// already stored there. It returns the ID of the stored bytes.
func (s *Store) Put(ctx context.Context, key string, mods []runtime.Module) (ids.ID, error) {
	_, span := s.tracer.Start(ctx, "Store.Put", oteltrace.WithAttributes(
		attribute.String("key", key),
		attribute.Int("modules", len(mods)),
	))
	defer span.End()

	b, err := runtime.SaveExecutable(mods, s.maxSize)
	if err != nil {
		return ids.Empty, err
	}
	if err := s.backend.Put(key, b); err != nil {
		return ids.Empty, err
	}
	id := utils.ToID(b)
	s.metrics.saves.Inc()
	s.metrics.bytesWritten.Add(float64(len(b)))
	s.log.Debug("stored executable",
		zap.String("key", key),
		zap.Stringer("id", id),
		zap.Int("modules", len(mods)),
		zap.Int("size", len(b)),
	)
	return id, nil
}

// Get restores every module of the executable stored under [key].
func (s *Store) Get(ctx context.Context, key string) ([]runtime.Module, error) {
	mods, _, err := s.GetWithID(ctx, key)
	return mods, err
}

// GetWithID is Get, also returning the ID of the stored bytes.
func (s *Store) GetWithID(ctx context.Context, key string) ([]runtime.Module, ids.ID, error) {
	_, span := s.tracer.Start(ctx, "Store.Get", oteltrace.WithAttributes(
		attribute.String("key", key),
	))
	defer span.End()

	b, err := s.backend.Get(key)
	if err != nil {
		return nil, ids.Empty, err
	}
	mods, err := s.registry.LoadExecutable(b, s.maxSize)
	if err != nil {
		s.metrics.loadFailures.Inc()
		s.log.Warn("failed to load executable",
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, ids.Empty, fmt.Errorf("failed to load %s: %w", key, err)
	}
	s.metrics.loads.Inc()
	return mods, utils.ToID(b), nil
}

func (s *Store) Has(ctx context.Context, key string) (bool, error) {
	_, span := s.tracer.Start(ctx, "Store.Has")
	defer span.End()

	return s.backend.Has(key)
}

func (s *Store) Remove(ctx context.Context, key string) error {
	_, span := s.tracer.Start(ctx, "Store.Remove")
	defer span.End()

	if err := s.backend.Remove(key); err != nil {
		return err
	}
	s.log.Debug("removed executable", zap.String("key", key))
	return nil
}

// Keys lists stored executables in ascending order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	_, span := s.tracer.Start(ctx, "Store.Keys")
	defer span.End()

	return s.backend.Keys()
}

func (s *Store) Close() error {
	return s.backend.Close()
}
