// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package device

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestWithMetrics(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	m, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(err)

	errDevice := errors.New("device fault")
	p := &Program{Name: "main", DeviceType: "npu"}
	inner := NewMockRuntime(ctrl)
	gomock.InOrder(
		inner.EXPECT().Execute(ctx, p, 1).Return(nil),
		inner.EXPECT().Execute(ctx, p).Return(errDevice),
	)

	rt := WithMetrics(inner, m)
	require.NoError(rt.Execute(ctx, p, 1))
	require.ErrorIs(rt.Execute(ctx, p), errDevice)

	require.Equal(2.0, testutil.ToFloat64(m.executions))
	require.Equal(1.0, testutil.ToFloat64(m.executionFailures))
}

func TestNewMetricsDuplicate(t *testing.T) {
	require := require.New(t)

	r := prometheus.NewRegistry()
	_, err := NewMetrics(r)
	require.NoError(err)
	_, err = NewMetrics(r)
	require.Error(err)
}
