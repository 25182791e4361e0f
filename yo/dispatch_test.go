// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package yo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/yort/device"
	"github.com/ava-labs/yort/runtime"
)

func TestGetSymbol(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	m := New("foo", "dev", nil, nil)

	f := m.GetFunction(runtime.GetSymbolFnName)
	require.NotNil(f)
	for i := 0; i < 3; i++ {
		v, err := f(ctx)
		require.NoError(err)
		require.Equal("foo", v)
	}

	// a fresh lookup answers the same
	v, err := m.GetFunction(runtime.GetSymbolFnName)(ctx)
	require.NoError(err)
	require.Equal("foo", v)
}

func TestGetConstVars(t *testing.T) {
	ctx := context.Background()
	for _, m := range []*Module{
		New("foo", "dev", nil, nil),
		New("", "", []byte("code"), []byte("cfg")),
		New(runtime.GetConstVarsFnName, "npu", nil, nil),
	} {
		require := require.New(t)
		f := m.GetFunction(runtime.GetConstVarsFnName)
		require.NotNil(f)
		v, err := f(ctx)
		require.NoError(err)
		require.IsType([]string{}, v)
		require.Empty(v)
	}
}

func TestInitArity(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	m := New("foo", "dev", nil, nil)

	f := m.GetFunction("__init_foo")
	require.NotNil(f)

	_, err := f(ctx)
	require.ErrorIs(err, ErrArityMismatch)
	_, err = f(ctx, 1, 2)
	require.ErrorIs(err, ErrArityMismatch)

	// a failed call leaves the module usable
	v, err := f(ctx, "params")
	require.NoError(err)
	require.Equal(InitSuccess, v)

	v, err = m.GetFunction(runtime.GetSymbolFnName)(ctx)
	require.NoError(err)
	require.Equal("foo", v)

	require.NoError(runtime.Init(ctx, m, nil))
}

func TestMainEntry(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	rt := device.NewMockRuntime(ctrl)
	m := New("foo", "npu", []byte("code"), []byte("cfg"), WithDevice(rt))

	rt.EXPECT().Execute(ctx, &device.Program{
		Name:       "foo",
		DeviceType: "npu",
		Code:       []byte("code"),
		Config:     []byte("cfg"),
	}).Return(nil).Times(2)

	f := m.GetFunction("foo")
	require.NotNil(f)
	v, err := f(ctx)
	require.NoError(err)
	require.Nil(v)

	require.NoError(runtime.Run(ctx, m))
}

func TestMainEntryDeviceError(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	errDevice := errors.New("device fault")
	rt := device.NewMockRuntime(ctrl)
	rt.EXPECT().Execute(ctx, gomock.Any()).Return(errDevice)

	m := New("foo", "npu", nil, nil, WithDevice(rt))
	_, err := m.GetFunction("foo")(ctx)
	require.ErrorIs(err, errDevice)
}

func TestMainEntryResolvesDevice(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	npu := device.NewMockRuntime(ctrl)
	fallback := device.NewMockRuntime(ctrl)
	devices := device.NewRegistry(fallback)
	require.NoError(devices.Register("npu", npu))

	npu.EXPECT().Execute(ctx, gomock.Any(), 1).Return(nil)
	fallback.EXPECT().Execute(ctx, gomock.Any()).Return(nil)

	_, err := New("foo", "npu", nil, nil, WithDevices(devices)).GetFunction("foo")(ctx, 1)
	require.NoError(err)
	_, err = New("bar", "gpu", nil, nil, WithDevices(devices)).GetFunction("bar")(ctx)
	require.NoError(err)
}

func TestMainEntryWithoutFallback(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	for _, devices := range []*device.Registry{device.NewRegistry(nil), nil} {
		m := New("foo", "npu", []byte("code"), nil, WithDevices(devices))
		require.NotPanics(func() {
			v, err := m.GetFunction("foo")(ctx)
			require.NoError(err)
			require.Nil(v)
		})
	}
}

func TestUnknownFunction(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	m := New("foo", "dev", nil, nil)

	for _, name := range []string{"bar", "", "__init_", "__init_bar", "foo ", "get_symbols", "FOO"} {
		require.Nil(m.GetFunction(name), name)
	}

	_, err := runtime.Call(ctx, m, "bar")
	require.ErrorIs(err, runtime.ErrCapabilityNotFound)
}

func TestDispatchPriority(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	// the module name never shadows get_symbol or get_const_vars
	rt := device.NewMockRuntime(ctrl)
	m := New(runtime.GetSymbolFnName, "npu", nil, nil, WithDevice(rt))
	v, err := m.GetFunction(runtime.GetSymbolFnName)(ctx)
	require.NoError(err)
	require.Equal(runtime.GetSymbolFnName, v)

	// the initializer is matched before the main entry
	m = New("", "npu", nil, nil, WithDevice(rt))
	_, err = m.GetFunction("__init_")(ctx)
	require.ErrorIs(err, ErrArityMismatch)

	// the empty name is the main entry of an unnamed module
	rt.EXPECT().Execute(ctx, gomock.Any()).Return(nil)
	_, err = m.GetFunction("")(ctx)
	require.NoError(err)
}

func TestConcurrentDispatch(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	m := New("foo", "dev", []byte("code"), nil)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < 16; i++ {
		g.Go(func() error {
			for j := 0; j < 64; j++ {
				v, err := m.GetFunction(runtime.GetSymbolFnName)(gctx)
				if err != nil {
					return err
				}
				if v != "foo" {
					return errors.New("unexpected symbol")
				}
				if _, err := m.GetFunction("__init_foo")(gctx, j); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(g.Wait())
}
