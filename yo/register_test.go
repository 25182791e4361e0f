// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package yo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/yort/codec"
	"github.com/ava-labs/yort/consts"
	"github.com/ava-labs/yort/runtime"
)

func TestRegister(t *testing.T) {
	require := require.New(t)

	r := runtime.NewRegistry()
	require.NoError(Register(r))
	require.ErrorIs(Register(r), codec.ErrDuplicateItem)

	require.Equal([]string{TypeKey}, r.TypeKeys())
	require.Equal([]string{CreateFnName}, r.Creators())
	require.Equal("runtime.module.loadbinary_Yo", runtime.LoaderTag(TypeKey))
}

func TestDefaultRegistration(t *testing.T) {
	require := require.New(t)

	_, ok := runtime.DefaultRegistry.Loader(TypeKey)
	require.True(ok)
	_, ok = runtime.DefaultRegistry.Creator(CreateFnName)
	require.True(ok)
}

func TestCreateAndLoadAreInterchangeable(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	created, err := CreateRuntimeModule("dev", []byte("dummy code"), []byte("dev_cfg"), "")
	require.NoError(err)
	require.Equal(TypeKey, created.TypeKey())

	symbol, err := runtime.Symbol(ctx, created)
	require.NoError(err)
	require.Equal(DefaultSymbol, symbol)

	b, err := runtime.SaveExecutable([]runtime.Module{created}, consts.MaxStreamSize)
	require.NoError(err)
	mods, err := runtime.LoadExecutable(b)
	require.NoError(err)
	require.Len(mods, 1)

	loaded, ok := mods[0].(*Module)
	require.True(ok)
	require.True(created.(*Module).Equal(loaded))
	require.Equal(DeviceDescriptor, loaded.DeviceDescriptor())

	vars, err := runtime.ConstVars(ctx, loaded)
	require.NoError(err)
	require.Empty(vars)
	require.NoError(runtime.Init(ctx, loaded, "params"))
	require.NoError(runtime.Run(ctx, loaded))
}

func TestLoadExecutableCorruptModule(t *testing.T) {
	require := require.New(t)

	b, err := runtime.SaveExecutable([]runtime.Module{
		New("a", "dev", []byte("code"), nil),
		New("b", "dev", []byte("code"), nil),
	}, consts.MaxStreamSize)
	require.NoError(err)

	mods, err := runtime.DefaultRegistry.LoadExecutable(b[:len(b)-2], consts.MaxStreamSize)
	require.ErrorIs(err, ErrCorruptStream)
	require.Nil(mods)
}
