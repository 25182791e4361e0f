// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/yort/codec"
	"github.com/ava-labs/yort/consts"
)

func createTestModule(name string, _ string, code []byte, _ []byte) (Module, error) {
	return &testModule{symbol: name, payload: string(code)}, nil
}

func TestRegistryLoader(t *testing.T) {
	require := require.New(t)
	r := NewRegistry()

	_, ok := r.Loader(testTypeKey)
	require.False(ok)

	require.NoError(r.RegisterLoader(testTypeKey, loadTestModule))
	require.ErrorIs(r.RegisterLoader(testTypeKey, loadTestModule), codec.ErrDuplicateItem)
	require.ErrorIs(r.RegisterLoader("", loadTestModule), codec.ErrEmptyTag)
	require.ErrorIs(r.RegisterLoader("Other", nil), codec.ErrNilDecoder)

	_, ok = r.Loader(testTypeKey)
	require.True(ok)
	// only the type key is consulted, never the raw tag
	_, ok = r.Loader(LoaderTag(testTypeKey))
	require.False(ok)

	require.Equal([]string{testTypeKey}, r.TypeKeys())
}

func TestRegistryLoad(t *testing.T) {
	require := require.New(t)
	r := NewRegistry()
	require.NoError(r.RegisterLoader(testTypeKey, loadTestModule))

	wr := codec.NewWriter(consts.DefaultStreamSize, consts.MaxInt)
	(&testModule{symbol: "main", payload: "code"}).SaveToBinary(wr)
	require.NoError(wr.Err())

	m, err := r.Load(testTypeKey, codec.NewReader(wr.Bytes(), consts.MaxInt))
	require.NoError(err)
	require.Equal(&testModule{symbol: "main", payload: "code"}, m)

	_, err = r.Load("Unknown", codec.NewReader(wr.Bytes(), consts.MaxInt))
	require.ErrorIs(err, ErrUnknownTypeKey)
}

func TestRegistryCreator(t *testing.T) {
	require := require.New(t)
	r := NewRegistry()

	_, err := r.Create("test.create", "main", "dev", nil, nil)
	require.ErrorIs(err, ErrUnknownCreator)

	require.NoError(r.RegisterCreator("test.create", createTestModule))
	require.ErrorIs(r.RegisterCreator("test.create", createTestModule), codec.ErrDuplicateItem)
	require.Equal([]string{"test.create"}, r.Creators())

	m, err := r.Create("test.create", "main", "dev", []byte("code"), nil)
	require.NoError(err)
	require.Equal(testTypeKey, m.TypeKey())
	require.Equal(&testModule{symbol: "main", payload: "code"}, m)
}
