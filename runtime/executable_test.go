// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"testing"

	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/yort/codec"
	"github.com/ava-labs/yort/consts"
)

func newTestRegistry(t *testing.T) *Registry {
	r := NewRegistry()
	require.NoError(t, r.RegisterLoader(testTypeKey, loadTestModule))
	return r
}

func TestExecutableRoundTrip(t *testing.T) {
	require := require.New(t)
	r := newTestRegistry(t)

	mods := []Module{
		&testModule{symbol: "a", payload: "first"},
		&testModule{symbol: "b", payload: ""},
	}
	b, err := SaveExecutable(mods, consts.MaxStreamSize)
	require.NoError(err)

	loaded, err := r.LoadExecutable(b, consts.MaxStreamSize)
	require.NoError(err)
	require.Equal(mods, loaded)
}

func TestExecutableEmpty(t *testing.T) {
	require := require.New(t)
	r := newTestRegistry(t)

	b, err := SaveExecutable(nil, consts.MaxStreamSize)
	require.NoError(err)

	loaded, err := r.LoadExecutable(b, consts.MaxStreamSize)
	require.NoError(err)
	require.Empty(loaded)
}

func TestSaveExecutableLimit(t *testing.T) {
	require := require.New(t)
	r := newTestRegistry(t)

	mods := []Module{&testModule{symbol: "a", payload: "0123456789"}}
	b, err := SaveExecutable(mods, consts.MaxStreamSize)
	require.NoError(err)

	_, err = SaveExecutable(mods, len(b)-1)
	require.ErrorIs(err, ErrTooLarge)

	// anything that saves under a limit loads back under it
	exact, err := SaveExecutable(mods, len(b))
	require.NoError(err)
	require.Equal(b, exact)
	loaded, err := r.LoadExecutable(exact, len(b))
	require.NoError(err)
	require.Equal(mods, loaded)
}

func TestExecutableLoadFailures(t *testing.T) {
	r := newTestRegistry(t)
	valid, err := SaveExecutable([]Module{
		&testModule{symbol: "a", payload: "first"},
		&testModule{symbol: "b", payload: "second"},
	}, consts.MaxStreamSize)
	require.NoError(t, err)

	unknown := codec.NewWriter(consts.DefaultStreamSize, consts.MaxInt)
	unknown.PackByte(ExecutableVersion)
	unknown.PackInt(1)
	unknown.PackString("Unknown")
	require.NoError(t, unknown.Err())

	tests := []struct {
		name        string
		bytes       []byte
		expectedErr error
	}{
		{
			name:        "empty",
			bytes:       nil,
			expectedErr: ErrCorruptExecutable,
		},
		{
			name:        "unsupported version",
			bytes:       append([]byte{ExecutableVersion + 1}, valid[1:]...),
			expectedErr: ErrUnsupportedVersion,
		},
		{
			name:        "unknown type key",
			bytes:       unknown.Bytes(),
			expectedErr: ErrUnknownTypeKey,
		},
		{
			name:        "truncated second module",
			bytes:       valid[:len(valid)-3],
			expectedErr: wrappers.ErrInsufficientLength,
		},
		{
			name:        "trailing bytes",
			bytes:       append(append([]byte{}, valid...), 0),
			expectedErr: ErrTrailingBytes,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			mods, err := r.LoadExecutable(tt.bytes, consts.MaxStreamSize)
			require.ErrorIs(err, tt.expectedErr)
			require.Nil(mods)
		})
	}
}
