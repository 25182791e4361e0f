// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"context"
	"errors"

	"github.com/ava-labs/yort/codec"
)

const testTypeKey = "Test"

var (
	_ Module = (*testModule)(nil)

	errTestRun = errors.New("test run")
)

// testModule exports its symbol, a symbol-named entry that records its
// arguments and an initializer only when [withInit] is set.
type testModule struct {
	symbol   string
	payload  string
	withInit bool

	ran  [][]any
	init []any
}

func (*testModule) TypeKey() string { return testTypeKey }

func (m *testModule) GetFunction(name string) PackedFunc {
	switch {
	case name == GetSymbolFnName:
		return func(context.Context, ...any) (any, error) { return m.symbol, nil }
	case m.withInit && name == InitFnName(m.symbol):
		return func(_ context.Context, args ...any) (any, error) {
			m.init = args
			return 0, nil
		}
	case name == m.symbol:
		return func(_ context.Context, args ...any) (any, error) {
			m.ran = append(m.ran, args)
			if m.payload == "fail" {
				return nil, errTestRun
			}
			return nil, nil
		}
	default:
		return nil
	}
}

func (m *testModule) SaveToBinary(p *codec.Packer) {
	p.PackString(m.symbol)
	p.PackString(m.payload)
}

func loadTestModule(p *codec.Packer) (Module, error) {
	m := &testModule{
		symbol:  p.UnpackString(true),
		payload: p.UnpackString(false),
	}
	return m, p.Err()
}
