// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"context"
	"fmt"
)

// Call looks up [name] on [m] and invokes it. Unlike GetFunction, an absent
// function is reported as ErrCapabilityNotFound.
func Call(ctx context.Context, m Module, name string, args ...any) (any, error) {
	f := m.GetFunction(name)
	if f == nil {
		return nil, fmt.Errorf("%w: %s", ErrCapabilityNotFound, name)
	}
	return f(ctx, args...)
}

// Symbol returns the entry point name of [m].
func Symbol(ctx context.Context, m Module) (string, error) {
	v, err := Call(ctx, m, GetSymbolFnName)
	if err != nil {
		return "", err
	}
	symbol, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s returned %T", ErrInvalidReturn, GetSymbolFnName, v)
	}
	return symbol, nil
}

// ConstVars returns the names of the constants owned by [m]. Modules that do
// not export GetConstVarsFnName own none.
func ConstVars(ctx context.Context, m Module) ([]string, error) {
	f := m.GetFunction(GetConstVarsFnName)
	if f == nil {
		return nil, nil
	}
	v, err := f(ctx)
	if err != nil {
		return nil, err
	}
	vars, ok := v.([]string)
	if !ok {
		return nil, fmt.Errorf("%w: %s returned %T", ErrInvalidReturn, GetConstVarsFnName, v)
	}
	return vars, nil
}

// Init runs the one-time initializer of [m] with [arg], if the module
// exports one.
func Init(ctx context.Context, m Module, arg any) error {
	symbol, err := Symbol(ctx, m)
	if err != nil {
		return err
	}
	f := m.GetFunction(InitFnName(symbol))
	if f == nil {
		return nil
	}
	_, err = f(ctx, arg)
	return err
}

// Run invokes the main execution entry of [m].
func Run(ctx context.Context, m Module, args ...any) error {
	symbol, err := Symbol(ctx, m)
	if err != nil {
		return err
	}
	_, err = Call(ctx, m, symbol, args...)
	return err
}
