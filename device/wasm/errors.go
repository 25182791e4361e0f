// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wasm

import (
	"errors"
	"fmt"

	"github.com/bytecodealliance/wasmtime-go/v14"
)

var (
	ErrInvalidCode       = errors.New("invalid wasm code")
	ErrInvalidConfig     = errors.New("invalid wasm config")
	ErrMissingEntry      = errors.New("failed to find exported entry")
	ErrInvalidParamCount = errors.New("invalid param count")
	ErrInvalidParamType  = errors.New("invalid param type")
	ErrOverflow          = errors.New("overflow")

	// Trap errors
	ErrTrapStackOverflow          = errors.New("the current stack space was exhausted")
	ErrTrapMemoryOutOfBounds      = errors.New("out-of-bounds memory access")
	ErrTrapIntegerDivisionByZero  = errors.New("an integer divide-by-zero was executed")
	ErrTrapUnreachableCodeReached = errors.New("code that was supposed to have been unreachable was reached")
	ErrTrapInterrupt              = errors.New("an interrupt was received")
	ErrOutOfFuel                  = errors.New("the program ran out of fuel")
)

// handleTrapError maps a wasmtime trap to one of the trap errors above.
func handleTrapError(err error) error {
	var trap *wasmtime.Trap
	if !errors.As(err, &trap) {
		return err
	}
	code := trap.Code()
	if code == nil {
		return fmt.Errorf("trap: %s", trap.Message())
	}
	switch *code {
	case wasmtime.StackOverflow:
		return ErrTrapStackOverflow
	case wasmtime.MemoryOutOfBounds:
		return ErrTrapMemoryOutOfBounds
	case wasmtime.IntegerDivisionByZero:
		return ErrTrapIntegerDivisionByZero
	case wasmtime.UnreachableCodeReached:
		return ErrTrapUnreachableCodeReached
	case wasmtime.Interrupt:
		return ErrTrapInterrupt
	case wasmtime.OutOfFuel:
		return ErrOutOfFuel
	default:
		return fmt.Errorf("unknown runtime engine trap (%d): %s", *code, trap.Message())
	}
}
