// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

const (
	// GetSymbolFnName returns the symbol (entry point name) of a module.
	GetSymbolFnName = "get_symbol"
	// GetConstVarsFnName returns the names of the constants a module owns.
	GetConstVarsFnName = "get_const_vars"
	// InitFnPrefix prefixes the symbol to form the name of the one-time
	// initializer.
	InitFnPrefix = "__init_"

	// LoaderPrefix prefixes a module type key to form its loader tag.
	LoaderPrefix = "runtime.module.loadbinary_"

	// ExecutableVersion is the version byte written at the head of every
	// persisted executable.
	ExecutableVersion uint8 = 0
)

// LoaderTag returns the registry tag under which the loader for [typeKey]
// is registered.
func LoaderTag(typeKey string) string {
	return LoaderPrefix + typeKey
}

// InitFnName returns the name of the initializer of the module exporting
// [symbol].
func InitFnName(symbol string) string {
	return InitFnPrefix + symbol
}
