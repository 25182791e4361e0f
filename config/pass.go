// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// PassConfigKey is the compiler pass option selecting the Yo backend.
	PassConfigKey = "relay.ext.yo.options"
	// TargetKey addresses the target sub-option directly.
	TargetKey = PassConfigKey + ".target"
)

// CompilerOptions are the Yo backend options exposed to the compiler front
// end.
type CompilerOptions struct {
	// Target is the device type the compiled module is built for.
	Target string `json:"target"`
}

// ParsePassConfig extracts the Yo options from a compiler pass config.
// [PassConfigKey] may hold a JSON object; [TargetKey] overrides its target.
// Unrelated keys are ignored.
func ParsePassConfig(passConfig map[string]string) (*CompilerOptions, error) {
	opts := &CompilerOptions{}
	if raw := strings.TrimSpace(passConfig[PassConfigKey]); len(raw) > 0 {
		if err := json.Unmarshal([]byte(raw), opts); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPassConfig, PassConfigKey, err)
		}
	}
	if target, ok := passConfig[TargetKey]; ok {
		opts.Target = target
	}
	return opts, nil
}

// ParsePassConfigArgs parses "key=value" pairs as given on a command line.
func ParsePassConfigArgs(args []string) (map[string]string, error) {
	passConfig := make(map[string]string, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || len(k) == 0 {
			return nil, fmt.Errorf("%w: %q is not key=value", ErrInvalidPassConfig, arg)
		}
		passConfig[k] = v
	}
	return passConfig, nil
}

// DeviceType returns the target, falling back to [defaultDeviceType].
func (o *CompilerOptions) DeviceType(defaultDeviceType string) string {
	if len(o.Target) == 0 {
		return defaultDeviceType
	}
	return o.Target
}
