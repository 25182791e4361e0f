// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/yort/runtime"
	"github.com/ava-labs/yort/utils"
)

const (
	textFormat = "text"
	yamlFormat = "yaml"
	jsonFormat = "json"
)

// deviceModule is implemented by modules that carry device code.
type deviceModule interface {
	DeviceType() string
	DeviceDescriptor() string
	Code() []byte
	DeviceConfig() []byte
}

type ModuleInfo struct {
	Symbol           string   `yaml:"symbol" json:"symbol"`
	TypeKey          string   `yaml:"typeKey" json:"typeKey"`
	DeviceType       string   `yaml:"deviceType,omitempty" json:"deviceType,omitempty"`
	DeviceDescriptor string   `yaml:"deviceDescriptor,omitempty" json:"deviceDescriptor,omitempty"`
	CodeSize         int      `yaml:"codeSize" json:"codeSize"`
	DeviceConfig     string   `yaml:"deviceConfig,omitempty" json:"deviceConfig,omitempty"`
	ConstVars        []string `yaml:"constVars" json:"constVars"`
}

type ExecutableInfo struct {
	Key     string        `yaml:"key" json:"key"`
	ID      string        `yaml:"id" json:"id"`
	Modules []*ModuleInfo `yaml:"modules" json:"modules"`
}

func (h *Handler) Inspect(ctx context.Context, key string) (*ExecutableInfo, error) {
	mods, id, err := h.store.GetWithID(ctx, key)
	if err != nil {
		return nil, err
	}
	info := &ExecutableInfo{
		Key:     key,
		ID:      id.String(),
		Modules: make([]*ModuleInfo, 0, len(mods)),
	}
	for _, m := range mods {
		mi, err := inspectModule(ctx, m)
		if err != nil {
			return nil, err
		}
		info.Modules = append(info.Modules, mi)
	}
	return info, nil
}

func inspectModule(ctx context.Context, m runtime.Module) (*ModuleInfo, error) {
	symbol, err := runtime.Symbol(ctx, m)
	if err != nil {
		return nil, err
	}
	constVars, err := runtime.ConstVars(ctx, m)
	if err != nil {
		return nil, err
	}
	mi := &ModuleInfo{
		Symbol:    symbol,
		TypeKey:   m.TypeKey(),
		ConstVars: constVars,
	}
	if dm, ok := m.(deviceModule); ok {
		mi.DeviceType = dm.DeviceType()
		mi.DeviceDescriptor = dm.DeviceDescriptor()
		mi.CodeSize = len(dm.Code())
		mi.DeviceConfig = string(dm.DeviceConfig())
	}
	return mi, nil
}

func (e *ExecutableInfo) Format(format string) (string, error) {
	switch format {
	case textFormat:
		var b strings.Builder
		fmt.Fprintf(&b, "{{yellow}}key:{{/}} %s {{yellow}}id:{{/}} %s {{yellow}}modules:{{/}} %d\n", e.Key, e.ID, len(e.Modules))
		for i, m := range e.Modules {
			fmt.Fprintf(
				&b,
				"%d) {{cyan}}symbol:{{/}} %s {{cyan}}type:{{/}} %s {{cyan}}device:{{/}} %s (%s) {{cyan}}code:{{/}} %d bytes {{cyan}}config:{{/}} %q {{cyan}}consts:{{/}} %s\n",
				i, m.Symbol, m.TypeKey, m.DeviceType, m.DeviceDescriptor, m.CodeSize, m.DeviceConfig, strings.Join(m.ConstVars, ","),
			)
		}
		return b.String(), nil
	case yamlFormat:
		b, err := yaml.Marshal(e)
		return string(b), err
	case jsonFormat:
		b, err := json.MarshalIndent(e, "", "  ")
		return string(b) + "\n", err
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidFormat, format)
	}
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [key]",
	Short: "Describe the modules of a stored executable",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		k, err := keyArg(ctx, args)
		if err != nil {
			return err
		}
		info, err := handler.Inspect(ctx, k)
		if err != nil {
			return err
		}
		out, err := info.Format(outputFormat)
		if err != nil {
			return err
		}
		if outputFormat == textFormat {
			utils.Outf(out)
			return nil
		}
		fmt.Print(out)
		return nil
	},
}
