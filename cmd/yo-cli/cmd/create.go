// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ava-labs/yort/codec"
	"github.com/ava-labs/yort/config"
	"github.com/ava-labs/yort/utils"
)

var createCmd = &cobra.Command{
	Use:   "create [name] [code file]",
	Short: "Package compiled device code as a stored executable",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 2 {
			return ErrInvalidArgs
		}
		name := args[0]
		code, err := utils.LoadBytes(args[1], handler.cfg.MaxStreamSize)
		if err != nil {
			return err
		}
		if codeHex {
			code, err = codec.LoadHex(strings.TrimSpace(string(code)), -1)
			if err != nil {
				return err
			}
		}
		var deviceConfig []byte
		if len(deviceConfigFile) > 0 {
			deviceConfig, err = utils.LoadBytes(deviceConfigFile, handler.cfg.MaxStreamSize)
			if err != nil {
				return err
			}
		}
		pc, err := config.ParsePassConfigArgs(passConfig)
		if err != nil {
			return err
		}
		k := key
		if len(k) == 0 {
			k = name
		}
		id, err := handler.Create(cmd.Context(), k, name, code, deviceType, deviceConfig, pc, appendModule)
		if err != nil {
			return err
		}
		utils.Outf("{{green}}stored executable:{{/}} %s {{green}}id:{{/}} %s\n", k, id)
		return nil
	},
}
