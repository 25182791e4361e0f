// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/ava-labs/yort/runtime"
	"github.com/ava-labs/yort/utils"
)

var runCmd = &cobra.Command{
	Use:   "run [key]",
	Short: "Initialize and run every module of a stored executable",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		k, err := keyArg(ctx, args)
		if err != nil {
			return err
		}
		if err := handler.Run(ctx, k, initArg, parallelism); err != nil {
			return err
		}
		utils.Outf("{{green}}ran executable:{{/}} %s\n", k)
		return nil
	},
}

var callCmd = &cobra.Command{
	Use:   "call [key] [function]",
	Short: "Look up a function by name on a stored module and invoke it",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 2 {
			return ErrInvalidArgs
		}
		fnArgs, err := parseArgs(callArgs)
		if err != nil {
			return err
		}
		v, err := handler.Call(cmd.Context(), args[0], moduleName, args[1], fnArgs)
		if errors.Is(err, runtime.ErrCapabilityNotFound) {
			utils.Outf("{{red}}function not found:{{/}} %s\n", args[1])
			return nil
		}
		if err != nil {
			return err
		}
		utils.Outf("{{green}}result:{{/}} %v\n", v)
		return nil
	},
}
