// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ava-labs/yort/utils"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored executables",
	RunE: func(cmd *cobra.Command, _ []string) error {
		keys, err := handler.Keys(cmd.Context())
		if err != nil {
			return err
		}
		for i, k := range keys {
			utils.Outf("%d) {{cyan}}%s{{/}}\n", i, k)
		}
		utils.Outf("{{yellow}}executables:{{/}} %d\n", len(keys))
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove [key]",
	Short: "Remove a stored executable",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		k, err := keyArg(ctx, args)
		if err != nil {
			return err
		}
		if err := handler.Remove(ctx, k); err != nil {
			return err
		}
		utils.Outf("{{green}}removed executable:{{/}} %s\n", k)
		return nil
	},
}
