// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// "yo-cli" packages, stores, inspects and runs compiled Yo executables.
package main

import (
	"os"

	"github.com/ava-labs/yort/cmd/yo-cli/cmd"
	"github.com/ava-labs/yort/utils"
)

func main() {
	if err := cmd.Execute(); err != nil {
		utils.Outf("{{red}}yo-cli exited with error:{{/}} %+v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}
