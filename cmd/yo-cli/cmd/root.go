// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/spf13/cobra"

	"github.com/ava-labs/yort/config"
	"github.com/ava-labs/yort/utils"
)

const maxConfigSize = 1 << 20

var (
	handler *Handler

	configFile       string
	storePath        string
	logLevel         string
	logDir           string
	metricsFile      string
	key              string
	deviceType       string
	deviceConfigFile string
	passConfig       []string
	appendModule     bool
	codeHex          bool
	initArg          int64
	parallelism      int
	moduleName       string
	callArgs         string
	outputFormat     string

	rootCmd = &cobra.Command{
		Use:        "yo-cli",
		Short:      "Yo executable CLI",
		SuggestFor: []string{"yo-cli", "yocli"},
	}
)

func init() {
	cobra.EnablePrefixMatching = true
	rootCmd.AddCommand(
		createCmd,
		inspectCmd,
		runCmd,
		callCmd,
		listCmd,
		removeCmd,
	)
	rootCmd.PersistentFlags().StringVar(
		&configFile,
		"config",
		"",
		"path to config file (JSON)",
	)
	rootCmd.PersistentFlags().StringVar(
		&storePath,
		"store",
		"",
		"path to executable store (will create it missing)",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel,
		"log-level",
		"",
		"log level (overrides config)",
	)
	rootCmd.PersistentFlags().StringVar(
		&logDir,
		"log-dir",
		"",
		"directory to also write rotated logs to",
	)
	rootCmd.PersistentFlags().StringVar(
		&metricsFile,
		"metrics-file",
		"",
		"file to write prometheus metrics to when the command finishes",
	)
	rootCmd.PersistentPreRunE = func(*cobra.Command, []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		utils.Outf("{{yellow}}store:{{/}} %s (%s)\n", cfg.StorePath, cfg.StoreBackend)
		handler, err = NewHandler(cfg, logDir)
		return err
	}
	rootCmd.PersistentPostRunE = func(*cobra.Command, []string) error {
		if len(metricsFile) > 0 {
			if err := handler.WriteMetrics(metricsFile); err != nil {
				_ = handler.Close()
				return err
			}
			utils.Outf("{{yellow}}metrics:{{/}} %s\n", metricsFile)
		}
		return handler.Close()
	}
	rootCmd.SilenceErrors = true

	// create
	createCmd.PersistentFlags().StringVar(
		&key,
		"key",
		"",
		"key to store the executable under (defaults to the module name)",
	)
	createCmd.PersistentFlags().StringVar(
		&deviceType,
		"device-type",
		"",
		"device type the code targets (overrides pass config)",
	)
	createCmd.PersistentFlags().StringVar(
		&deviceConfigFile,
		"device-config",
		"",
		"path to device config file",
	)
	createCmd.PersistentFlags().StringSliceVar(
		&passConfig,
		"pass-config",
		[]string{},
		"compiler pass options (key=value)",
	)
	createCmd.PersistentFlags().BoolVar(
		&appendModule,
		"append",
		false,
		"append the module to an existing executable",
	)
	createCmd.PersistentFlags().BoolVar(
		&codeHex,
		"hex",
		false,
		"code file holds hex encoded bytes",
	)

	// inspect
	inspectCmd.PersistentFlags().StringVar(
		&outputFormat,
		"format",
		textFormat,
		"output format (text, yaml, json)",
	)

	// run
	runCmd.PersistentFlags().Int64Var(
		&initArg,
		"init-arg",
		0,
		"argument handed to each module initializer",
	)
	runCmd.PersistentFlags().IntVar(
		&parallelism,
		"parallelism",
		1,
		"number of modules to run at once",
	)

	// call
	callCmd.PersistentFlags().StringVar(
		&moduleName,
		"module",
		"",
		"symbol of the module to call (defaults to the first module)",
	)
	callCmd.PersistentFlags().StringVar(
		&callArgs,
		"args",
		"",
		"space separated arguments (integers are passed as int64)",
	)
}

func loadConfig() (*config.Config, error) {
	var b []byte
	if len(configFile) > 0 {
		var err error
		b, err = utils.LoadBytes(configFile, maxConfigSize)
		if err != nil {
			return nil, err
		}
	}
	cfg, err := config.New(b)
	if err != nil {
		return nil, err
	}
	if len(storePath) > 0 {
		cfg.StorePath = storePath
	}
	if len(logLevel) > 0 {
		cfg.LogLevel, err = logging.ToLevel(logLevel)
		if err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func Execute() error {
	return rootCmd.Execute()
}
