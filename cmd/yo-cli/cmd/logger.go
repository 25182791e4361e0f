// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"os"
	"path"

	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logName       = "yo-cli"
	logMaxSize    = 8 // megabytes
	logMaxAge     = 7 // days
	logMaxBackups = 3 // files
)

// newLogger logs to stderr and, when [dir] is set, to a rotated JSON log
// file in [dir].
func newLogger(level logging.Level, dir string) logging.Logger {
	cores := []logging.WrappedCore{
		logging.NewWrappedCore(level, os.Stderr, logging.Colors.ConsoleEncoder()),
	}
	if len(dir) > 0 {
		rw := &lumberjack.Logger{
			Filename:   path.Join(dir, logName+".log"),
			MaxSize:    logMaxSize,
			MaxAge:     logMaxAge,
			MaxBackups: logMaxBackups,
		}
		cores = append(cores, logging.NewWrappedCore(level, rw, logging.JSON.FileEncoder()))
	}
	return logging.NewLogger("", cores...)
}
