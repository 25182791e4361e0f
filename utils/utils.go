// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"fmt"
	"os"
	"path"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/ava-labs/avalanchego/utils/perms"
	formatter "github.com/onsi/ginkgo/v2/formatter"
)

func ToID(bytes []byte) ids.ID {
	return ids.ID(hashing.ComputeHash256Array(bytes))
}

func InitSubDirectory(rootPath string, name string) (string, error) {
	p := path.Join(rootPath, name)
	return p, os.MkdirAll(p, perms.ReadWriteExecute)
}

// Outputs to stdout.
//
// e.g.,
//
//	Out("{{green}}{{bold}}hi there %q{{/}}", "aa")
//	Out("{{magenta}}{{bold}}hi therea{{/}} {{cyan}}{{underline}}b{{/}}")
//
// ref.
// https://github.com/onsi/ginkgo/blob/v2.0.0/formatter/formatter.go#L52-L73
func Outf(format string, args ...interface{}) {
	s := formatter.F(format, args...)
	fmt.Fprint(formatter.ColorableStdOut, s)
}

// LoadBytes reads [filename], rejecting files larger than [maxSize] bytes.
// A negative [maxSize] disables the check.
func LoadBytes(filename string, maxSize int) ([]byte, error) {
	if maxSize >= 0 {
		info, err := os.Stat(filename)
		if err != nil {
			return nil, err
		}
		if info.Size() > int64(maxSize) {
			return nil, fmt.Errorf("%w: %s is %d bytes (max=%d)", ErrInvalidSize, filename, info.Size(), maxSize)
		}
	}
	return os.ReadFile(filename)
}

func SaveBytes(filename string, b []byte) error {
	return os.WriteFile(filename, b, perms.ReadWrite)
}
