// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"

	"github.com/manifoldco/promptui"
)

// keyArg returns the executable key given on the command line, prompting
// for one of the stored keys when none was given.
func keyArg(ctx context.Context, args []string) (string, error) {
	switch len(args) {
	case 0:
		keys, err := handler.Keys(ctx)
		if err != nil {
			return "", err
		}
		return chooseKey(keys)
	case 1:
		return args[0], nil
	default:
		return "", ErrInvalidArgs
	}
}

func chooseKey(keys []string) (string, error) {
	if len(keys) == 0 {
		return "", ErrNoExecutables
	}
	if len(keys) == 1 {
		return keys[0], nil
	}
	sel := promptui.Select{
		Label: "executable",
		Items: keys,
	}
	_, k, err := sel.Run()
	return k, err
}
