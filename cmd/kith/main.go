// Package main provides the kith CLI, a personal relationship manager.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/anhofmann/kith/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// userErrors are the error kinds caused by user input rather than the
// system; they map to exit code 1.
var userErrors = []error{
	types.ErrInvalidDate,
	types.ErrUnknownVariant,
	types.ErrUnknownContactKind,
	types.ErrInvalidName,
	types.ErrFormat,
	types.ErrNotFound,
	types.ErrDuplicateEntry,
	types.ErrAborted,
	types.ErrInvalidInput,
}

func exitCode(err error) int {
	for _, ue := range userErrors {
		if errors.Is(err, ue) {
			return exitUserError
		}
	}
	return exitSysError
}
