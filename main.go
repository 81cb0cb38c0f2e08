package main

import (
	"os"

	"github.com/penwyp/tfget/cmd"
	"github.com/penwyp/tfget/internal/errors"
)

// main is the CLI entry point; terminating errors are rendered by the
// error handler and mapped to per-class exit codes.
func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.NewHandler(os.Stderr).Handle(err))
	}
}
