// Package main is the entry point for the judotimer CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/clangoi/judotimer/internal/cli"
	"github.com/clangoi/judotimer/internal/errors"
)

// Set via ldflags at build time.
//
//nolint:gochecknoglobals // Build metadata injected by the linker
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx := context.Background()
	err := cli.Execute(ctx, cli.BuildInfo{Version: version, Commit: commit, Date: date})
	if err != nil {
		// Cobra already printed the error itself.
		if _, action := errors.Actionable(err); action != "" {
			fmt.Fprintln(os.Stderr, "Hint:", action)
		}
		os.Exit(cli.ExitCodeForError(err))
	}
}
