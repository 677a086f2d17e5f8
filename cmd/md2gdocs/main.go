package main

import (
	"context"
	"os"
	"os/signal"
)

// Set through -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCommand(BuildInfo{Version: version, Commit: commit, Date: date})
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		writeError(root.ErrOrStderr(), err)
		return exitCode(err)
	}
	return exitOK
}
