package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"snap.dev/snap/internal/cli"
	snaperrors "snap.dev/snap/internal/errors"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// SIGINT and SIGTERM cancel the running command; git children get a
	// chance to clean up and the repository lock is released before exit.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.NewRootCmd(version, commit, date)
	err := rootCmd.ExecuteContext(ctx)
	if err != nil && ctx.Err() != nil {
		err = fmt.Errorf("%w: %w", snaperrors.ErrInterrupted, err)
	}
	return cli.Report(err, os.Stderr)
}
