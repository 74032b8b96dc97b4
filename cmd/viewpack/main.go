package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/3-lines-studio/viewpack/internal/adapters/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		cli.NewOutput().PrintError("%v", err)
		os.Exit(1)
	}
}
