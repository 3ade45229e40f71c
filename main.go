package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/8/serialportecho/cli"
	"github.com/8/serialportecho/logging"
	"github.com/8/serialportecho/ui"
)

func main() {
	log := logging.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	// After the first interrupt a second one kills the process.
	context.AfterFunc(ctx, stop)
	err := cli.Execute(ctx, cli.DefaultDeps(log))
	stop()
	if err != nil {
		ui.PrintError(os.Stderr, err.Error())
		os.Exit(cli.ExitCode(err))
	}
}
