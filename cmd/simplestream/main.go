// Package main is the entry of the application.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/wuxler/simplestream/pkg/cmdhelper"
	"github.com/wuxler/simplestream/pkg/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := commands.NewRootCommand().ToCLI()
	app.ExitErrHandler = func(ctx context.Context, c *cli.Command, err error) {
		cli.HandleExitCoder(err)
		cmdhelper.Fprintf(c.ErrWriter, "Error: %+v\n", err)
		os.Exit(1)
	}
	//nolint:errcheck // already checked in root command ExitErrHandler
	_ = app.Run(ctx, os.Args)
}
