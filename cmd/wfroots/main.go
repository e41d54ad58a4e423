package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/indaco/wfroots/internal/cli"
	"github.com/indaco/wfroots/internal/printer"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		printer.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

// runCLI builds the command against the host and runs it with args.
func runCLI(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.New(cli.Deps{}).Run(ctx, args)
}
