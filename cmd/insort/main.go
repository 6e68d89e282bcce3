package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/backplane/insort/cli"
	"github.com/backplane/insort/internal/app"
	"github.com/backplane/insort/internal/ui"
)

func main() {
	cfg, err := cli.ParseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, cli.ErrHelp) {
			os.Exit(0)
		}
		// pflag already prints the error message.
		os.Exit(1)
	}

	a := app.New(cfg, app.Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr})
	if err := a.Run(); err != nil {
		ui.NewPrinter(os.Stdout, os.Stderr).Error(err)
		var detailed *app.DetailedError
		if cfg.Verbose && errors.As(err, &detailed) {
			fmt.Fprintf(os.Stderr, "\n--- Stack Trace ---\n%s\n", detailed.Stack)
		}
		os.Exit(1)
	}
}
