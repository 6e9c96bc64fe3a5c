// Package main provides the ffnet CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
)

const version = "v0.1.0-dev"

const (
	// Flags.
	flagConfig     = "config"
	flagEpochs     = "epochs"
	flagLR         = "lr"
	flagBatchSize  = "batch-size"
	flagData       = "data"
	flagSynthetic  = "synthetic"
	flagCheckpoint = "checkpoint"
	flagPlot       = "plot"
	flagSeed       = "seed"
	flagLogLevel   = "log-level"
	flagLogJSON    = "log-json"
	flagLoss       = "loss"
	flagLimit      = "limit"
	flagCount      = "count"
	flagSamples    = "samples"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newApp().RunContext(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "ffnet",
		Usage:   "train and evaluate feed-forward classifiers",
		Version: version,
		Commands: []*cli.Command{
			trainCommand(),
			evalCommand(),
			predictCommand(),
			{
				Name:  "version",
				Usage: "print the version",
				Action: func(c *cli.Context) error {
					fmt.Fprintf(c.App.Writer, "ffnet %s\n", version)
					return nil
				},
			},
		},
	}
}
