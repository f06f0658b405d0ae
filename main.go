// Package main implements the main entry point for a headless CHIP-8 program runner
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/retrochip8/internal/cli"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/pipeline"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, runnerOpts, err := cli.ParseFlags()
	if errors.Is(err, cli.ErrHelpRequested) {
		return
	}
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet, false)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			pipeline.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
			if usageErr.Error() != "" {
				logger.Error(usageErr.Error())
			}
		} else {
			logger.Error(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet, opts.Trace)
	pipeline.PrintBanner(logger, opts, version, commit, date)

	p := pipeline.New(logger)
	if _, err := p.Execute(ctx, opts, runnerOpts, os.Stdout); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Error("Running failed", log.Err(err))
		os.Exit(1)
	}
}
