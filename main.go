// Package main implements the main entry point of the Game Boy CPU emulator
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/retrogb/internal/cli"
	"github.com/retroenv/retrogb/internal/config"
	"github.com/retroenv/retrogb/internal/fileprocessor"
	"github.com/retroenv/retrogb/internal/statsview"
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

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Flags)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts.Quiet, "retrogb", version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Flags)
	fileprocessor.PrintBanner(logger, opts.Quiet, "retrogb", version, commit, date)

	if opts.StatsView {
		stop := statsview.Launch(logger)
		defer stop()
	}

	files, err := fileprocessor.GetFilesToProcess(&opts)
	if err != nil {
		logger.Fatal(err.Error())
	}

	var failed int
	for _, file := range files {
		opts.Input = file

		if _, err := fileprocessor.ProcessFile(ctx, logger, opts); err != nil {
			// Handle context cancellation (Ctrl+C) gracefully
			if errors.Is(err, context.Canceled) {
				logger.Info("Operation cancelled")
				return
			}
			logger.Error("Running ROM failed", log.Err(err))
			failed++
		}
	}

	if failed > 0 {
		logger.Error("Some ROMs failed", log.Int("failed", failed), log.Int("total", len(files)))
		os.Exit(1)
	}
}
