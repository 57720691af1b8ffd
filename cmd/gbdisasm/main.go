// Package main implements a Game Boy ROM disassembler
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrogb/internal/cli"
	"github.com/retroenv/retrogb/internal/config"
	"github.com/retroenv/retrogb/internal/disasm"
	"github.com/retroenv/retrogb/internal/fileprocessor"
	"github.com/retroenv/retrogb/internal/loader"
	"github.com/retroenv/retrogb/internal/options"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	opts, input, err := cli.ParseDisassemblerFlags()
	if err != nil {
		logger := config.CreateLogger(options.Flags{Quiet: opts.Quiet})
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts.Quiet, "gbdisasm", version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Error(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(options.Flags{Quiet: opts.Quiet})
	fileprocessor.PrintBanner(logger, opts.Quiet, "gbdisasm", version, commit, date)

	if err := disasmFile(logger, input, opts); err != nil {
		logger.Error("Disassembling failed", log.Err(err))
		os.Exit(1)
	}
}

func disasmFile(logger *log.Logger, input string, opts options.Disassembler) error {
	cart, err := loader.New().Load(input)
	if err != nil {
		return err
	}

	dis, err := disasm.New(logger, cart, opts)
	if err != nil {
		return fmt.Errorf("initializing disassembler: %w", err)
	}

	var outputFile io.WriteCloser
	if opts.Output == "" {
		outputFile = nopCloser{os.Stdout}
	} else {
		outputFile, err = os.Create(opts.Output)
		if err != nil {
			return fmt.Errorf("creating file '%s': %w", opts.Output, err)
		}
	}

	if err = dis.Process(app.Context(), outputFile); err != nil {
		_ = outputFile.Close()
		return fmt.Errorf("processing file: %w", err)
	}
	if err = outputFile.Close(); err != nil {
		return fmt.Errorf("closing file: %w", err)
	}
	return nil
}

// nopCloser wraps an io.Writer to add a no-op Close method
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}
