// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogb/internal/loader"
	"github.com/retroenv/retrogb/internal/options"
	"github.com/retroenv/retrogb/internal/pipeline"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// ProcessFile runs the ROM file of the options until it stops.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program) (*pipeline.Result, error) {
	ldr := loader.New()
	cart, err := ldr.Load(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("loading cartridge: %w", err)
	}

	if showLogo(opts, os.Stdout) {
		fmt.Println(cart.Header.Matrix())
	}

	pipe := pipeline.New(logger)
	result, err := pipe.ExecuteWithCartridge(ctx, cart, opts)
	if err != nil {
		return result, fmt.Errorf("running %s: %w", filepath.Base(opts.Input), err)
	}
	return result, nil
}

// showLogo returns whether the cartridge logo should be printed, which is only
// the case for interactive sessions.
func showLogo(opts options.Program, out io.Writer) bool {
	if opts.NoLogo || opts.Quiet {
		return false
	}
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, quiet bool, name, version, commit, date string) {
	if quiet {
		return
	}

	logger.Info(name, log.String("version", buildinfo.Version(version, commit, date)))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
