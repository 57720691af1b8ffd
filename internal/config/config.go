// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retrogb/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with the level selected by the flags.
// Tracing logs at debug level, so it enables debug logging as well.
func CreateLogger(flags options.Flags) *log.Logger {
	cfg := log.DefaultConfig()
	if debugLogging(flags) {
		cfg.Level = log.DebugLevel
	} else if flags.Quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func debugLogging(flags options.Flags) bool {
	return flags.Debug || flags.Trace
}
