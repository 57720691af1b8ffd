package config

import (
	"testing"

	"github.com/retroenv/retrogb/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestCreateLogger(t *testing.T) {
	tests := []struct {
		name  string
		flags options.Flags
		debug bool
	}{
		{name: "default"},
		{name: "debug", flags: options.Flags{Debug: true}, debug: true},
		{name: "trace", flags: options.Flags{Trace: true}, debug: true},
		{name: "quiet", flags: options.Flags{Quiet: true}},
		{name: "debug wins over quiet", flags: options.Flags{Debug: true, Quiet: true}, debug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.debug, debugLogging(tt.flags))
			assert.NotNil(t, CreateLogger(tt.flags))
		})
	}
}
