package fileprocessor

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogb/internal/cartridge"
	"github.com/retroenv/retrogb/internal/options"
	"github.com/retroenv/retrogb/internal/pipeline"
	"github.com/retroenv/retrogb/internal/verification"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// createTestROM creates a ROM only cartridge image that prints the message on
// the serial port and loops forever afterwards.
func createTestROM(message string) []byte {
	rom := make([]byte, 0x8000)
	copy(rom[0x100:], []byte{0x00, 0xC3, 0x50, 0x01}) // NOP; JP $0150
	copy(rom[0x150:], []byte{
		0x21, 0x00, 0x02, // LD HL,$0200
		0x2A,       // LD A,(HL+)
		0xFE, 0x00, // CP $00
		0x28, 0x04, // JR Z,$015C
		0xE0, 0x01, // LDH ($FF00+$01),A
		0x18, 0xF7, // JR $0153
		0x18, 0xFE, // JR $015C
	})
	copy(rom[0x200:], message)
	copy(rom[0x134:], "SERIAL")
	rom[0x14D] = cartridge.HeaderChecksum(rom)
	return rom
}

func writeROM(t *testing.T, dir, name string, rom []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	assert.NoError(t, os.WriteFile(path, rom, 0600))
	return path
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	path := writeROM(t, dir, "passing.gb", createTestROM("cpu_instrs\n\nPassed all tests\n"))

	opts := options.Program{
		Parameters: options.Parameters{Input: path},
		Flags:      options.Flags{Steps: options.DefaultStepLimit, Quiet: true},
	}
	result, err := ProcessFile(context.Background(), log.NewTestLogger(t), opts)
	assert.NoError(t, err)
	assert.Equal(t, pipeline.StopVerdict, result.Reason)
	assert.Equal(t, verification.Passed, result.Verdict)
	assert.Len(t, result.SerialLines, 3)
	assert.Equal(t, "Passed all tests", result.SerialLines[2])
}

func TestProcessFileFailure(t *testing.T) {
	dir := t.TempDir()
	path := writeROM(t, dir, "failing.gb", createTestROM("01-special\n\nFailed #6\n"))

	opts := options.Program{
		Parameters: options.Parameters{Input: path},
		Flags:      options.Flags{Steps: options.DefaultStepLimit, Quiet: true},
	}
	result, err := ProcessFile(context.Background(), log.NewTestLogger(t), opts)
	assert.ErrorContains(t, err, "failing.gb")
	assert.ErrorContains(t, err, "Failed #6")
	assert.Equal(t, verification.Failed, result.Verdict)
}

func TestProcessFileMissing(t *testing.T) {
	opts := options.Program{Parameters: options.Parameters{Input: filepath.Join(t.TempDir(), "missing.gb")}}

	result, err := ProcessFile(context.Background(), log.NewTestLogger(t), opts)
	assert.ErrorContains(t, err, "loading cartridge")
	assert.True(t, result == nil)
}

func TestShowLogo(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, showLogo(options.Program{}, &buf))
	assert.False(t, showLogo(options.Program{Flags: options.Flags{NoLogo: true}}, os.Stdout))
	assert.False(t, showLogo(options.Program{Flags: options.Flags{Quiet: true}}, os.Stdout))
}

func TestGetFilesToProcess(t *testing.T) {
	dir := t.TempDir()
	writeROM(t, dir, "a.gb", createTestROM(""))
	writeROM(t, dir, "b.gb", createTestROM(""))
	writeROM(t, dir, "c.txt", nil)

	opts := options.Program{Parameters: options.Parameters{Batch: filepath.Join(dir, "*.gb")}}
	files, err := GetFilesToProcess(&opts)
	assert.NoError(t, err)
	assert.Len(t, files, 2)
	assert.Equal(t, filepath.Join(dir, "a.gb"), files[0])

	opts = options.Program{Parameters: options.Parameters{Input: "single.gb"}}
	files, err = GetFilesToProcess(&opts)
	assert.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Equal(t, "single.gb", files[0])

	opts = options.Program{Parameters: options.Parameters{Batch: "[invalid"}}
	_, err = GetFilesToProcess(&opts)
	assert.Error(t, err)
}
