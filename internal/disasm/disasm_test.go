package disasm

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/retrogb/internal/cartridge"
	"github.com/retroenv/retrogb/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func newTestCartridge(t *testing.T, code []byte) *cartridge.Cartridge {
	t.Helper()
	rom := make([]byte, 0x8000)
	copy(rom[0x100:], code)
	copy(rom[0x134:], "DISASM")
	cart, err := cartridge.New(rom)
	assert.NoError(t, err)
	return cart
}

func testOptions(start, end uint16) options.Disassembler {
	opts := options.NewDisassembler()
	opts.Start = start
	opts.End = end
	opts.HexComments = false
	opts.OffsetComments = false
	return opts
}

func TestProcess(t *testing.T) {
	code := []byte{
		0x00,             // NOP
		0xCD, 0x08, 0x01, // CALL $0108
		0x18, 0xFA, // JR $0100
		0xD3,       // undefined
		0xFD,       // undefined
		0xCB, 0x19, // RR C
		0xC9, // RET
	}
	cart := newTestCartridge(t, code)
	dis, err := New(log.NewTestLogger(t), cart, testOptions(0x0100, 0x010A))
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, dis.Process(context.Background(), &buf))

	expected := `_label_0100:
  NOP
  CALL _func_0108
  JR _label_0100

  db $D3, $FD

_func_0108:
  RR C
  RET
`
	output := buf.String()
	assert.True(t, strings.HasPrefix(output, "; Title: DISASM\n"))
	assert.True(t, strings.HasSuffix(output, expected))

	lines := dis.Lines()
	assert.Len(t, lines, 7)
	assert.Equal(t, uint16(0x0106), lines[3].Address)
	assert.True(t, lines[3].IsData())
}

func TestProcessTruncatedInstruction(t *testing.T) {
	// the operand of LD BC,d16 is outside of the range
	cart := newTestCartridge(t, []byte{0x00, 0x01, 0x34, 0x12})
	dis, err := New(log.NewTestLogger(t), cart, testOptions(0x0100, 0x0102))
	assert.NoError(t, err)
	assert.NoError(t, dis.Process(context.Background(), &bytes.Buffer{}))

	lines := dis.Lines()
	assert.Len(t, lines, 3)
	assert.Equal(t, "NOP", lines[0].Code)
	assert.True(t, lines[1].IsData())
	assert.Equal(t, uint16(0x0101), lines[1].Address)
	assert.Equal(t, uint8(0x01), lines[1].Data[0])
	assert.True(t, lines[2].IsData())
	assert.Equal(t, uint16(0x0102), lines[2].Address)
	assert.Equal(t, uint8(0x34), lines[2].Data[0])
}

func TestProcessTruncatedPrefixedInstruction(t *testing.T) {
	cart := newTestCartridge(t, []byte{0x76, 0xCB, 0x19})
	dis, err := New(log.NewTestLogger(t), cart, testOptions(0x0100, 0x0101))
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, dis.Process(context.Background(), &buf))

	lines := dis.Lines()
	assert.Len(t, lines, 2)
	assert.Equal(t, "HALT", lines[0].Code)
	assert.True(t, lines[1].IsData())
	assert.True(t, strings.HasSuffix(buf.String(), "  HALT\n\n  db $CB\n"))
}

func TestProcessJumpIntoInstruction(t *testing.T) {
	cart := newTestCartridge(t, []byte{
		0x21, 0x18, 0xFD, // LD HL,$FD18
		0xC3, 0x01, 0x01, // JP $0101
	})
	dis, err := New(log.NewTestLogger(t), cart, testOptions(0x0100, 0x0105))
	assert.NoError(t, err)
	assert.NoError(t, dis.Process(context.Background(), &bytes.Buffer{}))

	lines := dis.Lines()
	assert.Len(t, lines, 2)
	assert.Equal(t, "", lines[0].Label)
	assert.Equal(t, "JP $0101", lines[1].Code)
}

func TestProcessComments(t *testing.T) {
	cart := newTestCartridge(t, []byte{0x3E, 0x05})
	opts := options.NewDisassembler()
	opts.End = 0x0101
	dis, err := New(log.NewTestLogger(t), cart, opts)
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, dis.Process(context.Background(), &buf))
	assert.Contains(t, buf.String(), "LD A,$05")
	assert.Contains(t, buf.String(), "; $0100  3E 05")
}

func TestNewInvalidRange(t *testing.T) {
	cart := newTestCartridge(t, nil)

	_, err := New(log.NewTestLogger(t), cart, testOptions(0x9000, 0xFFFF))
	assert.True(t, errors.Is(err, errInvalidRange))

	dis, err := New(log.NewTestLogger(t), cart, testOptions(0x0100, 0xFFFF))
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x7FFF), dis.end)
}

func TestProcessCanceled(t *testing.T) {
	cart := newTestCartridge(t, nil)
	dis, err := New(log.NewTestLogger(t), cart, testOptions(0x0100, 0x7FFF))
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = dis.Process(ctx, &bytes.Buffer{})
	assert.True(t, errors.Is(err, context.Canceled))
}
