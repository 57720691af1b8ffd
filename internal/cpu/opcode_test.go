package cpu

import (
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

var undefinedOpcodes = []uint8{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD}

func TestPrimaryOpcodeTable(t *testing.T) {
	undefined := 0

	for i := range 256 {
		op := PrimaryOpcode(uint8(i))
		if op == nil {
			undefined++
			continue
		}

		assert.Equal(t, uint8(i), op.Byte)
		assert.NotEmpty(t, op.Name)
		assert.True(t, op.Cycles > 0, op.Name)
		assert.True(t, op.Length() >= 1 && op.Length() <= 3, op.Name)
		assert.True(t, op.exec != nil, op.Name)
		assert.False(t, op.Extended)
		checkPlaceholder(t, op)
	}

	assert.Equal(t, len(undefinedOpcodes), undefined)
	for _, b := range undefinedOpcodes {
		assert.True(t, PrimaryOpcode(b) == nil)
	}
}

func TestExtendedOpcodeTable(t *testing.T) {
	for i := range 256 {
		op := ExtendedOpcode(uint8(i))
		assert.True(t, op != nil)
		assert.Equal(t, uint8(i), op.Byte)
		assert.Equal(t, 1, op.Length())
		assert.True(t, op.Extended)
		assert.True(t, op.exec != nil, op.Name)

		expected := 8
		if i&7 == int(RegHLIndirect) {
			expected = 16
		}
		assert.Equal(t, expected, op.Cycles)
	}

	assert.Equal(t, "RR C", ExtendedOpcode(0x19).Name)
	assert.Equal(t, "BIT 7,H", ExtendedOpcode(0x7C).Name)
	assert.Equal(t, 16, ExtendedOpcode(0x46).Cycles)
	assert.Equal(t, "RES 0,(HL)", ExtendedOpcode(0x86).Name)
	assert.Equal(t, "SET 7,A", ExtendedOpcode(0xFF).Name)
	assert.Equal(t, "SWAP A", ExtendedOpcode(0x37).Name)
}

func checkPlaceholder(t *testing.T, op *Opcode) {
	t.Helper()

	switch op.Operand {
	case Immediate8:
		if op.Byte != 0x10 { // STOP
			assert.True(t, strings.Contains(op.Name, "d8") || strings.Contains(op.Name, "a8"), op.Name)
		}
	case Signed8:
		assert.True(t, strings.Contains(op.Name, "r8"), op.Name)
	case Immediate16:
		assert.True(t, strings.Contains(op.Name, "d16") || strings.Contains(op.Name, "a16"), op.Name)
	default:
		for _, placeholder := range []string{"d8", "a8", "r8", "d16", "a16"} {
			assert.False(t, strings.Contains(op.Name, placeholder), op.Name)
		}
	}
}

func TestOpcodeCycles(t *testing.T) {
	tests := []struct {
		b      uint8
		name   string
		cycles int
	}{
		{0x00, "NOP", 4},
		{0x01, "LD BC,d16", 12},
		{0x06, "LD B,d8", 8},
		{0x08, "LD (a16),SP", 20},
		{0x18, "JR r8", 8},
		{0x20, "JR NZ,r8", 8},
		{0x34, "INC (HL)", 12},
		{0x36, "LD (HL),d8", 12},
		{0x3E, "LD A,d8", 8},
		{0x41, "LD B,C", 4},
		{0x46, "LD B,(HL)", 8},
		{0x70, "LD (HL),B", 8},
		{0x76, "HALT", 4},
		{0x86, "ADD A,(HL)", 8},
		{0x8F, "ADC A,A", 4},
		{0x90, "SUB B", 4},
		{0xBE, "CP (HL)", 8},
		{0xC1, "POP BC", 12},
		{0xC3, "JP a16", 12},
		{0xC5, "PUSH BC", 16},
		{0xC8, "RET Z", 8},
		{0xC9, "RET", 8},
		{0xCD, "CALL a16", 12},
		{0xD4, "CALL NC,a16", 12},
		{0xDA, "JP C,a16", 12},
		{0xDF, "RST 18H", 32},
		{0xE0, "LDH (a8),A", 12},
		{0xE2, "LD (C),A", 8},
		{0xE8, "ADD SP,r8", 16},
		{0xE9, "JP (HL)", 4},
		{0xEA, "LD (a16),A", 16},
		{0xF1, "POP AF", 12},
		{0xF8, "LD HL,SP+r8", 12},
		{0xF9, "LD SP,HL", 8},
		{0xFE, "CP d8", 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := PrimaryOpcode(tt.b)
			assert.Equal(t, tt.name, op.Name)
			assert.Equal(t, tt.cycles, op.Cycles)
		})
	}
}
