package cpu

import "fmt"

// Flag is a bit of the flag register.
type Flag uint8

// Flags of the F register. The low nibble of F is always 0.
const (
	FlagZero      Flag = 0x80
	FlagSubtract  Flag = 0x40
	FlagHalfCarry Flag = 0x20
	FlagCarry     Flag = 0x10

	flagMask = 0xF0
)

// Reg8 selects an 8-bit operand. The values match the 3 bit register field of
// the opcodes, RegHLIndirect selects the memory byte addressed by HL.
type Reg8 uint8

// 8-bit operand selectors.
const (
	RegB Reg8 = iota
	RegC
	RegD
	RegE
	RegH
	RegL
	RegHLIndirect
	RegA
)

var reg8Names = [...]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

func (r Reg8) String() string {
	return reg8Names[r&7]
}

// Reg16 selects a register pair.
type Reg16 uint8

// Register pair selectors. The first 4 match the 2 bit register pair field of
// the opcodes, push and pop use RegAF in place of RegSP.
const (
	RegBC Reg16 = iota
	RegDE
	RegHL
	RegSP
	RegAF
)

var reg16Names = [...]string{"BC", "DE", "HL", "SP", "AF"}

func (r Reg16) String() string {
	if int(r) >= len(reg16Names) {
		return fmt.Sprintf("Reg16(%d)", r)
	}
	return reg16Names[r]
}

// Register reset values after the boot ROM handed over to the cartridge.
const (
	InitialPC    = 0x0100
	InitialSP    = 0xFFFE
	InitialFlags = 0xB0
)

// Registers is the register file. All values wrap on overflow.
type Registers struct {
	A, B, C, D, E, H, L uint8
	SP, PC              uint16

	f uint8
}

// NewRegisters returns the register file in its reset state.
func NewRegisters() Registers {
	return Registers{
		SP: InitialSP,
		PC: InitialPC,
		f:  InitialFlags,
	}
}

// F returns the flag register.
func (r *Registers) F() uint8 { return r.f }

// SetF sets the flag register, the low nibble is discarded.
func (r *Registers) SetF(value uint8) { r.f = value & flagMask }

// AF returns the register pair A and F.
func (r *Registers) AF() uint16 { return uint16(r.A)<<8 | uint16(r.f) }

// BC returns the register pair B and C.
func (r *Registers) BC() uint16 { return uint16(r.B)<<8 | uint16(r.C) }

// DE returns the register pair D and E.
func (r *Registers) DE() uint16 { return uint16(r.D)<<8 | uint16(r.E) }

// HL returns the register pair H and L.
func (r *Registers) HL() uint16 { return uint16(r.H)<<8 | uint16(r.L) }

// SetAF sets the register pair A and F.
func (r *Registers) SetAF(value uint16) {
	r.A = uint8(value >> 8)
	r.SetF(uint8(value))
}

// SetBC sets the register pair B and C.
func (r *Registers) SetBC(value uint16) {
	r.B = uint8(value >> 8)
	r.C = uint8(value)
}

// SetDE sets the register pair D and E.
func (r *Registers) SetDE(value uint16) {
	r.D = uint8(value >> 8)
	r.E = uint8(value)
}

// SetHL sets the register pair H and L.
func (r *Registers) SetHL(value uint16) {
	r.H = uint8(value >> 8)
	r.L = uint8(value)
}

// Flag returns whether the flag is set.
func (r *Registers) Flag(flag Flag) bool {
	return r.f&uint8(flag) != 0
}

// SetFlag sets or clears the flag.
func (r *Registers) SetFlag(flag Flag, set bool) {
	if set {
		r.f |= uint8(flag)
	} else {
		r.f &^= uint8(flag)
	}
}

// setFlags sets all 4 flags at once.
func (r *Registers) setFlags(zero, subtract, halfCarry, carry bool) {
	r.SetFlag(FlagZero, zero)
	r.SetFlag(FlagSubtract, subtract)
	r.SetFlag(FlagHalfCarry, halfCarry)
	r.SetFlag(FlagCarry, carry)
}

// Get returns the 8-bit register. RegHLIndirect is not a register and reads 0.
func (r *Registers) Get(reg Reg8) uint8 {
	switch reg {
	case RegB:
		return r.B
	case RegC:
		return r.C
	case RegD:
		return r.D
	case RegE:
		return r.E
	case RegH:
		return r.H
	case RegL:
		return r.L
	case RegA:
		return r.A
	default:
		return 0
	}
}

// Set sets the 8-bit register. RegHLIndirect is not a register and is ignored.
func (r *Registers) Set(reg Reg8, value uint8) {
	switch reg {
	case RegB:
		r.B = value
	case RegC:
		r.C = value
	case RegD:
		r.D = value
	case RegE:
		r.E = value
	case RegH:
		r.H = value
	case RegL:
		r.L = value
	case RegA:
		r.A = value
	}
}

// Get16 returns the register pair.
func (r *Registers) Get16(reg Reg16) uint16 {
	switch reg {
	case RegBC:
		return r.BC()
	case RegDE:
		return r.DE()
	case RegHL:
		return r.HL()
	case RegSP:
		return r.SP
	default:
		return r.AF()
	}
}

// Set16 sets the register pair.
func (r *Registers) Set16(reg Reg16, value uint16) {
	switch reg {
	case RegBC:
		r.SetBC(value)
	case RegDE:
		r.SetDE(value)
	case RegHL:
		r.SetHL(value)
	case RegSP:
		r.SP = value
	default:
		r.SetAF(value)
	}
}

// String returns all registers in a single trace friendly line.
func (r *Registers) String() string {
	return fmt.Sprintf("A:%02X F:%02X B:%02X C:%02X D:%02X E:%02X H:%02X L:%02X SP:%04X PC:%04X",
		r.A, r.f, r.B, r.C, r.D, r.E, r.H, r.L, r.SP, r.PC)
}
