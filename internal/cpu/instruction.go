package cpu

import (
	"errors"
	"fmt"
	"strings"

	"github.com/retroenv/retrogb/internal/memory"
)

// ErrUnknownOpcode is returned when decoding a byte that is not in the opcode table.
var ErrUnknownOpcode = errors.New("unknown opcode")

// Instruction is a decoded instruction.
type Instruction struct {
	Address  memory.Address
	Opcode   *Opcode
	Prefixed bool   // decoded from the CB prefixed table
	Operand  uint16 // immediate operand, signed displacements are stored as byte
}

// Decode reads the instruction at the address. Decoding does not change any
// state of the reader.
func Decode(reader Reader, address memory.Address) (Instruction, error) {
	b := reader.Read(address)
	if b == prefixCB {
		inner, err := decodeExtended(reader, address+1)
		if err != nil {
			return Instruction{}, err
		}
		inner.Address = address
		inner.Prefixed = true
		return inner, nil
	}

	op := primaryOpcodes[b]
	if op == nil {
		return Instruction{}, fmt.Errorf("%w: $%02X at address %s", ErrUnknownOpcode, b, address)
	}

	ins := Instruction{
		Address: address,
		Opcode:  op,
	}
	switch op.Operand.Size() {
	case 1:
		ins.Operand = uint16(reader.Read(address + 1))
	case 2:
		low := reader.Read(address + 1)
		high := reader.Read(address + 2)
		ins.Operand = uint16(high)<<8 | uint16(low)
	}
	return ins, nil
}

func decodeExtended(reader Reader, address memory.Address) (Instruction, error) {
	b := reader.Read(address)
	op := extendedOpcodes[b]
	if op == nil {
		return Instruction{}, fmt.Errorf("%w: $CB $%02X at address %s", ErrUnknownOpcode, b, address-1)
	}
	return Instruction{
		Address: address,
		Opcode:  op,
	}, nil
}

// Length returns the number of bytes of the instruction including the prefix.
func (i Instruction) Length() int {
	length := i.Opcode.Length()
	if i.Prefixed {
		length++
	}
	return length
}

// Cycles returns the cycle cost. A prefixed instruction costs the prefix plus
// the extended table entry.
func (i Instruction) Cycles() int {
	if i.Prefixed {
		return prefixCycles + i.Opcode.Cycles
	}
	return i.Opcode.Cycles
}

// Target returns the destination of a jump, call or restart instruction.
// Indirect jumps have no static destination.
func (i Instruction) Target() (memory.Address, bool) {
	op := i.Opcode
	if op.Flow == FlowNext || op.Flow == FlowReturn || op.Extended {
		return 0, false
	}

	switch op.Operand {
	case Immediate16:
		return memory.Address(i.Operand), true
	case Signed8:
		next := i.Address + memory.Address(i.Length())
		return next + memory.Address(int8(i.Operand)), true
	case NoOperand:
		if op.Flow == FlowCall { // RST
			return memory.Address(op.Byte & 0x38), true
		}
	}
	return 0, false
}

// Bytes returns the encoding of the instruction.
func (i Instruction) Bytes() []byte {
	if i.Prefixed {
		return []byte{prefixCB, i.Opcode.Byte}
	}
	switch i.Opcode.Operand.Size() {
	case 1:
		return []byte{i.Opcode.Byte, uint8(i.Operand)}
	case 2:
		return []byte{i.Opcode.Byte, uint8(i.Operand), uint8(i.Operand >> 8)}
	default:
		return []byte{i.Opcode.Byte}
	}
}

// String returns the instruction in assembler syntax with the operand
// placeholder replaced by the operand value. Relative jumps show the target.
func (i Instruction) String() string {
	return i.Format(func(address memory.Address) string {
		return fmt.Sprintf("$%04X", uint16(address))
	})
}

// Format is like String but formats jump destinations using the given function,
// which allows the caller to print labels instead of addresses.
func (i Instruction) Format(target func(address memory.Address) string) string {
	name := i.Opcode.Name
	switch i.Opcode.Operand {
	case Immediate8:
		if strings.Contains(name, "(a8)") {
			return strings.Replace(name, "(a8)", fmt.Sprintf("($FF00+$%02X)", i.Operand), 1)
		}
		if !strings.Contains(name, "d8") {
			return name
		}
		return strings.Replace(name, "d8", fmt.Sprintf("$%02X", i.Operand), 1)

	case Signed8:
		if dest, ok := i.Target(); ok {
			return strings.Replace(name, "r8", target(dest), 1)
		}
		if strings.Contains(name, "+r8") {
			return strings.Replace(name, "+r8", fmt.Sprintf("%+d", int8(i.Operand)), 1)
		}
		return strings.Replace(name, "r8", fmt.Sprintf("%d", int8(i.Operand)), 1)

	case Immediate16:
		if dest, ok := i.Target(); ok {
			return strings.Replace(name, "a16", target(dest), 1)
		}
		name = strings.Replace(name, "a16", fmt.Sprintf("$%04X", i.Operand), 1)
		return strings.Replace(name, "d16", fmt.Sprintf("$%04X", i.Operand), 1)

	default:
		return name
	}
}
