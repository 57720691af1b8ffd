package cpu

import "fmt"

// OperandKind is the encoding of the immediate operand that follows an opcode.
type OperandKind uint8

// Operand encodings.
const (
	NoOperand   OperandKind = iota
	Immediate8              // unsigned byte
	Signed8                 // signed displacement
	Immediate16             // little-endian word
)

// Size returns the number of operand bytes.
func (k OperandKind) Size() int {
	switch k {
	case Immediate8, Signed8:
		return 1
	case Immediate16:
		return 2
	default:
		return 0
	}
}

// Flow describes how an instruction changes the program flow.
type Flow uint8

// Program flow kinds.
const (
	FlowNext            Flow = iota // continues with the next instruction
	FlowJump                        // unconditional jump
	FlowConditionalJump             // jump that can fall through
	FlowCall                        // subroutine call, returns to the next instruction
	FlowReturn                      // unconditional return
)

// execFunc executes an instruction. The program counter already points to the
// next instruction.
type execFunc func(c *CPU, bus Bus, operand uint16) error

// Opcode is an entry of an opcode table.
type Opcode struct {
	Byte     uint8
	Name     string // mnemonic with operand placeholders d8, d16, a8, a16 and r8
	Operand  OperandKind
	Cycles   int
	Flow     Flow
	Extended bool // entry of the CB prefixed table

	exec execFunc
}

// Length returns the number of opcode and operand bytes.
func (o *Opcode) Length() int {
	return 1 + o.Operand.Size()
}

// prefixCB is the opcode that selects the extended opcode table.
const prefixCB = 0xCB

// prefixCycles is the cost that the prefix adds to an extended instruction.
const prefixCycles = 1

var (
	primaryOpcodes  [256]*Opcode
	extendedOpcodes [256]*Opcode
)

// PrimaryOpcode returns the entry of the primary table, nil for undefined opcodes.
func PrimaryOpcode(b uint8) *Opcode {
	return primaryOpcodes[b]
}

// ExtendedOpcode returns the entry of the CB prefixed table.
func ExtendedOpcode(b uint8) *Opcode {
	return extendedOpcodes[b]
}

func register(table *[256]*Opcode, op *Opcode) {
	if table[op.Byte] != nil {
		panic(fmt.Sprintf("opcode $%02X defined twice: %s and %s", op.Byte, table[op.Byte].Name, op.Name))
	}
	table[op.Byte] = op
}

// def adds an entry to the primary table.
func def(b uint8, name string, operand OperandKind, cycles int, flow Flow, exec execFunc) {
	register(&primaryOpcodes, &Opcode{
		Byte:    b,
		Name:    name,
		Operand: operand,
		Cycles:  cycles,
		Flow:    flow,
		exec:    exec,
	})
}

// defCB adds an entry to the extended table.
func defCB(b uint8, name string, cycles int, exec execFunc) {
	register(&extendedOpcodes, &Opcode{
		Byte:     b,
		Name:     name,
		Cycles:   cycles,
		Extended: true,
		exec:     exec,
	})
}

// regCycles returns the cost of an instruction that has an 8-bit operand
// selector: the base cost for registers, or the given cost for (HL).
func regCycles(r Reg8, base, indirect int) int {
	if r == RegHLIndirect {
		return indirect
	}
	return base
}
