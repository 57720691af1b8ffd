package cpu

import (
	"fmt"

	"github.com/retroenv/retrogb/internal/memory"
	"github.com/retroenv/retrogolib/log"
)

// highPage is the base address of LDH and LD (C),A.
const highPage = 0xFF00

// aluOp is an 8-bit accumulator operation, the result is stored in A unless
// the operation is a compare.
type aluOp struct {
	name  string
	apply func(r *Registers, a, b uint8) uint8
	store bool
}

var aluOps = [8]aluOp{
	{"ADD A,", func(r *Registers, a, b uint8) uint8 { return r.add(a, b, false) }, true},
	{"ADC A,", func(r *Registers, a, b uint8) uint8 { return r.add(a, b, true) }, true},
	{"SUB ", func(r *Registers, a, b uint8) uint8 { return r.sub(a, b, false) }, true},
	{"SBC A,", func(r *Registers, a, b uint8) uint8 { return r.sub(a, b, true) }, true},
	{"AND ", (*Registers).and, true},
	{"XOR ", (*Registers).xor, true},
	{"OR ", (*Registers).or, true},
	{"CP ", func(r *Registers, a, b uint8) uint8 { return r.sub(a, b, false) }, false},
}

func (op aluOp) execute(r *Registers, value uint8) {
	result := op.apply(r, r.A, value)
	if op.store {
		r.A = result
	}
}

func init() {
	defineLoads()
	defineArithmetic()
	defineControlFlow()
	defineMisc()
}

func defineLoads() {
	for i := range 4 {
		rr := Reg16(i)
		def(uint8(0x01+i<<4), fmt.Sprintf("LD %s,d16", rr), Immediate16, 12, FlowNext,
			func(c *CPU, _ Bus, operand uint16) error {
				c.regs.Set16(rr, operand)
				return nil
			})
	}

	for i := range 8 {
		r := Reg8(i)
		def(uint8(0x06+i<<3), fmt.Sprintf("LD %s,d8", r), Immediate8, regCycles(r, 8, 12), FlowNext,
			func(c *CPU, bus Bus, operand uint16) error {
				return c.write(bus, r, uint8(operand))
			})
	}

	for op := 0x40; op < 0x80; op++ {
		if op == 0x76 { // HALT takes the slot of LD (HL),(HL)
			continue
		}
		dst, src := Reg8(op>>3&7), Reg8(op&7)
		cycles := 4
		if dst == RegHLIndirect || src == RegHLIndirect {
			cycles = 8
		}
		def(uint8(op), fmt.Sprintf("LD %s,%s", dst, src), NoOperand, cycles, FlowNext,
			func(c *CPU, bus Bus, _ uint16) error {
				return c.write(bus, dst, c.read(bus, src))
			})
	}

	// indirect accumulator loads through BC, DE and HL with post increment or decrement
	indirect := []struct {
		store, load uint8
		name        string
		address     func(c *CPU) uint16
	}{
		{0x02, 0x0A, "(BC)", func(c *CPU) uint16 { return c.regs.BC() }},
		{0x12, 0x1A, "(DE)", func(c *CPU) uint16 { return c.regs.DE() }},
		{0x22, 0x2A, "(HL+)", func(c *CPU) uint16 {
			hl := c.regs.HL()
			c.regs.SetHL(hl + 1)
			return hl
		}},
		{0x32, 0x3A, "(HL-)", func(c *CPU) uint16 {
			hl := c.regs.HL()
			c.regs.SetHL(hl - 1)
			return hl
		}},
	}
	for _, ind := range indirect {
		def(ind.store, fmt.Sprintf("LD %s,A", ind.name), NoOperand, 8, FlowNext,
			func(c *CPU, bus Bus, _ uint16) error {
				return bus.Write(memory.Address(ind.address(c)), c.regs.A)
			})
		def(ind.load, fmt.Sprintf("LD A,%s", ind.name), NoOperand, 8, FlowNext,
			func(c *CPU, bus Bus, _ uint16) error {
				c.regs.A = bus.Read(memory.Address(ind.address(c)))
				return nil
			})
	}

	def(0x08, "LD (a16),SP", Immediate16, 20, FlowNext, func(c *CPU, bus Bus, operand uint16) error {
		return bus.WriteWord(memory.Address(operand), c.regs.SP)
	})
	def(0xE0, "LDH (a8),A", Immediate8, 12, FlowNext, func(c *CPU, bus Bus, operand uint16) error {
		return bus.Write(memory.Address(highPage+operand), c.regs.A)
	})
	def(0xF0, "LDH A,(a8)", Immediate8, 12, FlowNext, func(c *CPU, bus Bus, operand uint16) error {
		c.regs.A = bus.Read(memory.Address(highPage + operand))
		return nil
	})
	def(0xE2, "LD (C),A", NoOperand, 8, FlowNext, func(c *CPU, bus Bus, _ uint16) error {
		return bus.Write(memory.Address(highPage+uint16(c.regs.C)), c.regs.A)
	})
	def(0xF2, "LD A,(C)", NoOperand, 8, FlowNext, func(c *CPU, bus Bus, _ uint16) error {
		c.regs.A = bus.Read(memory.Address(highPage + uint16(c.regs.C)))
		return nil
	})
	def(0xEA, "LD (a16),A", Immediate16, 16, FlowNext, func(c *CPU, bus Bus, operand uint16) error {
		return bus.Write(memory.Address(operand), c.regs.A)
	})
	def(0xFA, "LD A,(a16)", Immediate16, 16, FlowNext, func(c *CPU, bus Bus, operand uint16) error {
		c.regs.A = bus.Read(memory.Address(operand))
		return nil
	})
	def(0xF8, "LD HL,SP+r8", Signed8, 12, FlowNext, func(c *CPU, _ Bus, operand uint16) error {
		c.regs.SetHL(c.regs.addSigned(c.regs.SP, uint8(operand)))
		return nil
	})
	def(0xF9, "LD SP,HL", NoOperand, 8, FlowNext, func(c *CPU, _ Bus, _ uint16) error {
		c.regs.SP = c.regs.HL()
		return nil
	})

	pushPairs := [4]Reg16{RegBC, RegDE, RegHL, RegAF}
	for i, rr := range pushPairs {
		def(uint8(0xC1+i<<4), fmt.Sprintf("POP %s", rr), NoOperand, 12, FlowNext,
			func(c *CPU, bus Bus, _ uint16) error {
				c.regs.Set16(rr, c.pop(bus))
				return nil
			})
		def(uint8(0xC5+i<<4), fmt.Sprintf("PUSH %s", rr), NoOperand, 16, FlowNext,
			func(c *CPU, bus Bus, _ uint16) error {
				return c.push(bus, c.regs.Get16(rr))
			})
	}
}

func defineArithmetic() {
	for i := range 8 {
		r := Reg8(i)
		def(uint8(0x04+i<<3), fmt.Sprintf("INC %s", r), NoOperand, regCycles(r, 4, 12), FlowNext,
			func(c *CPU, bus Bus, _ uint16) error {
				return c.write(bus, r, c.regs.inc(c.read(bus, r)))
			})
		def(uint8(0x05+i<<3), fmt.Sprintf("DEC %s", r), NoOperand, regCycles(r, 4, 12), FlowNext,
			func(c *CPU, bus Bus, _ uint16) error {
				return c.write(bus, r, c.regs.dec(c.read(bus, r)))
			})
	}

	for i, op := range aluOps {
		for j := range 8 {
			r := Reg8(j)
			def(uint8(0x80+i<<3+j), op.name+r.String(), NoOperand, regCycles(r, 4, 8), FlowNext,
				func(c *CPU, bus Bus, _ uint16) error {
					op.execute(&c.regs, c.read(bus, r))
					return nil
				})
		}
		def(uint8(0xC6+i<<3), op.name+"d8", Immediate8, 8, FlowNext,
			func(c *CPU, _ Bus, operand uint16) error {
				op.execute(&c.regs, uint8(operand))
				return nil
			})
	}

	// 16-bit register pair increment and decrement do not affect the flags
	for i := range 4 {
		rr := Reg16(i)
		def(uint8(0x03+i<<4), fmt.Sprintf("INC %s", rr), NoOperand, 8, FlowNext,
			func(c *CPU, _ Bus, _ uint16) error {
				c.regs.Set16(rr, c.regs.Get16(rr)+1)
				return nil
			})
		def(uint8(0x0B+i<<4), fmt.Sprintf("DEC %s", rr), NoOperand, 8, FlowNext,
			func(c *CPU, _ Bus, _ uint16) error {
				c.regs.Set16(rr, c.regs.Get16(rr)-1)
				return nil
			})
		def(uint8(0x09+i<<4), fmt.Sprintf("ADD HL,%s", rr), NoOperand, 8, FlowNext,
			func(c *CPU, _ Bus, _ uint16) error {
				c.regs.SetHL(c.regs.addWord(c.regs.HL(), c.regs.Get16(rr)))
				return nil
			})
	}

	def(0xE8, "ADD SP,r8", Signed8, 16, FlowNext, func(c *CPU, _ Bus, operand uint16) error {
		c.regs.SP = c.regs.addSigned(c.regs.SP, uint8(operand))
		return nil
	})
	def(0x27, "DAA", NoOperand, 4, FlowNext, func(c *CPU, _ Bus, _ uint16) error {
		c.regs.daa()
		return nil
	})
	def(0x2F, "CPL", NoOperand, 4, FlowNext, func(c *CPU, _ Bus, _ uint16) error {
		c.regs.A = ^c.regs.A
		c.regs.SetFlag(FlagSubtract, true)
		c.regs.SetFlag(FlagHalfCarry, true)
		return nil
	})
	def(0x37, "SCF", NoOperand, 4, FlowNext, func(c *CPU, _ Bus, _ uint16) error {
		c.regs.SetFlag(FlagSubtract, false)
		c.regs.SetFlag(FlagHalfCarry, false)
		c.regs.SetFlag(FlagCarry, true)
		return nil
	})
	def(0x3F, "CCF", NoOperand, 4, FlowNext, func(c *CPU, _ Bus, _ uint16) error {
		c.regs.SetFlag(FlagSubtract, false)
		c.regs.SetFlag(FlagHalfCarry, false)
		c.regs.SetFlag(FlagCarry, !c.regs.Flag(FlagCarry))
		return nil
	})

	// accumulator rotates always clear the zero flag
	rotates := []struct {
		b      uint8
		name   string
		rotate func(r *Registers, value uint8) uint8
	}{
		{0x07, "RLCA", (*Registers).rlc},
		{0x0F, "RRCA", (*Registers).rrc},
		{0x17, "RLA", (*Registers).rl},
		{0x1F, "RRA", (*Registers).rr},
	}
	for _, rot := range rotates {
		def(rot.b, rot.name, NoOperand, 4, FlowNext, func(c *CPU, _ Bus, _ uint16) error {
			c.regs.A = rot.rotate(&c.regs, c.regs.A)
			c.regs.SetFlag(FlagZero, false)
			return nil
		})
	}
}

func defineControlFlow() {
	jumpRelative := func(c *CPU, operand uint16) {
		c.regs.PC += uint16(int8(operand))
	}
	call := func(c *CPU, bus Bus, target uint16) error {
		if err := c.push(bus, c.regs.PC); err != nil {
			return err
		}
		c.regs.PC = target
		return nil
	}

	def(0x18, "JR r8", Signed8, 8, FlowJump, func(c *CPU, _ Bus, operand uint16) error {
		jumpRelative(c, operand)
		return nil
	})
	def(0xC3, "JP a16", Immediate16, 12, FlowJump, func(c *CPU, _ Bus, operand uint16) error {
		c.regs.PC = operand
		return nil
	})
	def(0xE9, "JP (HL)", NoOperand, 4, FlowJump, func(c *CPU, _ Bus, _ uint16) error {
		c.regs.PC = c.regs.HL()
		return nil
	})
	def(0xCD, "CALL a16", Immediate16, 12, FlowCall, func(c *CPU, bus Bus, operand uint16) error {
		return call(c, bus, operand)
	})
	def(0xC9, "RET", NoOperand, 8, FlowReturn, func(c *CPU, bus Bus, _ uint16) error {
		c.regs.PC = c.pop(bus)
		return nil
	})
	def(0xD9, "RETI", NoOperand, 8, FlowReturn, func(c *CPU, bus Bus, _ uint16) error {
		c.regs.PC = c.pop(bus)
		c.ime = true
		c.enableDelay = 0
		return nil
	})

	for i := range 4 {
		cond := condition(i)
		name := conditionNames[cond]

		def(uint8(0x20+i<<3), fmt.Sprintf("JR %s,r8", name), Signed8, 8, FlowConditionalJump,
			func(c *CPU, _ Bus, operand uint16) error {
				if c.check(cond) {
					jumpRelative(c, operand)
				}
				return nil
			})
		def(uint8(0xC2+i<<3), fmt.Sprintf("JP %s,a16", name), Immediate16, 12, FlowConditionalJump,
			func(c *CPU, _ Bus, operand uint16) error {
				if c.check(cond) {
					c.regs.PC = operand
				}
				return nil
			})
		def(uint8(0xC4+i<<3), fmt.Sprintf("CALL %s,a16", name), Immediate16, 12, FlowCall,
			func(c *CPU, bus Bus, operand uint16) error {
				if c.check(cond) {
					return call(c, bus, operand)
				}
				return nil
			})
		def(uint8(0xC0+i<<3), fmt.Sprintf("RET %s", name), NoOperand, 8, FlowNext,
			func(c *CPU, bus Bus, _ uint16) error {
				if c.check(cond) {
					c.regs.PC = c.pop(bus)
				}
				return nil
			})
	}

	for i := range 8 {
		vector := uint16(i << 3)
		def(uint8(0xC7+i<<3), fmt.Sprintf("RST %02XH", vector), NoOperand, 32, FlowCall,
			func(c *CPU, bus Bus, _ uint16) error {
				return call(c, bus, vector)
			})
	}
}

func defineMisc() {
	def(0x00, "NOP", NoOperand, 4, FlowNext, func(*CPU, Bus, uint16) error {
		return nil
	})
	def(0x10, "STOP", Immediate8, 4, FlowNext, func(c *CPU, _ Bus, _ uint16) error {
		c.stopped = true
		c.halted = true
		c.logger.Debug("CPU stopped", log.Hex("pc", c.regs.PC))
		return nil
	})
	def(0x76, "HALT", NoOperand, 4, FlowNext, func(c *CPU, _ Bus, _ uint16) error {
		c.halted = true
		c.logger.Debug("CPU halted", log.Hex("pc", c.regs.PC))
		return nil
	})
	def(0xF3, "DI", NoOperand, 4, FlowNext, func(c *CPU, _ Bus, _ uint16) error {
		c.ime = false
		c.enableDelay = 0
		return nil
	})
	// EI takes effect after the instruction that follows it
	def(0xFB, "EI", NoOperand, 4, FlowNext, func(c *CPU, _ Bus, _ uint16) error {
		c.enableDelay = 2
		return nil
	})
	def(prefixCB, "PREFIX CB", NoOperand, prefixCycles, FlowNext, func(*CPU, Bus, uint16) error {
		return nil
	})
}
