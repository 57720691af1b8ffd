// Package cpu implements the LR35902 processor: the register file, the primary
// and the CB prefixed opcode tables, the instruction decoder and the
// fetch-decode-execute step.
package cpu

import (
	"fmt"

	"github.com/retroenv/retrogb/internal/memory"
	"github.com/retroenv/retrogolib/log"
)

// haltCycles is the cost of a step while the CPU is halted.
const haltCycles = 4

// Reader provides read access to the address space.
type Reader interface {
	Read(address memory.Address) uint8
}

// Bus is the address space as seen by the CPU.
type Bus interface {
	Reader
	Write(address memory.Address, value uint8) error
	ReadWord(address memory.Address) uint16
	WriteWord(address memory.Address, value uint16) error
}

// Tracer gets called for every instruction before it is executed.
type Tracer interface {
	Trace(regs *Registers, ins Instruction)
}

// CPU is the processor state.
type CPU struct {
	logger *log.Logger
	tracer Tracer

	regs Registers

	ime          bool // interrupt master enable
	enableDelay  int  // steps until a pending EI takes effect
	halted       bool
	stopped      bool
	cycles       uint64
	instructions uint64
}

// New returns a CPU in its reset state.
func New(logger *log.Logger) *CPU {
	return &CPU{
		logger: logger,
		regs:   NewRegisters(),
		ime:    true,
	}
}

// SetTracer sets the tracer to call for every executed instruction.
func (c *CPU) SetTracer(tracer Tracer) {
	c.tracer = tracer
}

// Registers returns the register file.
func (c *CPU) Registers() *Registers {
	return &c.regs
}

// InterruptsEnabled returns the interrupt master enable flag.
func (c *CPU) InterruptsEnabled() bool {
	return c.ime
}

// Halted returns whether a HALT or STOP instruction parked the CPU.
func (c *CPU) Halted() bool {
	return c.halted
}

// Stopped returns whether a STOP instruction parked the CPU.
func (c *CPU) Stopped() bool {
	return c.stopped
}

// Cycles returns the total cost of all executed steps.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// Instructions returns the number of executed instructions.
func (c *CPU) Instructions() uint64 {
	return c.instructions
}

// Step decodes the instruction at PC, advances PC past it, executes it and
// returns its cycle cost. A halted CPU does not fetch anything.
func (c *CPU) Step(bus Bus) (int, error) {
	if c.halted {
		c.cycles += haltCycles
		return haltCycles, nil
	}

	ins, err := Decode(bus, memory.Address(c.regs.PC))
	if err != nil {
		return 0, err
	}
	if c.tracer != nil {
		c.tracer.Trace(&c.regs, ins)
	}

	c.regs.PC += uint16(ins.Length())
	if err := ins.Opcode.exec(c, bus, ins.Operand); err != nil {
		return 0, fmt.Errorf("executing '%s' at %s: %w", ins, ins.Address, err)
	}

	if c.enableDelay > 0 {
		c.enableDelay--
		if c.enableDelay == 0 {
			c.ime = true
		}
	}

	cycles := ins.Cycles()
	c.cycles += uint64(cycles)
	c.instructions++
	return cycles, nil
}

// read returns the value of the operand selector.
func (c *CPU) read(bus Bus, r Reg8) uint8 {
	if r == RegHLIndirect {
		return bus.Read(memory.Address(c.regs.HL()))
	}
	return c.regs.Get(r)
}

// write sets the value of the operand selector.
func (c *CPU) write(bus Bus, r Reg8, value uint8) error {
	if r == RegHLIndirect {
		return bus.Write(memory.Address(c.regs.HL()), value)
	}
	c.regs.Set(r, value)
	return nil
}

// push decrements SP by 2 and stores the value at the new SP.
func (c *CPU) push(bus Bus, value uint16) error {
	c.regs.SP -= 2
	return bus.WriteWord(memory.Address(c.regs.SP), value)
}

// pop reads the value at SP and increments SP by 2.
func (c *CPU) pop(bus Bus) uint16 {
	value := bus.ReadWord(memory.Address(c.regs.SP))
	c.regs.SP += 2
	return value
}

// condition is a flag test of a conditional instruction.
type condition uint8

const (
	condNZ condition = iota
	condZ
	condNC
	condC
)

var conditionNames = [...]string{"NZ", "Z", "NC", "C"}

func (c *CPU) check(cond condition) bool {
	switch cond {
	case condNZ:
		return !c.regs.Flag(FlagZero)
	case condZ:
		return c.regs.Flag(FlagZero)
	case condNC:
		return !c.regs.Flag(FlagCarry)
	default:
		return c.regs.Flag(FlagCarry)
	}
}
