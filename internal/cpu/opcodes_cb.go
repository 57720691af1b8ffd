package cpu

import "fmt"

// CB prefixed opcodes are fully regular: bits 6-7 select the group, bits 3-5
// the operation or bit number and bits 0-2 the operand.
func init() {
	shifts := [8]struct {
		name  string
		apply func(r *Registers, value uint8) uint8
	}{
		{"RLC", (*Registers).rlc},
		{"RRC", (*Registers).rrc},
		{"RL", (*Registers).rl},
		{"RR", (*Registers).rr},
		{"SLA", (*Registers).sla},
		{"SRA", (*Registers).sra},
		{"SWAP", (*Registers).swap},
		{"SRL", (*Registers).srl},
	}

	for op := range 256 {
		r := Reg8(op & 7)
		y := uint8(op >> 3 & 7)
		b := uint8(op)

		switch op >> 6 {
		case 0:
			shift := shifts[y]
			defCB(b, fmt.Sprintf("%s %s", shift.name, r), regCycles(r, 8, 16),
				func(c *CPU, bus Bus, _ uint16) error {
					return c.write(bus, r, shift.apply(&c.regs, c.read(bus, r)))
				})

		case 1:
			// BIT n,(HL) uses the 16 cycles of the classic CPU manual, hardware takes 12.
			defCB(b, fmt.Sprintf("BIT %d,%s", y, r), regCycles(r, 8, 16),
				func(c *CPU, bus Bus, _ uint16) error {
					c.regs.bit(y, c.read(bus, r))
					return nil
				})

		case 2:
			defCB(b, fmt.Sprintf("RES %d,%s", y, r), regCycles(r, 8, 16),
				func(c *CPU, bus Bus, _ uint16) error {
					return c.write(bus, r, c.read(bus, r)&^(1<<y))
				})

		case 3:
			defCB(b, fmt.Sprintf("SET %d,%s", y, r), regCycles(r, 8, 16),
				func(c *CPU, bus Bus, _ uint16) error {
					return c.write(bus, r, c.read(bus, r)|1<<y)
				})
		}
	}
}
