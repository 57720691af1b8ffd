package cpu

// carryBit returns the carry flag as number if the operation uses it.
func (r *Registers) carryBit(useCarry bool) uint8 {
	if useCarry && r.Flag(FlagCarry) {
		return 1
	}
	return 0
}

// add returns a+b, plus the carry flag for ADC, and sets all flags.
func (r *Registers) add(a, b uint8, useCarry bool) uint8 {
	carry := r.carryBit(useCarry)
	sum := uint16(a) + uint16(b) + uint16(carry)
	result := uint8(sum)
	r.setFlags(result == 0, false, (a&0x0F)+(b&0x0F)+carry > 0x0F, sum > 0xFF)
	return result
}

// sub returns a-b, minus the carry flag for SBC, and sets all flags.
func (r *Registers) sub(a, b uint8, useCarry bool) uint8 {
	carry := r.carryBit(useCarry)
	result := a - b - carry
	r.setFlags(result == 0, true, a&0x0F < (b&0x0F)+carry, uint16(a) < uint16(b)+uint16(carry))
	return result
}

func (r *Registers) and(a, b uint8) uint8 {
	result := a & b
	r.setFlags(result == 0, false, true, false)
	return result
}

func (r *Registers) xor(a, b uint8) uint8 {
	result := a ^ b
	r.setFlags(result == 0, false, false, false)
	return result
}

func (r *Registers) or(a, b uint8) uint8 {
	result := a | b
	r.setFlags(result == 0, false, false, false)
	return result
}

// inc increments an 8-bit value, the carry flag is not affected.
func (r *Registers) inc(value uint8) uint8 {
	result := value + 1
	r.SetFlag(FlagZero, result == 0)
	r.SetFlag(FlagSubtract, false)
	r.SetFlag(FlagHalfCarry, value&0x0F == 0x0F)
	return result
}

// dec decrements an 8-bit value, the carry flag is not affected.
func (r *Registers) dec(value uint8) uint8 {
	result := value - 1
	r.SetFlag(FlagZero, result == 0)
	r.SetFlag(FlagSubtract, true)
	r.SetFlag(FlagHalfCarry, value&0x0F == 0)
	return result
}

// addWord returns a+b for ADD HL,rr. The zero flag is not affected, half carry
// and carry come from bit 11 and bit 15.
func (r *Registers) addWord(a, b uint16) uint16 {
	sum := uint32(a) + uint32(b)
	r.SetFlag(FlagSubtract, false)
	r.SetFlag(FlagHalfCarry, (a&0x0FFF)+(b&0x0FFF) > 0x0FFF)
	r.SetFlag(FlagCarry, sum > 0xFFFF)
	return uint16(sum)
}

// addSigned returns SP plus a signed displacement for ADD SP,r8 and
// LD HL,SP+r8. The flags are calculated on the low byte as unsigned addition.
func (r *Registers) addSigned(value uint16, offset uint8) uint16 {
	e := uint16(int8(offset))
	r.setFlags(false, false, (value&0x0F)+(e&0x0F) > 0x0F, (value&0xFF)+(e&0xFF) > 0xFF)
	return value + e
}

// daa adjusts the accumulator to packed BCD after an addition or subtraction.
func (r *Registers) daa() {
	a := r.A
	carry := r.Flag(FlagCarry)

	if !r.Flag(FlagSubtract) {
		if carry || a > 0x99 {
			a += 0x60
			carry = true
		}
		if r.Flag(FlagHalfCarry) || a&0x0F > 0x09 {
			a += 0x06
		}
	} else {
		if carry {
			a -= 0x60
		}
		if r.Flag(FlagHalfCarry) {
			a -= 0x06
		}
	}

	r.A = a
	r.SetFlag(FlagZero, a == 0)
	r.SetFlag(FlagHalfCarry, false)
	r.SetFlag(FlagCarry, carry)
}

// shiftFlags sets the flags of the rotate and shift instructions.
func (r *Registers) shiftFlags(result uint8, carry bool) uint8 {
	r.setFlags(result == 0, false, false, carry)
	return result
}

// rlc rotates left, bit 7 goes to carry and bit 0.
func (r *Registers) rlc(value uint8) uint8 {
	return r.shiftFlags(value<<1|value>>7, value&0x80 != 0)
}

// rrc rotates right, bit 0 goes to carry and bit 7.
func (r *Registers) rrc(value uint8) uint8 {
	return r.shiftFlags(value>>1|value<<7, value&0x01 != 0)
}

// rl rotates left through the carry flag.
func (r *Registers) rl(value uint8) uint8 {
	return r.shiftFlags(value<<1|r.carryBit(true), value&0x80 != 0)
}

// rr rotates right through the carry flag.
func (r *Registers) rr(value uint8) uint8 {
	return r.shiftFlags(value>>1|r.carryBit(true)<<7, value&0x01 != 0)
}

func (r *Registers) sla(value uint8) uint8 {
	return r.shiftFlags(value<<1, value&0x80 != 0)
}

// sra shifts right and keeps bit 7.
func (r *Registers) sra(value uint8) uint8 {
	return r.shiftFlags(value>>1|value&0x80, value&0x01 != 0)
}

func (r *Registers) swap(value uint8) uint8 {
	return r.shiftFlags(value<<4|value>>4, false)
}

func (r *Registers) srl(value uint8) uint8 {
	return r.shiftFlags(value>>1, value&0x01 != 0)
}

// bit tests a bit, the carry flag is not affected.
func (r *Registers) bit(n, value uint8) {
	r.SetFlag(FlagZero, value&(1<<n) == 0)
	r.SetFlag(FlagSubtract, false)
	r.SetFlag(FlagHalfCarry, true)
}
