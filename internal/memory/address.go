// Package memory implements the 16-bit address space of the console. Every access
// is classified into exactly one region and routed to the backing store of that
// region; cartridge controlled regions are delegated to a Mapper.
package memory

import "fmt"

// Address is a logical 16-bit bus address. Arithmetic on it wraps modulo 2^16
// the same way the address bus does.
type Address uint16

// NewAddress returns the address for n normalized modulo 65536.
func NewAddress(n int) Address {
	return Address(uint16(n))
}

// InRange returns whether the address is inside the inclusive range [start, end].
func (a Address) InRange(start, end Address) bool {
	return a >= start && a <= end
}

// String returns the address formatted as 4 hex digits.
func (a Address) String() string {
	return fmt.Sprintf("$%04X", uint16(a))
}
