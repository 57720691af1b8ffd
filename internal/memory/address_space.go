package memory

import (
	"github.com/retroenv/retrogolib/log"
)

const (
	workRAMSize = 0x2000
	highRAMSize = 0x80
)

// AddressSpace is the system bus. It owns the work RAM, the high RAM and the
// interrupt enable register and forwards the cartridge regions to the mapper.
// Regions that are not emulated read as 0 and discard writes.
type AddressSpace struct {
	logger *log.Logger
	rom    []byte
	mapper Mapper

	workRAM         [workRAMSize]uint8
	highRAM         [highRAMSize]uint8
	interruptEnable uint8
	serial          serialPort
}

// New returns a new address space for the given cartridge image and mapper.
func New(logger *log.Logger, rom []byte, mapper Mapper) *AddressSpace {
	return &AddressSpace{
		logger: logger,
		rom:    rom,
		mapper: mapper,
		serial: serialPort{logger: logger},
	}
}

// Read returns the byte at the address.
func (s *AddressSpace) Read(address Address) uint8 {
	switch RegionOf(address) {
	case RegionROMBank0:
		if int(address) >= len(s.rom) {
			return 0xFF
		}
		return s.rom[address]

	case RegionROMBankSwitchable, RegionExternalRAM:
		return s.mapper.Read(s.rom, address)

	case RegionWorkRAM:
		return s.workRAM[address-WorkRAMStart]

	case RegionEchoRAM:
		return s.workRAM[address-EchoRAMStart]

	case RegionHighRAM:
		return s.highRAM[address-HighRAMStart]

	case RegionInterruptEnable:
		return s.interruptEnable

	default:
		return 0
	}
}

// Write stores the byte at the address. Writes into the cartridge regions are
// handled by the mapper, which returns an error for writes it does not support.
func (s *AddressSpace) Write(address Address, value uint8) error {
	switch RegionOf(address) {
	case RegionROMBank0, RegionROMBankSwitchable, RegionExternalRAM:
		return s.mapper.Write(s.rom, address, value)

	case RegionWorkRAM:
		s.workRAM[address-WorkRAMStart] = value

	case RegionEchoRAM:
		s.workRAM[address-EchoRAMStart] = value

	case RegionHighRAM:
		s.highRAM[address-HighRAMStart] = value

	case RegionInterruptEnable:
		s.interruptEnable = value

	case RegionSerial:
		s.serial.write(value)
	}
	return nil
}

// ReadWord returns the little-endian 16-bit value at the address. The two bytes
// are read individually, so a word can straddle two regions.
func (s *AddressSpace) ReadWord(address Address) uint16 {
	low := s.Read(address)
	high := s.Read(address + 1)
	return uint16(high)<<8 | uint16(low)
}

// WriteWord stores the 16-bit value in little-endian order.
func (s *AddressSpace) WriteWord(address Address, value uint16) error {
	if err := s.Write(address, uint8(value)); err != nil {
		return err
	}
	return s.Write(address+1, uint8(value>>8))
}

// SerialLines returns all complete lines that were written to the serial port.
func (s *AddressSpace) SerialLines() []string {
	return s.serial.lines
}

// SerialPending returns the characters of the current unterminated serial line.
func (s *AddressSpace) SerialPending() string {
	return s.serial.line.String()
}

// Mapper returns the cartridge controller of the address space.
func (s *AddressSpace) Mapper() Mapper {
	return s.mapper
}
