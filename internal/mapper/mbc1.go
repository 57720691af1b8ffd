package mapper

import (
	"github.com/retroenv/retrogb/internal/memory"
	"github.com/retroenv/retrogolib/log"
)

// Mode is the banking mode of the MBC1 controller.
type Mode uint8

const (
	// Mode16MROM8KRAM uses the secondary bank register as ROM bank bits 5-6.
	Mode16MROM8KRAM Mode = iota
	// Mode4MROM32KRAM uses the secondary bank register as RAM bank number.
	Mode4MROM32KRAM
)

// MBC1 command address ranges.
const (
	ramEnableEnd     memory.Address = 0x1FFF
	romBankStart     memory.Address = 0x2000
	romBankEnd       memory.Address = 0x3FFF
	secondaryStart   memory.Address = 0x4000
	secondaryEnd     memory.Address = 0x5FFF
	modeSelectStart  memory.Address = 0x6000
	modeSelectEnd    memory.Address = 0x7FFF
	romBankMask                     = 0x1F
	secondaryMask                   = 0x03
	ramEnableValue                  = 0x0A
	secondaryBankLSB                = 5
)

// MBC1 is the memory bank controller 1.
type MBC1 struct {
	logger   *log.Logger
	romBanks int
	ram      ram

	ramEnabled bool
	romBank    uint8 // lower 5 bits of the ROM bank, never 0
	secondary  uint8 // 2 bit register, ROM bank bits 5-6 or RAM bank
	mode       Mode
}

func newMBC1(logger *log.Logger, romBanks int, ram ram) *MBC1 {
	return &MBC1{
		logger:   logger,
		romBanks: romBanks,
		ram:      ram,
		romBank:  1,
	}
}

// Name returns the controller name.
func (m *MBC1) Name() string { return "MBC1" }

// Mode returns the current banking mode.
func (m *MBC1) Mode() Mode { return m.mode }

// RAMEnabled returns whether the cartridge RAM is accessible.
func (m *MBC1) RAMEnabled() bool { return m.ramEnabled }

// ROMBank returns the bank that is mapped into the switchable ROM region.
func (m *MBC1) ROMBank() int {
	bank := int(m.romBank)
	if m.mode == Mode16MROM8KRAM {
		bank |= int(m.secondary) << secondaryBankLSB
	}
	return bank % m.romBanks
}

// RAMBank returns the bank that is mapped into the switchable RAM region.
func (m *MBC1) RAMBank() int {
	if m.mode == Mode4MROM32KRAM {
		return int(m.secondary)
	}
	return 0
}

// Close releases the cartridge RAM.
func (m *MBC1) Close() error {
	return m.ram.close()
}

// Read returns a byte of the switchable ROM bank or of the cartridge RAM.
// Disabled or missing cartridge RAM reads as 0.
func (m *MBC1) Read(rom []byte, address memory.Address) uint8 {
	switch {
	case address.InRange(memory.ROMBankStart, memory.ROMBankEnd):
		offset := m.ROMBank()*romBankSize + int(address-memory.ROMBankStart)
		if offset >= len(rom) {
			return 0xFF
		}
		return rom[offset]

	case address.InRange(memory.ExternalRAMStart, memory.ExternalRAMEnd):
		offset, ok := m.ramOffset(address)
		if !ok {
			return 0
		}
		return m.ram.bytes()[offset]

	default:
		return 0xFF
	}
}

// Write handles the controller commands and cartridge RAM stores.
func (m *MBC1) Write(_ []byte, address memory.Address, value uint8) error {
	switch {
	case address <= ramEnableEnd:
		m.ramEnabled = value&0x0F == ramEnableValue

	case address.InRange(romBankStart, romBankEnd):
		bank := value & romBankMask
		if bank == 0 {
			bank = 1
		}
		m.romBank = bank
		m.logger.Debug("Switched ROM bank", log.Int("bank", m.ROMBank()))

	case address.InRange(secondaryStart, secondaryEnd):
		m.secondary = value & secondaryMask

	case address.InRange(modeSelectStart, modeSelectEnd):
		m.mode = Mode(value & 1)
		m.logger.Debug("Switched banking mode", log.Uint8("mode", uint8(m.mode)))

	case address.InRange(memory.ExternalRAMStart, memory.ExternalRAMEnd):
		if offset, ok := m.ramOffset(address); ok {
			m.ram.bytes()[offset] = value
		}

	default:
		return unmappedWrite(address, value)
	}
	return nil
}

func (m *MBC1) ramOffset(address memory.Address) (int, bool) {
	data := m.ram.bytes()
	if !m.ramEnabled || len(data) == 0 {
		return 0, false
	}
	offset := m.RAMBank()*ramBankSize + int(address-memory.ExternalRAMStart)
	return offset % len(data), true
}
