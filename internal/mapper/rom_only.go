package mapper

import "github.com/retroenv/retrogb/internal/memory"

// romOnly is a cartridge without controller. The image is mapped as is and
// writes into the cartridge regions are ignored.
type romOnly struct{}

func newROMOnly() *romOnly {
	return &romOnly{}
}

func (m *romOnly) Name() string { return "ROM only" }

func (m *romOnly) ROMBank() int { return 1 }

func (m *romOnly) Close() error { return nil }

func (m *romOnly) Read(rom []byte, address memory.Address) uint8 {
	if address.InRange(memory.ROMBankStart, memory.ROMBankEnd) && int(address) < len(rom) {
		return rom[address]
	}
	if address.InRange(memory.ExternalRAMStart, memory.ExternalRAMEnd) {
		return 0
	}
	return 0xFF
}

func (m *romOnly) Write(_ []byte, address memory.Address, value uint8) error {
	if address.InRange(memory.ROMBank0Start, memory.ROMBankEnd) ||
		address.InRange(memory.ExternalRAMStart, memory.ExternalRAMEnd) {
		return nil
	}
	return unmappedWrite(address, value)
}
