package memory

// Region is a logical area of the address space.
type Region int

// Regions of the address space, see RegionOf for the boundaries.
const (
	RegionROMBank0 Region = iota
	RegionROMBankSwitchable
	RegionVideoRAM
	RegionExternalRAM
	RegionWorkRAM
	RegionEchoRAM
	RegionOAM
	RegionUnusable
	RegionIO
	RegionSerial
	RegionHighRAM
	RegionInterruptEnable
)

// Region boundaries, all inclusive.
const (
	ROMBank0Start          Address = 0x0000
	ROMBank0End            Address = 0x3FFF
	ROMBankStart           Address = 0x4000
	ROMBankEnd             Address = 0x7FFF
	VideoRAMStart          Address = 0x8000
	VideoRAMEnd            Address = 0x9FFF
	ExternalRAMStart       Address = 0xA000
	ExternalRAMEnd         Address = 0xBFFF
	WorkRAMStart           Address = 0xC000
	WorkRAMEnd             Address = 0xDFFF
	EchoRAMStart           Address = 0xE000
	EchoRAMEnd             Address = 0xFDFF
	OAMStart               Address = 0xFE00
	OAMEnd                 Address = 0xFE9F
	UnusableStart          Address = 0xFEA0
	UnusableEnd            Address = 0xFEFF
	IOStart                Address = 0xFF00
	IOEnd                  Address = 0xFF4B
	IOUnusableStart        Address = 0xFF4C
	IOUnusableEnd          Address = 0xFF7F
	HighRAMStart           Address = 0xFF80
	HighRAMEnd             Address = 0xFFFE
	SerialDataAddress      Address = 0xFF01
	InterruptEnableAddress Address = 0xFFFF
)

var regionNames = [...]string{
	RegionROMBank0:          "ROM bank 0",
	RegionROMBankSwitchable: "switchable ROM bank",
	RegionVideoRAM:          "video RAM",
	RegionExternalRAM:       "switchable RAM",
	RegionWorkRAM:           "work RAM",
	RegionEchoRAM:           "work RAM echo",
	RegionOAM:               "object attribute memory",
	RegionUnusable:          "unusable",
	RegionIO:                "I/O registers",
	RegionSerial:            "serial port",
	RegionHighRAM:           "high RAM",
	RegionInterruptEnable:   "interrupt enable register",
}

// String returns the name of the region.
func (r Region) String() string {
	if r < 0 || int(r) >= len(regionNames) {
		return "unknown"
	}
	return regionNames[r]
}

// RegionOf classifies the address. The cases are checked in decode priority
// order, highest addresses first, so that the single byte registers inside the
// I/O block take precedence over the block itself.
func RegionOf(address Address) Region {
	switch {
	case address == InterruptEnableAddress:
		return RegionInterruptEnable
	case address >= HighRAMStart:
		return RegionHighRAM
	case address >= IOUnusableStart:
		return RegionUnusable
	case address == SerialDataAddress:
		return RegionSerial
	case address >= IOStart:
		return RegionIO
	case address >= UnusableStart:
		return RegionUnusable
	case address >= OAMStart:
		return RegionOAM
	case address >= EchoRAMStart:
		return RegionEchoRAM
	case address >= WorkRAMStart:
		return RegionWorkRAM
	case address >= ExternalRAMStart:
		return RegionExternalRAM
	case address >= VideoRAMStart:
		return RegionVideoRAM
	case address >= ROMBankStart:
		return RegionROMBankSwitchable
	default:
		return RegionROMBank0
	}
}
