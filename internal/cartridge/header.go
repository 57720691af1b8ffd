package cartridge

import (
	"bytes"
	"fmt"
	"strings"
)

// Header field offsets.
const (
	logoOffset          = 0x104
	logoLength          = 0x30
	titleOffset         = 0x134
	titleLength         = 0x10
	typeOffset          = 0x147
	romSizeOffset       = 0x148
	ramSizeOffset       = 0x149
	headerChecksumStart = 0x134
	headerChecksumEnd   = 0x14C
	headerChecksumIndex = 0x14D
)

// Cartridge type codes that are recognized by the emulator.
const (
	TypeROMOnly        = 0x00
	TypeMBC1           = 0x01
	TypeMBC1RAM        = 0x02
	TypeMBC1RAMBattery = 0x03
)

var typeNames = map[uint8]string{
	0x00: "ROM only",
	0x01: "MBC1",
	0x02: "MBC1+RAM",
	0x03: "MBC1+RAM+BATTERY",
	0x05: "MBC2",
	0x06: "MBC2+BATTERY",
	0x08: "ROM+RAM",
	0x09: "ROM+RAM+BATTERY",
	0x0B: "MMM01",
	0x0C: "MMM01+RAM",
	0x0D: "MMM01+RAM+BATTERY",
	0x0F: "MBC3+TIMER+BATTERY",
	0x10: "MBC3+TIMER+RAM+BATTERY",
	0x11: "MBC3",
	0x12: "MBC3+RAM",
	0x13: "MBC3+RAM+BATTERY",
	0x19: "MBC5",
	0x1A: "MBC5+RAM",
	0x1B: "MBC5+RAM+BATTERY",
	0x1C: "MBC5+RUMBLE",
	0x1D: "MBC5+RUMBLE+RAM",
	0x1E: "MBC5+RUMBLE+RAM+BATTERY",
	0x20: "MBC6",
	0x22: "MBC7+SENSOR+RUMBLE+RAM+BATTERY",
	0xFC: "POCKET CAMERA",
	0xFD: "BANDAI TAMA5",
	0xFE: "HuC3",
	0xFF: "HuC1+RAM+BATTERY",
}

// RAM size code to byte count mapping.
var ramSizes = map[uint8]int{
	0x00: 0,
	0x01: 2 * 1024,
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

// Header contains the metadata of the cartridge header area.
type Header struct {
	Title    string
	Type     uint8
	ROMCode  uint8
	RAMCode  uint8
	Checksum uint8
	Logo     [logoLength]byte
}

func parseHeader(rom []byte) Header {
	h := Header{
		Title:    parseTitle(rom[titleOffset : titleOffset+titleLength]),
		Type:     rom[typeOffset],
		ROMCode:  rom[romSizeOffset],
		RAMCode:  rom[ramSizeOffset],
		Checksum: rom[headerChecksumIndex],
	}
	copy(h.Logo[:], rom[logoOffset:logoOffset+logoLength])
	return h
}

// parseTitle returns the printable part of the title field, which ends at the
// first zero byte. Newer cartridges reuse the last bytes for other codes.
func parseTitle(data []byte) string {
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	return strings.TrimRightFunc(string(data), func(r rune) bool {
		return r < 0x20 || r > 0x7E
	})
}

// TypeName returns the name of the cartridge controller.
func (h Header) TypeName() string {
	name, ok := typeNames[h.Type]
	if !ok {
		return fmt.Sprintf("unknown ($%02X)", h.Type)
	}
	return name
}

// ROMSize returns the ROM size in bytes declared by the header.
func (h Header) ROMSize() int {
	if h.ROMCode > 8 {
		return 0
	}
	return 32 * 1024 << h.ROMCode
}

// RAMSize returns the cartridge RAM size in bytes declared by the header.
func (h Header) RAMSize() int {
	return ramSizes[h.RAMCode]
}

// HasBattery returns whether the cartridge RAM is battery backed.
func (h Header) HasBattery() bool {
	return strings.HasSuffix(h.TypeName(), "BATTERY")
}

// ValidLogo returns whether the header contains the boot logo that the boot ROM
// compares against.
func (h Header) ValidLogo() bool {
	return h.Logo == nintendoLogo
}

// HeaderChecksum calculates the checksum over the header bytes 0x134-0x14C.
func HeaderChecksum(rom []byte) uint8 {
	var x uint8
	for _, b := range rom[headerChecksumStart : headerChecksumEnd+1] {
		x = x - b - 1
	}
	return x
}

// ValidChecksum returns whether the header checksum matches the image.
func (c *Cartridge) ValidChecksum() bool {
	return HeaderChecksum(c.ROM) == c.Header.Checksum
}
