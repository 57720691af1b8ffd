// Package cartridge parses cartridge images and their header.
package cartridge

import (
	"errors"
	"fmt"
	"io"
)

// MinimumSize is the smallest image that contains a complete header.
const MinimumSize = 0x150

// EntryPoint is the address that execution starts at after the boot ROM.
const EntryPoint = 0x0100

var errImageTooSmall = errors.New("image too small")

// Cartridge is a loaded cartridge image.
type Cartridge struct {
	ROM    []byte
	Header Header
}

// New parses the header of the given image. The image is referenced, not copied.
func New(rom []byte) (*Cartridge, error) {
	if len(rom) < MinimumSize {
		return nil, fmt.Errorf("%w: %d bytes, expected at least %d", errImageTooSmall, len(rom), MinimumSize)
	}

	cart := &Cartridge{
		ROM:    rom,
		Header: parseHeader(rom),
	}
	return cart, nil
}

// LoadFile reads a complete cartridge image from the reader.
func LoadFile(reader io.Reader) (*Cartridge, error) {
	rom, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return New(rom)
}

// ROMBanks returns the number of 16 KiB banks of the image, based on the
// actual image length. It is at least 2.
func (c *Cartridge) ROMBanks() int {
	banks := (len(c.ROM) + 0x3FFF) / 0x4000
	return max(banks, 2)
}
