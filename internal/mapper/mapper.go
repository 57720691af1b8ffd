// Package mapper implements the cartridge controllers that serve the switchable
// ROM and RAM regions of the address space.
package mapper

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrogb/internal/cartridge"
	"github.com/retroenv/retrogb/internal/memory"
	"github.com/retroenv/retrogolib/log"
)

var (
	// ErrUnsupportedCartridgeType is returned for cartridge type codes that have
	// no controller implementation.
	ErrUnsupportedCartridgeType = errors.New("unsupported cartridge type")
	// ErrUnmappedWrite is returned for writes that the controller does not handle.
	ErrUnmappedWrite = errors.New("unmapped mapper write")
)

const (
	romBankSize = 0x4000
	ramBankSize = 0x2000
)

// Mapper is a cartridge controller.
type Mapper interface {
	memory.Mapper

	// Name returns the controller name.
	Name() string
	// ROMBank returns the bank that is mapped into the switchable ROM region.
	ROMBank() int
	// Close releases the cartridge RAM backing, persisting it if it is battery backed.
	Close() error
}

// Options configures the mapper creation.
type Options struct {
	// SavePath is the file that battery backed cartridge RAM is persisted to.
	// If empty, cartridge RAM is only held in memory.
	SavePath string
}

// New returns the controller for the cartridge type of the header.
func New(logger *log.Logger, cart *cartridge.Cartridge, opts Options) (Mapper, error) {
	switch cart.Header.Type {
	case cartridge.TypeROMOnly:
		return newROMOnly(), nil

	case cartridge.TypeMBC1, cartridge.TypeMBC1RAM, cartridge.TypeMBC1RAMBattery:
		ram, err := newCartridgeRAM(cart, opts)
		if err != nil {
			return nil, fmt.Errorf("creating cartridge RAM: %w", err)
		}
		return newMBC1(logger, cart.ROMBanks(), ram), nil

	default:
		return nil, fmt.Errorf("%w: $%02X (%s)", ErrUnsupportedCartridgeType, cart.Header.Type, cart.Header.TypeName())
	}
}

func newCartridgeRAM(cart *cartridge.Cartridge, opts Options) (ram, error) {
	size := cart.Header.RAMSize()
	if cart.Header.Type == cartridge.TypeMBC1 {
		size = 0
	}
	if size == 0 {
		return memoryRAM(nil), nil
	}

	if opts.SavePath == "" || !cart.Header.HasBattery() {
		return make(memoryRAM, size), nil
	}
	battery, err := openBatteryRAM(opts.SavePath, size)
	if err != nil {
		return nil, err
	}
	return battery, nil
}

func unmappedWrite(address memory.Address, value uint8) error {
	return fmt.Errorf("%w: address %s value $%02X", ErrUnmappedWrite, address, value)
}
