package mapper

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogb/internal/cartridge"
	"github.com/retroenv/retrogb/internal/memory"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// testCartridge returns a cartridge whose banks are filled with their bank number.
func testCartridge(t *testing.T, cartType, ramCode uint8, banks int) *cartridge.Cartridge {
	t.Helper()

	rom := make([]byte, banks*romBankSize)
	for i := range rom {
		rom[i] = uint8(i / romBankSize)
	}
	rom[0x147] = cartType
	rom[0x149] = ramCode

	cart, err := cartridge.New(rom)
	assert.NoError(t, err)
	return cart
}

func TestNew(t *testing.T) {
	logger := log.NewTestLogger(t)

	tests := []struct {
		name     string
		cartType uint8
		mapper   string
		wantErr  bool
	}{
		{"rom only", cartridge.TypeROMOnly, "ROM only", false},
		{"mbc1", cartridge.TypeMBC1, "MBC1", false},
		{"mbc1 ram", cartridge.TypeMBC1RAM, "MBC1", false},
		{"mbc1 ram battery", cartridge.TypeMBC1RAMBattery, "MBC1", false},
		{"mbc3", 0x13, "", true},
		{"mbc5", 0x19, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := testCartridge(t, tt.cartType, 0x02, 4)
			m, err := New(logger, cart, Options{})
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnsupportedCartridgeType))
				assert.ErrorContains(t, err, "$")
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.mapper, m.Name())
			assert.NoError(t, m.Close())
		})
	}
}

func TestROMOnly(t *testing.T) {
	cart := testCartridge(t, cartridge.TypeROMOnly, 0, 2)
	m, err := New(log.NewTestLogger(t), cart, Options{})
	assert.NoError(t, err)

	assert.Equal(t, uint8(1), m.Read(cart.ROM, 0x4000))
	assert.NoError(t, m.Write(cart.ROM, 0x2000, 0x05))
	assert.Equal(t, uint8(1), m.Read(cart.ROM, 0x7FFF))
	assert.NoError(t, m.Write(cart.ROM, 0xA000, 0x05))
	assert.Equal(t, uint8(0), m.Read(cart.ROM, 0xA000))

	err = m.Write(cart.ROM, 0xC000, 0x05)
	assert.True(t, errors.Is(err, ErrUnmappedWrite))
}

func TestMBC1BankZeroSelectsBankOne(t *testing.T) {
	cart := testCartridge(t, cartridge.TypeMBC1, 0, 8)
	m := newMBC1(log.NewTestLogger(t), cart.ROMBanks(), memoryRAM(nil))

	assert.NoError(t, m.Write(cart.ROM, 0x2000, 0x01))
	one := [2]uint8{m.Read(cart.ROM, 0x4000), m.Read(cart.ROM, 0x7FFF)}

	assert.NoError(t, m.Write(cart.ROM, 0x2000, 0x00))
	zero := [2]uint8{m.Read(cart.ROM, 0x4000), m.Read(cart.ROM, 0x7FFF)}

	assert.Equal(t, one, zero)
	assert.Equal(t, 1, m.ROMBank())
}

func TestMBC1ROMBankSwitching(t *testing.T) {
	cart := testCartridge(t, cartridge.TypeMBC1, 0, 8)
	m := newMBC1(log.NewTestLogger(t), cart.ROMBanks(), memoryRAM(nil))

	tests := []struct {
		value uint8
		bank  int
	}{
		{0x02, 2},
		{0x07, 7},
		{0x09, 1}, // wrapped to the bank count
		{0xE3, 3}, // masked to 5 bits
		{0x20, 1}, // masked to 0
	}

	for _, tt := range tests {
		assert.NoError(t, m.Write(cart.ROM, 0x3FFF, tt.value))
		assert.Equal(t, tt.bank, m.ROMBank())
		assert.Equal(t, uint8(tt.bank), m.Read(cart.ROM, 0x5000))
	}
}

func TestMBC1SecondaryRegister(t *testing.T) {
	cart := testCartridge(t, cartridge.TypeMBC1RAM, 0x03, 64)
	m, err := New(log.NewTestLogger(t), cart, Options{})
	assert.NoError(t, err)
	mbc1 := m.(*MBC1)

	assert.NoError(t, m.Write(cart.ROM, 0x2000, 0x01))
	assert.NoError(t, m.Write(cart.ROM, 0x4000, 0x01))
	assert.Equal(t, Mode16MROM8KRAM, mbc1.Mode())
	assert.Equal(t, 0x21, m.ROMBank())
	assert.Equal(t, uint8(0x21), m.Read(cart.ROM, 0x4000))
	assert.Equal(t, 0, mbc1.RAMBank())

	assert.NoError(t, m.Write(cart.ROM, 0x6000, 0x01))
	assert.Equal(t, Mode4MROM32KRAM, mbc1.Mode())
	assert.Equal(t, 0x01, m.ROMBank())
	assert.Equal(t, 1, mbc1.RAMBank())
}

func TestMBC1RAM(t *testing.T) {
	cart := testCartridge(t, cartridge.TypeMBC1RAM, 0x03, 4)
	m, err := New(log.NewTestLogger(t), cart, Options{})
	assert.NoError(t, err)
	mbc1 := m.(*MBC1)

	// disabled RAM discards writes and reads 0
	assert.NoError(t, m.Write(cart.ROM, 0xA000, 0x55))
	assert.Equal(t, uint8(0), m.Read(cart.ROM, 0xA000))

	assert.NoError(t, m.Write(cart.ROM, 0x0000, 0x0A))
	assert.True(t, mbc1.RAMEnabled())
	assert.NoError(t, m.Write(cart.ROM, 0xA000, 0x55))
	assert.Equal(t, uint8(0x55), m.Read(cart.ROM, 0xA000))

	// bank 1 in 32K RAM mode is a different page
	assert.NoError(t, m.Write(cart.ROM, 0x6000, 0x01))
	assert.NoError(t, m.Write(cart.ROM, 0x4000, 0x01))
	assert.Equal(t, uint8(0), m.Read(cart.ROM, 0xA000))
	assert.NoError(t, m.Write(cart.ROM, 0x4000, 0x00))
	assert.Equal(t, uint8(0x55), m.Read(cart.ROM, 0xA000))

	assert.NoError(t, m.Write(cart.ROM, 0x1000, 0x00))
	assert.False(t, mbc1.RAMEnabled())
	assert.Equal(t, uint8(0), m.Read(cart.ROM, 0xA000))
}

func TestMBC1WithoutRAM(t *testing.T) {
	cart := testCartridge(t, cartridge.TypeMBC1, 0x03, 4)
	m, err := New(log.NewTestLogger(t), cart, Options{})
	assert.NoError(t, err)

	assert.NoError(t, m.Write(cart.ROM, 0x0000, 0x0A))
	assert.NoError(t, m.Write(cart.ROM, 0xB000, 0x12))
	assert.Equal(t, uint8(0), m.Read(cart.ROM, 0xB000))
}

func TestMBC1UnmappedWrite(t *testing.T) {
	cart := testCartridge(t, cartridge.TypeMBC1, 0, 4)
	m := newMBC1(log.NewTestLogger(t), cart.ROMBanks(), memoryRAM(nil))

	err := m.Write(cart.ROM, memory.Address(0x8000), 0x12)
	assert.True(t, errors.Is(err, ErrUnmappedWrite))
	assert.ErrorContains(t, err, "address $8000 value $12")
}

func TestBatteryRAMPersists(t *testing.T) {
	logger := log.NewTestLogger(t)
	cart := testCartridge(t, cartridge.TypeMBC1RAMBattery, 0x02, 4)
	opts := Options{SavePath: filepath.Join(t.TempDir(), "test.sav")}

	m, err := New(logger, cart, opts)
	assert.NoError(t, err)
	assert.NoError(t, m.Write(cart.ROM, 0x0000, 0x0A))
	assert.NoError(t, m.Write(cart.ROM, 0xA123, 0x99))
	assert.NoError(t, m.Close())

	m, err = New(logger, cart, opts)
	assert.NoError(t, err)
	assert.NoError(t, m.Write(cart.ROM, 0x0000, 0x0A))
	assert.Equal(t, uint8(0x99), m.Read(cart.ROM, 0xA123))
	assert.NoError(t, m.Close())
}
