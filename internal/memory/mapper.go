package memory

// Mapper is a cartridge controller. It serves the switchable ROM bank and the
// switchable RAM regions and receives all writes into the ROM address range,
// which it interprets as commands.
type Mapper interface {
	// Read returns the byte at the address of the switchable ROM or RAM region.
	Read(rom []byte, address Address) uint8
	// Write handles a controller command or a cartridge RAM store.
	Write(rom []byte, address Address, value uint8) error
}
