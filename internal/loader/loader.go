// Package loader handles cartridge file loading operations.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogb/internal/cartridge"
)

// saveExtension is the file extension of persisted cartridge RAM.
const saveExtension = ".sav"

// Loader handles loading cartridge files from disk.
type Loader struct{}

// New creates a new cartridge loader.
func New() *Loader {
	return &Loader{}
}

// Load loads and parses the cartridge file at the given path.
func (l *Loader) Load(path string) (*cartridge.Cartridge, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	cart, err := cartridge.LoadFile(file)
	if err != nil {
		return nil, fmt.Errorf("loading cartridge: %w", err)
	}
	return cart, nil
}

// SavePath returns the path of the battery RAM file that belongs to the ROM
// file, which is the ROM path with a .sav extension.
func SavePath(romPath string) string {
	dir := filepath.Dir(filepath.Clean(romPath))
	name := filepath.Base(romPath)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return filepath.Join(dir, name+saveExtension)
}
