package mapper

import (
	"errors"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// ram is the backing store of the cartridge RAM.
type ram interface {
	bytes() []byte
	close() error
}

type memoryRAM []byte

func (r memoryRAM) bytes() []byte { return r }
func (r memoryRAM) close() error  { return nil }

// batteryRAM is cartridge RAM that is mapped from a save file, so that every
// store persists.
type batteryRAM struct {
	file *os.File
	mmap mmap.MMap
}

// openBatteryRAM maps the save file at path, creating or growing it to size
// bytes first.
func openBatteryRAM(path string, size int) (*batteryRAM, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening save file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("getting save file info: %w", err)
	}
	if info.Size() < int64(size) {
		if err := file.Truncate(int64(size)); err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("resizing save file: %w", err)
		}
	}

	m, err := mmap.MapRegion(file, size, mmap.RDWR, 0, 0)
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("mapping save file: %w", err)
	}

	return &batteryRAM{
		file: file,
		mmap: m,
	}, nil
}

func (r *batteryRAM) bytes() []byte {
	return r.mmap
}

func (r *batteryRAM) close() error {
	var errs []error
	if err := r.mmap.Flush(); err != nil {
		errs = append(errs, fmt.Errorf("flushing save file: %w", err))
	}
	if err := r.mmap.Unmap(); err != nil {
		errs = append(errs, fmt.Errorf("unmapping save file: %w", err))
	}
	if err := r.file.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing save file: %w", err))
	}
	return errors.Join(errs...)
}
