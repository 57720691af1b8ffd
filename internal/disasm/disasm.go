// Package disasm implements a linear sweep disassembler for Game Boy ROMs.
package disasm

import (
	"context"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/retroenv/retrogb/internal/cartridge"
	"github.com/retroenv/retrogb/internal/cpu"
	"github.com/retroenv/retrogb/internal/memory"
	"github.com/retroenv/retrogb/internal/options"
	"github.com/retroenv/retrogb/internal/writer"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// lastCodeAddress is the last address of the ROM area that is visible
// without bank switching.
const lastCodeAddress = 0x7FFF

// contextCheckInterval is the number of decoded instructions between checks
// of the context.
const contextCheckInterval = 1024

var errInvalidRange = errors.New("invalid address range")

// Disasm implements a disassembler.
type Disasm struct {
	logger  *log.Logger
	options options.Disassembler
	cart    *cartridge.Cartridge

	start uint16
	end   uint16

	lines            []writer.Line
	instructions     map[uint16]int // address to index in lines
	branchDests      set.Set[uint16]
	callDestinations set.Set[uint16]
}

// New creates a new disassembler for the cartridge. The end address of the
// options is clamped to the ROM size.
func New(logger *log.Logger, cart *cartridge.Cartridge, opts options.Disassembler) (*Disasm, error) {
	end := min(int(opts.End), len(cart.ROM)-1, lastCodeAddress)
	if int(opts.Start) > end {
		return nil, fmt.Errorf("%w: start $%04X is beyond the end $%04X", errInvalidRange, opts.Start, end)
	}

	return &Disasm{
		logger:           logger,
		options:          opts,
		cart:             cart,
		start:            opts.Start,
		end:              uint16(end),
		instructions:     map[uint16]int{},
		branchDests:      set.New[uint16](),
		callDestinations: set.New[uint16](),
	}, nil
}

// Process disassembles the configured address range and writes the result.
func (dis *Disasm) Process(ctx context.Context, out io.Writer) error {
	if err := dis.sweep(ctx); err != nil {
		return err
	}
	dis.processJumpDestinations()

	w := writer.New(out, writer.Options{
		HexComments:    dis.options.HexComments,
		OffsetComments: dis.options.OffsetComments,
	})

	header := writer.Header{
		Title:    dis.cart.Header.Title,
		Type:     dis.cart.Header.TypeName(),
		Checksum: crc32.ChecksumIEEE(dis.cart.ROM),
		Start:    dis.start,
		End:      dis.end,
	}
	if err := w.WriteCommentHeader(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := w.WriteLines(dis.lines); err != nil {
		return fmt.Errorf("writing lines: %w", err)
	}
	return nil
}

// Lines returns the disassembled lines, it is only filled after Process.
func (dis *Disasm) Lines() []writer.Line {
	return dis.lines
}

// Read implements the cpu.Reader interface for the unbanked ROM area.
func (dis *Disasm) Read(address memory.Address) uint8 {
	if int(address) >= len(dis.cart.ROM) {
		return 0xFF
	}
	return dis.cart.ROM[address]
}

// sweep decodes every instruction of the address range in order. Bytes that
// do not form a complete instruction inside the range are output as data.
func (dis *Disasm) sweep(ctx context.Context) error {
	for address := int(dis.start); address <= int(dis.end); {
		if len(dis.lines)%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("disassembling: %w", err)
			}
		}

		ins, err := cpu.Decode(dis, memory.Address(address))
		if err != nil {
			if !errors.Is(err, cpu.ErrUnknownOpcode) {
				return fmt.Errorf("decoding at $%04X: %w", address, err)
			}
			dis.addData(address, address)
			address++
			continue
		}
		if address+ins.Length()-1 > int(dis.end) {
			// the instruction is cut by the end of the range
			dis.addData(address, int(dis.end))
			break
		}

		dis.instructions[uint16(address)] = len(dis.lines)
		dis.lines = append(dis.lines, writer.Line{
			Address: uint16(address),
			Data:    ins.Bytes(),
		})

		if target, ok := ins.Target(); ok {
			dis.branchDests.Add(uint16(target))
			if ins.Opcode.Flow == cpu.FlowCall {
				dis.callDestinations.Add(uint16(target))
			}
		}
		address += ins.Length()
	}

	dis.logger.Debug("Disassembled address range",
		log.Hex("start", dis.start),
		log.Hex("end", dis.end),
		log.Int("lines", len(dis.lines)))
	return nil
}

// addData adds a data line for every byte from start to end inclusive.
func (dis *Disasm) addData(start, end int) {
	for address := start; address <= end; address++ {
		dis.lines = append(dis.lines, writer.Line{
			Address: uint16(address),
			Data:    []byte{dis.Read(memory.Address(address))},
		})
	}
}
