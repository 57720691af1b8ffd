// Package options contains the program options.
package options

// DefaultStepLimit is the default number of instructions after which a run stops.
const DefaultStepLimit = 100_000_000

// Parameters contains file path options.
type Parameters struct {
	Input string `flag:"i" usage:"input ROM file"`
	Batch string `flag:"batch" usage:"batch process files matching pattern (e.g. *.gb)"`
}

// Flags contains behavior options.
type Flags struct {
	Steps     uint64 `flag:"steps" usage:"maximum number of instructions to execute, 0 for no limit"`
	Trace     bool   `flag:"trace" usage:"log every executed instruction"`
	Save      bool   `flag:"save" usage:"persist battery backed cartridge RAM next to the ROM file"`
	NoLogo    bool   `flag:"nologo" usage:"do not print the cartridge logo"`
	StatsView bool   `flag:"statsview" usage:"serve runtime statistics on localhost:18066"`
	Debug     bool   `flag:"debug" usage:"enable debug logging"`
	Quiet     bool   `flag:"q" usage:"quiet mode"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
}

// Disassembler defines options to control the disassembler.
type Disassembler struct {
	Output string // output file, stdout if empty
	Quiet  bool

	Start uint16 // first address to disassemble
	End   uint16 // last address to disassemble, inclusive

	HexComments    bool
	OffsetComments bool
}

// NewDisassembler returns a new options instance with default options.
func NewDisassembler() Disassembler {
	return Disassembler{
		Start: 0x0100,
		End:   0x7FFF,

		HexComments:    true,
		OffsetComments: true,
	}
}
