// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/retrogb/internal/options"
)

// ParseFlags parses the command line flags of the emulator.
func ParseFlags() (options.Program, error) {
	return parseFlags(os.Args[0], os.Args[1:])
}

func parseFlags(name string, arguments []string) (options.Program, error) {
	flags := newFlagSet(name)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(arguments)
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "" && opts.Batch == "") {
		return opts, &UsageError{flags: flags, name: "retrogb", file: "ROM file to run"}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if opts.Batch == "" && len(args) > 0 {
		opts.Input = args[0]
	}
	return opts, nil
}

// newFlagSet returns a flag set that leaves printing the usage to UsageError.
func newFlagSet(name string) *flag.FlagSet {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.Usage = func() {}
	return flags
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
	name  string
	file  string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage help including all flags.
func (e *UsageError) ShowUsage() {
	if e.flags == nil {
		fmt.Println(e.msg)
		return
	}
	fmt.Printf("usage: %s [options] <%s>\n\n", e.name, e.file)
	e.flags.PrintDefaults()
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after the ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Batch, "batch", "", "run a batch of given path and file mask, for example *.gb")
	flags.Uint64Var(&opts.Steps, "steps", options.DefaultStepLimit, "maximum number of instructions to execute per ROM, 0 for no limit")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction with the register state")
	flags.BoolVar(&opts.Save, "save", false, "persist battery backed cartridge RAM in a .sav file next to the ROM")
	flags.BoolVar(&opts.NoLogo, "nologo", false, "do not print the cartridge logo")
	flags.BoolVar(&opts.StatsView, "statsview", false, "serve runtime statistics of the emulator on localhost:18066")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

// ParseDisassemblerFlags parses the command line flags of the disassembler.
func ParseDisassemblerFlags() (options.Disassembler, string, error) {
	return parseDisassemblerFlags(os.Args[0], os.Args[1:])
}

func parseDisassemblerFlags(name string, arguments []string) (options.Disassembler, string, error) {
	flags := newFlagSet(name)
	opts := options.NewDisassembler()

	var start, end uint
	var noHexComments, noOffsets bool
	flags.StringVar(&opts.Output, "o", "", "name of the output .asm file, printed on console if no name given")
	flags.UintVar(&start, "start", uint(opts.Start), "first address to disassemble")
	flags.UintVar(&end, "end", uint(opts.End), "last address to disassemble")
	flags.BoolVar(&noHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in comments")
	flags.BoolVar(&noOffsets, "nooffsets", false, "do not output offsets in comments")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")

	err := flags.Parse(arguments)
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, "", &UsageError{flags: flags, name: "gbdisasm", file: "file to disassemble"}
	}
	if err := validateArgs(args); err != nil {
		return opts, "", err
	}

	if start > 0xFFFF || end > 0xFFFF || start > end {
		return opts, "", fmt.Errorf("invalid address range $%X-$%X", start, end)
	}
	opts.Start = uint16(start)
	opts.End = uint16(end)

	// Apply inverse logic for hex comments and offsets
	opts.HexComments = !noHexComments
	opts.OffsetComments = !noOffsets

	return opts, args[0], nil
}
