// Package writer implements the assembly file writing of disassembled code.
package writer

import (
	"fmt"
	"io"
	"strings"
)

const dataBytesPerLine = 16

type lineWriterFunc func(line string, byteCount int) error

// Line is a single instruction or data byte of the output.
type Line struct {
	Address uint16
	Label   string
	Code    string // instruction in assembler syntax, empty for data
	Data    []byte // encoded bytes
	Comment string
}

// IsData returns whether the line is output as data bytes.
func (l Line) IsData() bool {
	return l.Code == ""
}

// Header contains the information that is written as comments at the start
// of the output.
type Header struct {
	Title    string
	Type     string
	Checksum uint32
	Start    uint16
	End      uint16
}

// Options of the writer.
type Options struct {
	HexComments    bool
	OffsetComments bool
}

// Writer writes disassembled lines in assembler syntax.
type Writer struct {
	options Options
	writer  io.Writer
}

// New creates a new writer.
func New(writer io.Writer, options Options) *Writer {
	return &Writer{
		options: options,
		writer:  writer,
	}
}

// WriteCommentHeader writes the cartridge details and the CRC32 checksum as
// comments to the output.
func (w Writer) WriteCommentHeader(header Header) error {
	if _, err := fmt.Fprintf(w.writer, "; Title: %s\n", header.Title); err != nil {
		return fmt.Errorf("writing title: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; Cartridge type: %s\n", header.Type); err != nil {
		return fmt.Errorf("writing cartridge type: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; ROM CRC32 checksum: %08x\n", header.Checksum); err != nil {
		return fmt.Errorf("writing rom checksum: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; Address range: $%04X-$%04X\n\n", header.Start, header.End); err != nil {
		return fmt.Errorf("writing address range: %w", err)
	}
	return nil
}

// WriteLines writes all lines, consecutive data lines without a label in
// between are bundled.
func (w Writer) WriteLines(lines []Line) error {
	var previousLineWasCode bool

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if err := w.writeLabel(i, line); err != nil {
			return err
		}

		// print an empty line in case of data after code and vice versa
		if i > 0 && line.Label == "" && !line.IsData() != previousLineWasCode {
			if _, err := fmt.Fprintln(w.writer); err != nil {
				return fmt.Errorf("writing line: %w", err)
			}
		}
		previousLineWasCode = !line.IsData()

		if !line.IsData() {
			if err := w.writeCodeLine(line); err != nil {
				return fmt.Errorf("writing code line: %w", err)
			}
			continue
		}

		count, err := w.bundleDataLines(lines[i:])
		if err != nil {
			return err
		}
		i += count - 1
	}
	return nil
}

// BundleDataWrites bundles writes of data bytes to print dataBytesPerLine bytes per line.
func (w Writer) BundleDataWrites(data []byte, lineWriter lineWriterFunc) error {
	remaining := len(data)
	for i := 0; remaining > 0; {
		toWrite := min(remaining, dataBytesPerLine)

		buf := &strings.Builder{}
		buf.WriteString("db ")
		for j := range toWrite {
			if _, err := fmt.Fprintf(buf, "$%02X, ", data[i+j]); err != nil {
				return fmt.Errorf("writing data byte: %w", err)
			}
		}

		line := strings.TrimRight(buf.String(), ", ")

		if lineWriter != nil {
			if err := lineWriter(line, toWrite); err != nil {
				return fmt.Errorf("writing data line using custom writer: %w", err)
			}
		} else {
			if _, err := fmt.Fprintf(w.writer, "  %s\n", line); err != nil {
				return fmt.Errorf("writing data line: %w", err)
			}
		}

		i += toWrite
		remaining -= toWrite
	}

	return nil
}

func (w Writer) writeLabel(index int, line Line) error {
	if line.Label == "" {
		return nil
	}

	if index > 0 {
		if _, err := fmt.Fprintln(w.writer); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}

	if _, err := fmt.Fprintf(w.writer, "%s:\n", line.Label); err != nil {
		return fmt.Errorf("writing label: %w", err)
	}
	return nil
}

func (w Writer) writeCodeLine(line Line) error {
	comment := w.comment(line.Address, line.Data, line.Comment)
	if comment == "" {
		if _, err := fmt.Fprintf(w.writer, "  %s\n", line.Code); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	} else {
		if _, err := fmt.Fprintf(w.writer, "  %-30s ; %s\n", line.Code, comment); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}
	return nil
}

// bundleDataLines writes the data bytes of the leading data lines and returns
// the number of lines consumed.
func (w Writer) bundleDataLines(lines []Line) (int, error) {
	var data []byte
	count := 0
	for i, line := range lines {
		// stop at first label or code after start index
		if !line.IsData() || (i > 0 && line.Label != "") {
			break
		}
		data = append(data, line.Data...)
		count++
	}

	address := lines[0].Address
	lineWriter := func(line string, byteCount int) error {
		comment := w.comment(address, nil, "")
		var err error
		if comment == "" {
			_, err = fmt.Fprintf(w.writer, "  %s\n", line)
		} else {
			_, err = fmt.Fprintf(w.writer, "  %-30s ; %s\n", line, comment)
		}
		if err != nil {
			return fmt.Errorf("writing data line: %w", err)
		}

		address += uint16(byteCount)
		return nil
	}

	if err := w.BundleDataWrites(data, lineWriter); err != nil {
		return 0, fmt.Errorf("writing data: %w", err)
	}
	return count, nil
}

// comment builds the comment of a line from the enabled comment options.
func (w Writer) comment(address uint16, data []byte, extra string) string {
	var parts []string
	if w.options.OffsetComments {
		parts = append(parts, fmt.Sprintf("$%04X", address))
	}
	if w.options.HexComments && len(data) > 0 {
		hex := make([]string, len(data))
		for i, b := range data {
			hex[i] = fmt.Sprintf("%02X", b)
		}
		parts = append(parts, strings.Join(hex, " "))
	}
	if extra != "" {
		parts = append(parts, extra)
	}
	return strings.Join(parts, "  ")
}
