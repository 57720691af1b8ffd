package memory

import (
	"strings"

	"github.com/retroenv/retrogolib/log"
)

// serialPort collects the bytes written to the serial data register into lines.
// Test programs report their results this way.
type serialPort struct {
	logger *log.Logger

	line  strings.Builder
	lines []string
}

func (s *serialPort) write(value uint8) {
	if value != '\n' {
		s.line.WriteByte(value)
		return
	}

	line := s.line.String()
	s.line.Reset()
	s.lines = append(s.lines, line)

	if s.logger != nil {
		s.logger.Info("Serial output", log.String("line", line))
	}
}
