// Package verification evaluates the serial output of test ROMs, which report
// their result as text on the serial port.
package verification

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/retroenv/retrogolib/log"
)

// ErrTestFailed is returned when a test ROM reported a failure.
var ErrTestFailed = errors.New("test ROM reported failure")

// Verdict is the result that a test ROM reported.
type Verdict int

// Test ROM results.
const (
	Unknown Verdict = iota
	Passed
	Failed
)

const (
	passedMarker = "Passed"
	failedMarker = "Failed"
)

func (v Verdict) String() string {
	switch v {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Evaluate returns the verdict of the serial output. A failure marker takes
// precedence over a pass marker.
func Evaluate(lines []string, pending string) Verdict {
	verdict := Unknown
	for _, line := range append(slices.Clip(lines), pending) {
		switch {
		case strings.Contains(line, failedMarker):
			return Failed
		case strings.Contains(line, passedMarker):
			verdict = Passed
		}
	}
	return verdict
}

// VerifyOutput checks the serial output of a finished run and returns an error
// if the test ROM reported a failure.
func VerifyOutput(logger *log.Logger, lines []string, pending string) (Verdict, error) {
	verdict := Evaluate(lines, pending)
	if verdict != Failed {
		return verdict, nil
	}

	for _, line := range lines {
		if line != "" {
			logger.Warn("Test output", log.String("line", line))
		}
	}
	return verdict, fmt.Errorf("%w: %s", ErrTestFailed, failureLine(lines, pending))
}

func failureLine(lines []string, pending string) string {
	for _, line := range append(slices.Clip(lines), pending) {
		if strings.Contains(line, failedMarker) {
			return strings.TrimSpace(line)
		}
	}
	return ""
}
