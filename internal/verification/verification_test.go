package verification

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		pending string
		want    Verdict
	}{
		{"no output", nil, "", Unknown},
		{"running", []string{"cpu_instrs", "", "01:ok"}, "02:", Unknown},
		{"passed", []string{"cpu_instrs", "01:ok", "Passed all tests"}, "", Passed},
		{"passed unterminated", []string{"06-ld r,r"}, "Passed", Passed},
		{"failed", []string{"01:ok", "02:01", "Failed 1 tests"}, "", Failed},
		{"failure wins", []string{"Passed", "Failed"}, "", Failed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.lines, tt.pending))
		})
	}
}

func TestVerifyOutput(t *testing.T) {
	logger := log.NewTestLogger(t)

	verdict, err := VerifyOutput(logger, []string{"Passed"}, "")
	assert.NoError(t, err)
	assert.Equal(t, Passed, verdict)

	verdict, err = VerifyOutput(logger, []string{"03-op sp,hl", "", "Failed #2"}, "")
	assert.Equal(t, Failed, verdict)
	assert.True(t, errors.Is(err, ErrTestFailed))
	assert.ErrorContains(t, err, "Failed #2")
}

func TestVerdictString(t *testing.T) {
	assert.Equal(t, "passed", Passed.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "unknown", Unknown.String())
}
