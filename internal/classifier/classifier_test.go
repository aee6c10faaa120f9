package classifier_test

import (
	"errors"
	"strings"
	"testing"

	. "github.com/mini-maxit/lchelper/internal/classifier"
	"github.com/mini-maxit/lchelper/pkg/constants"
	pkgErr "github.com/mini-maxit/lchelper/pkg/errors"
	"github.com/mini-maxit/lchelper/pkg/verdict"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Submit(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		exitCode int
		want     verdict.Verdict
	}{
		{
			name:   "success",
			output: "  Success\n\n  Runtime: 4 ms, faster than 90.1% of cpp submissions\n",
			want:   verdict.Accepted,
		},
		{
			name:   "wrong answer marker",
			output: "  Wrong Answer\n\n  123/456 cases passed\n",
			want:   verdict.WrongAnswer,
		},
		{
			name:   "loose wrong marker is case insensitive",
			output: "Your answer is WRONG on case 3\n",
			want:   verdict.WrongAnswer,
		},
		{
			name:   "runtime error",
			output: "  Runtime Error\n\n  AddressSanitizer: heap-buffer-overflow\n",
			want:   verdict.RuntimeError,
		},
		{
			name:   "compile error",
			output: "  Compile Error\n\n  Line 3: expected ';'\n",
			want:   verdict.CompileError,
		},
		{
			name:   "loose compilation marker",
			output: "COMPILATION failed for solution.cpp\n",
			want:   verdict.CompileError,
		},
		{
			name:     "no marker with non zero exit",
			output:   "error: network unreachable\n",
			exitCode: 2,
			want:     verdict.Unclear,
		},
		{
			name:   "no marker with zero exit",
			output: "Submitted.\n",
			want:   verdict.Unclear,
		},
		{
			name:   "empty output",
			output: "",
			want:   verdict.Unclear,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.output, tt.exitCode, Submit)
			assert.Equal(t, tt.want, got.Verdict)
			assert.Equal(t, tt.exitCode, got.ExitCode)
			assert.NotEmpty(t, got.Message)
		})
	}
}

func TestClassify_SubmitPrecedence(t *testing.T) {
	// The wrong answer check runs before the compile error check.
	got := Classify("Compile Error\nsomething went wrong\n", 1, Submit)
	assert.Equal(t, verdict.WrongAnswer, got.Verdict)

	// Success beats every other marker.
	got = Classify("Success\nWrong Answer\nRuntime Error\nCompile Error\n", 0, Submit)
	assert.Equal(t, verdict.Accepted, got.Verdict)

	// Runtime error beats compile error.
	got = Classify("Runtime Error\ncompilation log follows\n", 0, Submit)
	assert.Equal(t, verdict.RuntimeError, got.Verdict)

	// "Success" is matched with exact case only.
	got = Classify("success\n", 0, Submit)
	assert.Equal(t, verdict.Unclear, got.Verdict)
}

func TestClassify_SubmitUnclearMessages(t *testing.T) {
	got := Classify("nothing useful", 3, Submit)
	assert.Equal(t, "submission failed with exit code 3", got.Message)

	got = Classify("nothing useful", 0, Submit)
	assert.Equal(t, constants.OutcomeMessageUnclear, got.Message)
}

func TestClassify_Test(t *testing.T) {
	got := Classify("Accepted ✓\n", 0, Test)
	assert.Equal(t, verdict.Accepted, got.Verdict)

	got = Classify("Accepted\nRuntime: 0 ms\n", 0, Test)
	assert.Equal(t, verdict.Accepted, got.Verdict)

	got = Classify("  ✓ case 1\n", 0, Test)
	assert.Equal(t, verdict.Accepted, got.Verdict)

	got = Classify("1/15 cases passed\n", 0, Test)
	assert.Equal(t, verdict.NotAccepted, got.Verdict)

	// Submit markers carry no meaning in test mode.
	got = Classify("Success\nWrong Answer\n", 1, Test)
	assert.Equal(t, verdict.NotAccepted, got.Verdict)
	assert.Equal(t, 1, got.ExitCode)
}

func TestClassify_Idempotent(t *testing.T) {
	outputs := []string{
		"Success",
		"Wrong Answer",
		"Compile Error\nwrong",
		"Accepted ✓",
		"garbage",
	}
	for _, out := range outputs {
		for _, mode := range []Mode{Test, Submit} {
			first := Classify(out, 1, mode)
			second := Classify(out, 1, mode)
			require.Equal(t, first, second, "output %q mode %s", out, mode)
		}
	}
}

func TestClassify_LargeOutput(t *testing.T) {
	output := strings.Repeat("case passed\n", 10000) + "Runtime Error\n"
	got := Classify(output, 0, Submit)
	assert.Equal(t, verdict.RuntimeError, got.Verdict)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Test")
	require.NoError(t, err)
	assert.Equal(t, Test, m)

	m, err = ParseMode(" exec ")
	require.NoError(t, err)
	assert.Equal(t, Submit, m)

	_, err = ParseMode("edit")
	assert.True(t, errors.Is(err, pkgErr.ErrUnknownMode))

	assert.Equal(t, "submit", Submit.String())
	assert.Equal(t, "unknown", Mode(0).String())
}

func TestClassify_NeverReportsToolMissing(t *testing.T) {
	outputs := []string{
		"",
		"sh: 1: leetcode: not found\n",
		"exec: \"leetcode\": executable file not found in $PATH\n",
	}
	for _, output := range outputs {
		for _, exitCode := range []int{0, 1, 127, constants.ExitCodeUnknown} {
			for _, mode := range []Mode{Test, Submit} {
				got := Classify(output, exitCode, mode)
				assert.NotEqual(t, verdict.ToolMissing, got.Verdict, "output %q exit %d mode %s", output, exitCode, mode)
			}
		}
	}
}
