package classifier

import (
	"fmt"
	"strings"

	"github.com/mini-maxit/lchelper/pkg/constants"
	customErr "github.com/mini-maxit/lchelper/pkg/errors"
	"github.com/mini-maxit/lchelper/pkg/verdict"
)

// Mode selects the marker set used to read the tool output.
type Mode int

const (
	// Local run against the example cases (`leetcode test`).
	Test Mode = iota + 1
	// Remote judging (`leetcode exec`).
	Submit
)

func (m Mode) String() string {
	switch m {
	case Test:
		return "test"
	case Submit:
		return "submit"
	default:
		return "unknown"
	}
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "test":
		return Test, nil
	case "submit", "exec":
		return Submit, nil
	default:
		return 0, customErr.ErrUnknownMode
	}
}

type Outcome struct {
	Verdict  verdict.Verdict `json:"verdict"`
	ExitCode int             `json:"exit_code"`
	Message  string          `json:"message"`
}

// rule matches when any of its markers occurs in the output.
type rule struct {
	exact   []string
	folded  []string
	verdict verdict.Verdict
	message string
}

func (r rule) matches(output, lowered string) bool {
	for _, marker := range r.exact {
		if strings.Contains(output, marker) {
			return true
		}
	}
	for _, marker := range r.folded {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}

// Order matters: several markers can appear in one report and the first match wins.
var submitRules = []rule{
	{
		exact:   []string{constants.MarkerSuccess},
		verdict: verdict.Accepted,
		message: constants.OutcomeMessageSubmitAccepted,
	},
	{
		exact:   []string{constants.MarkerWrongAnswer},
		folded:  []string{constants.MarkerWrongLoose},
		verdict: verdict.WrongAnswer,
		message: constants.OutcomeMessageWrongAnswer,
	},
	{
		exact:   []string{constants.MarkerRuntimeError},
		verdict: verdict.RuntimeError,
		message: constants.OutcomeMessageRuntimeError,
	},
	{
		exact:   []string{constants.MarkerCompileError},
		folded:  []string{constants.MarkerCompilationLoose},
		verdict: verdict.CompileError,
		message: constants.OutcomeMessageCompileError,
	},
}

var testRules = []rule{
	{
		exact:   []string{constants.MarkerAccepted, constants.MarkerSuccessGlyph},
		verdict: verdict.Accepted,
		message: constants.OutcomeMessageAccepted,
	},
}

// Classify maps the full tool output and exit code to a verdict. It is a pure function.
func Classify(output string, exitCode int, mode Mode) Outcome {
	lowered := strings.ToLower(output)

	switch mode {
	case Submit:
		for _, r := range submitRules {
			if r.matches(output, lowered) {
				return Outcome{Verdict: r.verdict, ExitCode: exitCode, Message: r.message}
			}
		}
		if exitCode != constants.ExitCodeSuccess {
			return Outcome{
				Verdict:  verdict.Unclear,
				ExitCode: exitCode,
				Message:  fmt.Sprintf(constants.OutcomeMessageNonZeroExit, exitCode),
			}
		}
		return Outcome{Verdict: verdict.Unclear, ExitCode: exitCode, Message: constants.OutcomeMessageUnclear}

	default:
		for _, r := range testRules {
			if r.matches(output, lowered) {
				return Outcome{Verdict: r.verdict, ExitCode: exitCode, Message: r.message}
			}
		}
		return Outcome{Verdict: verdict.NotAccepted, ExitCode: exitCode, Message: constants.OutcomeMessageNotAccepted}
	}
}
