package verdict

import "encoding/json"

type Verdict int

const (
	// The tool reported the solution as accepted.
	Accepted Verdict = iota + 1
	// The solution produced a wrong answer.
	WrongAnswer
	// The solution crashed while running on the platform.
	RuntimeError
	// The solution failed to compile.
	CompileError
	// The output matched no known marker.
	Unclear
	// The tool executable could not be found. Only completes the verdict set:
	// Classify never returns it, a failed launch yields errors.ErrToolMissing instead.
	ToolMissing
	// Local test run did not pass. Test mode does not sub-classify failures.
	NotAccepted
)

var verdictNames = map[Verdict]string{
	Accepted:     "accepted",
	WrongAnswer:  "wrong_answer",
	RuntimeError: "runtime_error",
	CompileError: "compile_error",
	Unclear:      "unclear",
	ToolMissing:  "tool_missing",
	NotAccepted:  "not_accepted",
}

func (v Verdict) String() string {
	if name, ok := verdictNames[v]; ok {
		return name
	}
	return "unknown"
}

// Passed reports whether the verdict counts as a successful run.
func (v Verdict) Passed() bool {
	return v == Accepted
}

func (v Verdict) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}
