package console

import (
	"fmt"
	"strings"

	"github.com/mini-maxit/lchelper/internal/classifier"
	"github.com/mini-maxit/lchelper/pkg/constants"
	"github.com/mini-maxit/lchelper/pkg/verdict"
)

var submitTitles = map[verdict.Verdict]string{
	verdict.Accepted:     "🎉🎉🎉 ACCEPTED: Problem %s 🎉🎉🎉",
	verdict.WrongAnswer:  "❌❌❌ WRONG ANSWER for Problem %s ❌❌❌",
	verdict.RuntimeError: "💥💥💥 RUNTIME ERROR for Problem %s 💥💥💥",
	verdict.CompileError: "🛠️🛠️🛠️ COMPILE ERROR for Problem %s 🛠️🛠️🛠️",
	verdict.Unclear:      "⚠️⚠️⚠️ RESULT UNCLEAR for Problem %s ⚠️⚠️⚠️",
}

// Header is printed before the tool output is streamed.
func Header(mode classifier.Mode, problemID string) string {
	if mode == classifier.Submit {
		return "\n" + fmt.Sprintf(constants.MessageRunningSubmit, problemID) + "\n"
	}
	return "\n" + fmt.Sprintf(constants.MessageRunningTest, problemID) + "\n"
}

// RenderOutcome builds the banner shown after the tool exits.
func RenderOutcome(mode classifier.Mode, problemID string, outcome classifier.Outcome) []string {
	rule := constants.BannerFail
	if outcome.Verdict.Passed() {
		rule = constants.BannerPass
	}
	line := strings.Repeat(rule, constants.BannerWidth)

	var body []string
	if mode == classifier.Submit {
		body = submitBody(problemID, outcome)
	} else {
		body = testBody(problemID, outcome)
	}

	banner := make([]string, 0, len(body)+4)
	banner = append(banner, "", line)
	banner = append(banner, body...)
	return append(banner, line, "")
}

func testBody(problemID string, outcome classifier.Outcome) []string {
	if outcome.Verdict.Passed() {
		return []string{
			fmt.Sprintf("🎉🎉🎉 TEST PASSED for Problem %s 🎉🎉🎉", problemID),
			"✔️  All cases passed successfully!",
		}
	}
	return []string{
		fmt.Sprintf("❌❌❌ TEST FAILED for Problem %s ❌❌❌", problemID),
		"✖️  Some test cases did NOT pass.",
		"✖️  Please check the output above for details.",
	}
}

func submitBody(problemID string, outcome classifier.Outcome) []string {
	title, ok := submitTitles[outcome.Verdict]
	if !ok {
		title = submitTitles[verdict.Unclear]
	}
	body := []string{fmt.Sprintf(title, problemID)}
	if outcome.Message != "" {
		body = append(body, "   "+outcome.Message)
	}
	return body
}
