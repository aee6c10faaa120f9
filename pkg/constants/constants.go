package constants

// Tool subcommands.
const (
	SubcommandEdit   = "edit"
	SubcommandTest   = "test"
	SubcommandSubmit = "exec"
)

// Command names understood by the shell and the one-shot CLI.
const (
	CommandEdit   = "edit"
	CommandTest   = "test"
	CommandSubmit = "submit"
)

// Output markers printed by leetcode-cli.
const (
	MarkerSuccess          = "Success"
	MarkerWrongAnswer      = "Wrong Answer"
	MarkerWrongLoose       = "wrong"
	MarkerRuntimeError     = "Runtime Error"
	MarkerCompileError     = "Compile Error"
	MarkerCompilationLoose = "compilation"
	MarkerAccepted         = "Accepted"
	MarkerSuccessGlyph     = "✓"
)

// Outcome messages.
const (
	OutcomeMessageAccepted       = "all cases passed successfully"
	OutcomeMessageNotAccepted    = "some test cases did not pass"
	OutcomeMessageWrongAnswer    = "wrong answer"
	OutcomeMessageRuntimeError   = "runtime error"
	OutcomeMessageCompileError   = "compile error"
	OutcomeMessageNonZeroExit    = "submission failed with exit code %d"
	OutcomeMessageUnclear        = "result unclear, inspect output manually"
	OutcomeMessageSubmitAccepted = "submission accepted"
)

// User facing messages.
const (
	MessageNoActiveFile    = "Please open a file first."
	MessageInstallTool     = "Please install Rust version of leetcode-cli:\n  cargo install leetcode-cli"
	MessageSubmitConfirm   = "Submit problem %s to LeetCode?"
	MessageSubmitCancelled = "Submission cancelled."
	MessageGenericWarning  = "Error: %v"
	MessageRunningTest     = "=== Running leetcode test %s ==="
	MessageRunningSubmit   = "=== Submitting problem %s ==="
	MessageEditLaunched    = "Opening problem %s in editor"
	MessagePromptProblem   = "Problem number: "
	MessageActiveFile      = "Active file: %s"
	MessageGoodbye         = "Bye."
	MessageWorkersStatus   = "Workers: %v busy, %v queued, %v total"
)

// Shell built-ins.
const (
	BuiltinHelp   = "help"
	BuiltinExit   = "exit"
	BuiltinQuit   = "quit"
	BuiltinOpen   = "open"
	BuiltinActive = "active"
	BuiltinStatus = "status"
)

const (
	ExitCodeSuccess = 0
	// Reported when the exit code of a process is not known.
	ExitCodeUnknown = -1
)

// Configuration constants.
const (
	DefaultToolCommand       = "leetcode"
	DefaultToolBinDir        = "~/.cargo/bin"
	DefaultAllowedExtensions = ".cpp"
	DefaultMaxWorkers        = 4
	DefaultClearLines        = 40
	DefaultHistoryFile       = "~/.lchelper_history"
	DefaultLogLevel          = "info"
	DefaultLogDir            = "logs"
	DefaultLogFileName       = "lchelper.log"
)

// Console rendering.
const (
	BannerWidth   = 50
	BannerPass    = "="
	BannerFail    = "!"
	ShellPrompt   = "lc> "
	ConfirmSuffix = " [y/N]: "
)
