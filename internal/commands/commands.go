package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/mini-maxit/lchelper/internal/classifier"
	"github.com/mini-maxit/lchelper/internal/console"
	"github.com/mini-maxit/lchelper/internal/logger"
	"github.com/mini-maxit/lchelper/internal/problem"
	"github.com/mini-maxit/lchelper/internal/runner"
	"github.com/mini-maxit/lchelper/pkg/constants"
	customErr "github.com/mini-maxit/lchelper/pkg/errors"
	"go.uber.org/zap"
)

// Context carries what the host knows when a command is triggered.
type Context struct {
	// Input is text typed by the user.
	Input string
	// FilePath is the active source file.
	FilePath string
	// Confirm asks the user a yes/no question. A nil Confirm declines.
	Confirm func(prompt string) bool
}

// Report describes a finished task. Outcome is nil for detached runs.
type Report struct {
	Command string
	Problem problem.ID
	Outcome *classifier.Outcome
	Err     error
	// Exited is set for detached runs and closed when the process is gone.
	// The process may still own the terminal until then.
	Exited  <-chan struct{}
}

// Task is the part of a command that may block. It runs off the caller's goroutine.
type Task func(ctx context.Context) Report

type Command interface {
	Name() string
	// Prepare validates the input on the caller's goroutine. It never starts a process.
	Prepare(cc Context) (Task, error)
}

type Deps struct {
	ToolCommand []string
	Resolver    *problem.Resolver
	Runner      runner.Runner
	Sink        console.Sink
}

// NewRegistry returns all commands keyed by name.
func NewRegistry(deps Deps) map[string]Command {
	commands := []Command{
		NewEditCommand(deps),
		NewTestCommand(deps),
		NewSubmitCommand(deps),
	}

	registry := make(map[string]Command, len(commands))
	for _, cmd := range commands {
		registry[cmd.Name()] = cmd
	}
	return registry
}

// Describe turns an error into the single line shown to the user.
func Describe(err error) string {
	switch {
	case errors.Is(err, customErr.ErrSubmissionCancelled):
		return constants.MessageSubmitCancelled
	case errors.Is(err, customErr.ErrNoActiveFile):
		return "❌ " + constants.MessageNoActiveFile
	case errors.Is(err, customErr.ErrToolMissing):
		return "❌ " + constants.MessageInstallTool
	case errors.Is(err, customErr.ErrLaunchFailure):
		return "❌ " + err.Error() + "\n" + constants.MessageInstallTool
	case errors.Is(err, customErr.ErrInvalidInput),
		errors.Is(err, customErr.ErrUnsupportedFileType),
		errors.Is(err, customErr.ErrUnknownCommand):
		return "❌ " + err.Error()
	default:
		return fmt.Sprintf("⚠️ "+constants.MessageGenericWarning, err)
	}
}

// capturedRun launches the tool with output capture, streams it to the sink and classifies it.
type capturedRun struct {
	name        string
	toolCommand []string
	subcommand  string
	mode        classifier.Mode
	runner      runner.Runner
	sink        console.Sink
	logger      *zap.SugaredLogger
}

func (c *capturedRun) run(ctx context.Context, id problem.ID, clear bool) Report {
	inv := runner.NewInvocation(c.toolCommand, c.subcommand, true, id.String())
	c.logger.Infof("Running %s for problem %s [InvID: %s]", c.name, id, inv.ID)

	if clear {
		c.sink.Clear()
	}

	h, err := c.runner.Launch(ctx, inv)
	if err != nil {
		c.logger.Errorf("Launch failed: %s [InvID: %s]", err, inv.ID)
		return Report{Command: c.name, Problem: id, Err: err}
	}
	// Keeps the pipe drained if the sink faults mid-stream, so the child can still exit.
	defer h.Wait()

	c.sink.Println(console.Header(c.mode, id.String()))
	for line := range h.Lines() {
		c.sink.Println(line)
	}

	res := h.Wait()
	if res.Err != nil {
		c.logger.Warnf("Process finished with error: %s [InvID: %s]", res.Err, inv.ID)
		c.sink.Printf("⚠️ "+constants.MessageGenericWarning, res.Err)
	}

	outcome := classifier.Classify(res.Output, res.ExitCode, c.mode)
	c.logger.Infof("Problem %s classified as %s (exit code %d) [InvID: %s]",
		id, outcome.Verdict, outcome.ExitCode, inv.ID)
	c.sink.Block(console.RenderOutcome(c.mode, id.String(), outcome))

	return Report{Command: c.name, Problem: id, Outcome: &outcome}
}

func newLogger() *zap.SugaredLogger {
	return logger.NewNamedLogger("commands")
}
