package shell

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/shlex"
	"github.com/mini-maxit/lchelper/internal/commands"
	"github.com/mini-maxit/lchelper/internal/console"
	"github.com/mini-maxit/lchelper/internal/logger"
	"github.com/mini-maxit/lchelper/internal/scheduler"
	"github.com/mini-maxit/lchelper/pkg/constants"
	customErr "github.com/mini-maxit/lchelper/pkg/errors"
	"go.uber.org/zap"
)

// LineReader is the subset of *readline.Instance the shell needs.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Close() error
}

// Shell is the interactive host. It owns the active file and turns typed lines into dispatched commands.
type Shell struct {
	reader     LineReader
	scheduler  scheduler.Scheduler
	sink       console.Sink
	prompt     string
	activeFile string
	logger     *zap.SugaredLogger
}

func NewShell(reader LineReader, sched scheduler.Scheduler, sink console.Sink) *Shell {
	return &Shell{
		reader:    reader,
		scheduler: sched,
		sink:      sink,
		prompt:    constants.ShellPrompt,
		logger:    logger.NewNamedLogger("shell"),
	}
}

func (s *Shell) SetActiveFile(path string) {
	s.activeFile = path
}

func (s *Shell) ActiveFile() string {
	return s.activeFile
}

// Run reads lines until exit or end of input, then waits for running commands.
func (s *Shell) Run() error {
	defer s.scheduler.Wait()

	s.reader.SetPrompt(s.prompt)
	for {
		line, err := s.reader.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.logger.Errorf("Failed to read line: %s", err)
			return err
		}

		if s.Execute(line) {
			return nil
		}
	}
}

// Execute handles a single line. It reports whether the shell should stop.
func (s *Shell) Execute(line string) bool {
	args, err := shlex.Split(line)
	if err != nil {
		s.sink.Println(commands.Describe(fmt.Errorf("%w: %s", customErr.ErrInvalidInput, err)))
		return false
	}
	if len(args) == 0 {
		return false
	}

	name, rest := strings.ToLower(args[0]), args[1:]
	switch name {
	case constants.BuiltinHelp:
		s.sink.Block(helpLines())
	case constants.BuiltinExit, constants.BuiltinQuit:
		s.sink.Println(constants.MessageGoodbye)
		return true
	case constants.BuiltinOpen:
		if len(rest) == 0 {
			s.sink.Println("❌ usage: open <file>")
			return false
		}
		s.activeFile = rest[0]
		s.sink.Printf(constants.MessageActiveFile, s.activeFile)
	case constants.BuiltinActive:
		if s.activeFile == "" {
			s.sink.Println(commands.Describe(customErr.ErrNoActiveFile))
			return false
		}
		s.sink.Printf(constants.MessageActiveFile, s.activeFile)
	case constants.BuiltinStatus:
		status := s.scheduler.GetWorkersStatus()
		s.sink.Printf(constants.MessageWorkersStatus,
			status["busy_workers"], status["queued_tasks"], status["total_workers"])
	case constants.CommandEdit:
		var input string
		if len(rest) > 0 {
			input = rest[0]
		} else {
			input = s.ask(constants.MessagePromptProblem)
		}
		s.waitForTerminal(s.dispatch(name, commands.Context{Input: input}))
	case constants.CommandTest, constants.CommandSubmit:
		if len(rest) > 0 {
			s.activeFile = rest[0]
		}
		s.dispatch(name, commands.Context{FilePath: s.activeFile, Confirm: s.confirm})
	default:
		s.dispatch(name, commands.Context{Input: strings.Join(rest, " ")})
	}

	return false
}

// dispatch hands the command to the scheduler. Rejections are already shown by the scheduler.
func (s *Shell) dispatch(name string, cc commands.Context) <-chan commands.Report {
	done, err := s.scheduler.Dispatch(name, cc)
	if err != nil {
		s.logger.Infof("Dispatch of %s failed: %s", name, err)
		return nil
	}
	return done
}

// waitForTerminal blocks the prompt until a detached process started by the command has exited,
// so the editor and readline never read the terminal at the same time.
func (s *Shell) waitForTerminal(done <-chan commands.Report) {
	if done == nil {
		return
	}
	report := <-done
	if report.Exited == nil {
		return
	}
	s.logger.Infof("Waiting for %s of problem %s to exit", report.Command, report.Problem)
	<-report.Exited
}

func (s *Shell) ask(prompt string) string {
	s.reader.SetPrompt(prompt)
	defer s.reader.SetPrompt(s.prompt)

	line, err := s.reader.Readline()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

func (s *Shell) confirm(question string) bool {
	switch strings.ToLower(s.ask(question + constants.ConfirmSuffix)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func helpLines() []string {
	return []string{
		"Commands:",
		"  edit [number]    open a problem in the editor",
		"  test [file]      run the problem's test cases",
		"  submit [file]    submit the problem after confirmation",
		"  open <file>      set the active file",
		"  active           show the active file",
		"  status           show running commands",
		"  help             show this message",
		"  exit, quit       leave the shell",
	}
}
