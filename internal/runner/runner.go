package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"strings"

	"github.com/google/uuid"
	"github.com/mini-maxit/lchelper/internal/logger"
	"github.com/mini-maxit/lchelper/pkg/constants"
	customErr "github.com/mini-maxit/lchelper/pkg/errors"
	"go.uber.org/zap"
)

// Invocation describes a single run of the tool. It is built per operation and never reused.
type Invocation struct {
	ID string
	// Command is the executable followed by fixed leading arguments.
	Command    []string
	Subcommand string
	Args       []string
	// Capture streams the merged stdout/stderr back to the caller instead of inheriting stdio.
	Capture bool
}

func NewInvocation(command []string, subcommand string, capture bool, args ...string) Invocation {
	return Invocation{
		ID:         uuid.NewString(),
		Command:    command,
		Subcommand: subcommand,
		Args:       args,
		Capture:    capture,
	}
}

// Argv returns the arguments passed after the executable.
func (inv Invocation) Argv() []string {
	argv := make([]string, 0, len(inv.Command)+len(inv.Args))
	if len(inv.Command) > 1 {
		argv = append(argv, inv.Command[1:]...)
	}
	argv = append(argv, inv.Subcommand)
	return append(argv, inv.Args...)
}

func (inv Invocation) String() string {
	return strings.Join(append(inv.Command[:1:1], inv.Argv()...), " ")
}

type Runner interface {
	Launch(ctx context.Context, inv Invocation) (*Handle, error)
}

type runner struct {
	searchPath SearchPath
	logger     *zap.SugaredLogger
}

func NewRunner(searchPath SearchPath) Runner {
	return &runner{
		searchPath: searchPath,
		logger:     logger.NewNamedLogger("runner"),
	}
}

// Launch starts the tool without blocking on its completion.
// The process is not bound to ctx; it runs until it exits on its own.
// A detached process shares the terminal, callers that own the terminal wait on Handle.Exited.
func (r *runner) Launch(ctx context.Context, inv Invocation) (*Handle, error) {
	if len(inv.Command) == 0 || inv.Command[0] == "" {
		return nil, customErr.ErrEmptyToolCommand
	}

	path, err := r.searchPath.LookPath(inv.Command[0])
	if err != nil {
		r.logger.Errorf("Failed to resolve %s: %s [InvID: %s]", inv.Command[0], err, inv.ID)
		return nil, err
	}

	cmd := exec.Command(path, inv.Argv()...)
	cmd.Env = r.searchPath.Environ(os.Environ())

	if !inv.Capture {
		return r.startDetached(inv, cmd)
	}
	return r.startCapturing(inv, cmd)
}

func (r *runner) startDetached(inv Invocation, cmd *exec.Cmd) (*Handle, error) {
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	r.logger.Infof("Starting detached %s [InvID: %s]", inv, inv.ID)
	if err := cmd.Start(); err != nil {
		r.logger.Errorf("Failed to start %s: %s [InvID: %s]", inv, err, inv.ID)
		return nil, wrapStartError(err)
	}

	h := newDetachedHandle(inv.ID, cmd.Process.Pid)

	go func() {
		defer h.markExited()
		err := cmd.Wait()
		if err != nil {
			r.logger.Warnf("Detached process %d finished with error: %s [InvID: %s]", h.PID, err, inv.ID)
			return
		}
		r.logger.Infof("Detached process %d finished [InvID: %s]", h.PID, inv.ID)
	}()

	return h, nil
}

func (r *runner) startCapturing(inv Invocation, cmd *exec.Cmd) (*Handle, error) {
	// A single pipe for both streams keeps the OS delivery order between them.
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("%w: creating output pipe: %v", customErr.ErrLaunchFailure, err)
	}
	cmd.Stdout = pw
	cmd.Stderr = pw

	r.logger.Infof("Starting %s [InvID: %s]", inv, inv.ID)
	if err := cmd.Start(); err != nil {
		pr.Close()
		pw.Close()
		r.logger.Errorf("Failed to start %s: %s [InvID: %s]", inv, err, inv.ID)
		return nil, wrapStartError(err)
	}
	// The child holds its own copy of the write end, EOF arrives once it is gone.
	pw.Close()

	h := newCapturingHandle(inv.ID, cmd.Process.Pid)
	go r.pump(inv, cmd, pr, h)

	return h, nil
}

// pump forwards output lines until EOF, then reaps the process and publishes the result.
func (r *runner) pump(inv Invocation, cmd *exec.Cmd, pr *os.File, h *Handle) {
	var output strings.Builder
	var readErr error

	reader := bufio.NewReader(pr)
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			output.WriteString(line)
			h.lines <- strings.TrimRight(line, "\r\n")
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				readErr = err
			}
			break
		}
	}
	pr.Close()

	waitErr := cmd.Wait()
	exitCode := constants.ExitCodeSuccess
	var resultErr error
	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = constants.ExitCodeUnknown
			resultErr = waitErr
		}
	}
	if resultErr == nil && readErr != nil {
		resultErr = fmt.Errorf("reading output: %w", readErr)
	}

	r.logger.Infof("Process %d exited with code %d [InvID: %s]", h.PID, exitCode, inv.ID)
	h.finish(Result{
		Output:   output.String(),
		ExitCode: exitCode,
		Err:      resultErr,
	})
}

func wrapStartError(err error) error {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", customErr.ErrToolMissing, err)
	}
	return fmt.Errorf("%w: %v", customErr.ErrLaunchFailure, err)
}
