package runner

import "github.com/mini-maxit/lchelper/pkg/constants"

// Result is the final state of a capturing invocation.
type Result struct {
	// Output holds every line the process wrote, in arrival order.
	Output   string
	ExitCode int
	// Err is set when the exit status could not be obtained or reading the output failed.
	Err error
	// Detached is set for invocations started without output capture.
	Detached bool
}

// Handle is the caller's view of a launched process.
type Handle struct {
	ID  string
	PID int

	lines  chan string
	done   chan struct{}
	exited chan struct{}
	result Result
}

func newCapturingHandle(id string, pid int) *Handle {
	return &Handle{
		ID:     id,
		PID:    pid,
		lines:  make(chan string, 64),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}
}

func newDetachedHandle(id string, pid int) *Handle {
	h := &Handle{
		ID:     id,
		PID:    pid,
		lines:  make(chan string),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
		result: Result{ExitCode: constants.ExitCodeUnknown, Detached: true},
	}
	close(h.lines)
	close(h.done)
	return h
}

// NewFinishedHandle returns a handle whose output is already complete.
func NewFinishedHandle(id string, lines []string, result Result) *Handle {
	h := &Handle{
		ID:     id,
		lines:  make(chan string, len(lines)),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	for _, line := range lines {
		h.lines <- line
	}
	h.finish(result)
	return h
}

// Lines yields output lines as the process writes them. The channel is closed
// after the process has exited. It can be drained only once.
func (h *Handle) Lines() <-chan string {
	return h.lines
}

// Exited is closed once the process is gone. For detached processes this is
// the only completion signal, Wait returns without blocking.
func (h *Handle) Exited() <-chan struct{} {
	return h.exited
}

// Wait discards lines nobody consumed and returns the final result.
func (h *Handle) Wait() Result {
	for range h.lines {
	}
	<-h.done
	return h.result
}

func (h *Handle) finish(result Result) {
	h.result = result
	close(h.lines)
	close(h.done)
	close(h.exited)
}

func (h *Handle) markExited() {
	close(h.exited)
}
