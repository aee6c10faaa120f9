package scheduler_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	gomock "go.uber.org/mock/gomock"

	"github.com/mini-maxit/lchelper/internal/classifier"
	"github.com/mini-maxit/lchelper/internal/commands"
	"github.com/mini-maxit/lchelper/internal/console"
	. "github.com/mini-maxit/lchelper/internal/scheduler"
	"github.com/mini-maxit/lchelper/pkg/constants"
	pkgerrors "github.com/mini-maxit/lchelper/pkg/errors"
	"github.com/mini-maxit/lchelper/pkg/verdict"
	mocktests "github.com/mini-maxit/lchelper/tests/mocks"
)

// lockedBuffer lets the console be read while tasks are still writing.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newSink() (*lockedBuffer, console.Sink) {
	out := &lockedBuffer{}
	return out, console.NewConsole(out, 0)
}

func TestNewScheduler(t *testing.T) {
	_, sink := newSink()
	s := NewScheduler(3, map[string]commands.Command{}, sink)
	if s == nil {
		t.Fatalf("NewScheduler returned nil")
	}

	status := s.GetWorkersStatus()
	if status["total_workers"].(int) != 3 {
		t.Fatalf("expected 3 workers, got %v", status["total_workers"])
	}

	s = NewScheduler(0, map[string]commands.Command{}, sink)
	if got := s.GetWorkersStatus()["total_workers"].(int); got != constants.DefaultMaxWorkers {
		t.Fatalf("expected default worker count %d, got %d", constants.DefaultMaxWorkers, got)
	}
}

func TestDispatch_UnknownCommand(t *testing.T) {
	out, sink := newSink()
	s := NewScheduler(1, map[string]commands.Command{}, sink)

	_, err := s.Dispatch("compile", commands.Context{})
	if !errors.Is(err, pkgerrors.ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
	if out.String() == "" {
		t.Fatalf("expected a message on the console")
	}
}

func TestDispatch_PrepareErrorIsReportedSynchronously(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cmd := mocktests.NewMockCommand(ctrl)
	cmd.EXPECT().Prepare(gomock.Any()).Return(nil, pkgerrors.ErrInvalidInput).Times(1)

	out, sink := newSink()
	s := NewScheduler(1, map[string]commands.Command{"edit": cmd}, sink)

	done, err := s.Dispatch("edit", commands.Context{Input: "abc"})
	if !errors.Is(err, pkgerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if done != nil {
		t.Fatalf("expected no report channel for rejected command")
	}
	if out.String() == "" {
		t.Fatalf("expected the error to be printed before Dispatch returned")
	}
}

func TestDispatch_RunsTaskInBackground(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	release := make(chan struct{})
	outcome := classifier.Outcome{Verdict: verdict.Accepted}
	task := commands.Task(func(ctx context.Context) commands.Report {
		<-release
		return commands.Report{Command: "test", Problem: "42", Outcome: &outcome}
	})

	cmd := mocktests.NewMockCommand(ctrl)
	cmd.EXPECT().Prepare(gomock.Any()).Return(task, nil).Times(1)

	_, sink := newSink()
	s := NewScheduler(2, map[string]commands.Command{"test": cmd}, sink)

	returned := make(chan (<-chan commands.Report), 1)
	go func() {
		done, err := s.Dispatch("test", commands.Context{FilePath: "42.cpp"})
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		returned <- done
	}()

	var done <-chan commands.Report
	select {
	case done = <-returned:
	case <-time.After(5 * time.Second):
		t.Fatalf("Dispatch blocked on the task")
	}

	close(release)
	report := <-done
	if report.Outcome == nil || report.Outcome.Verdict != verdict.Accepted {
		t.Fatalf("unexpected report: %+v", report)
	}

	s.Wait()
	if busy := s.GetWorkersStatus()["busy_workers"].(int); busy != 0 {
		t.Fatalf("expected no busy workers after Wait, got %d", busy)
	}
}

func TestDispatch_BoundsConcurrentTasks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var mu sync.Mutex
	running, peak := 0, 0
	release := make(chan struct{})
	task := commands.Task(func(ctx context.Context) commands.Report {
		mu.Lock()
		running++
		if running > peak {
			peak = running
		}
		mu.Unlock()

		<-release

		mu.Lock()
		running--
		mu.Unlock()
		return commands.Report{Command: "test"}
	})

	cmd := mocktests.NewMockCommand(ctrl)
	cmd.EXPECT().Prepare(gomock.Any()).Return(task, nil).Times(5)

	_, sink := newSink()
	s := NewScheduler(2, map[string]commands.Command{"test": cmd}, sink)

	for i := 0; i < 5; i++ {
		if _, err := s.Dispatch("test", commands.Context{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	time.Sleep(100 * time.Millisecond)
	close(release)
	s.Wait()

	if peak > 2 {
		t.Fatalf("expected at most 2 concurrent tasks, got %d", peak)
	}
	status := s.GetWorkersStatus()
	if status["queued_tasks"].(int) != 0 || status["busy_workers"].(int) != 0 {
		t.Fatalf("unexpected status after Wait: %v", status)
	}
}

func TestDispatch_TaskErrorIsPrinted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	task := commands.Task(func(ctx context.Context) commands.Report {
		return commands.Report{Command: "edit", Err: pkgerrors.ErrToolMissing}
	})
	cmd := mocktests.NewMockCommand(ctrl)
	cmd.EXPECT().Prepare(gomock.Any()).Return(task, nil).Times(1)

	out, sink := newSink()
	s := NewScheduler(1, map[string]commands.Command{"edit": cmd}, sink)

	done, err := s.Dispatch("edit", commands.Context{Input: "1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	report := <-done
	s.Wait()

	if !errors.Is(report.Err, pkgerrors.ErrToolMissing) {
		t.Fatalf("expected ErrToolMissing in report, got %v", report.Err)
	}
	if !bytes.Contains([]byte(out.String()), []byte("cargo install leetcode-cli")) {
		t.Fatalf("expected install instructions, got %q", out.String())
	}
}

func TestDispatch_PanicIsRecovered(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	task := commands.Task(func(ctx context.Context) commands.Report {
		panic("display sink exploded")
	})
	cmd := mocktests.NewMockCommand(ctrl)
	cmd.EXPECT().Prepare(gomock.Any()).Return(task, nil).Times(1)

	out, sink := newSink()
	s := NewScheduler(1, map[string]commands.Command{"test": cmd}, sink)

	done, err := s.Dispatch("test", commands.Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	report := <-done
	s.Wait()

	if report.Err == nil {
		t.Fatalf("expected the panic to surface as an error")
	}
	if !bytes.Contains([]byte(out.String()), []byte("display sink exploded")) {
		t.Fatalf("expected a warning on the console, got %q", out.String())
	}
}
