package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/mini-maxit/lchelper/internal/commands"
	"github.com/mini-maxit/lchelper/internal/console"
	"github.com/mini-maxit/lchelper/internal/logger"
	"github.com/mini-maxit/lchelper/pkg/constants"
	"github.com/mini-maxit/lchelper/pkg/errors"
	"go.uber.org/zap"
)

type Scheduler interface {
	// Dispatch validates on the calling goroutine and runs the command's task in the background.
	// The returned channel receives exactly one report.
	Dispatch(name string, cc commands.Context) (<-chan commands.Report, error)
	// Wait blocks until every dispatched task has finished.
	Wait()
	GetWorkersStatus() map[string]interface{}
}

type scheduler struct {
	mu               sync.Mutex
	busyWorkersCount int
	queuedCount      int
	maxWorkers       int
	slots            chan struct{}
	wg               sync.WaitGroup
	commands         map[string]commands.Command
	sink             console.Sink
	logger           *zap.SugaredLogger
}

func NewScheduler(maxWorkers int, registry map[string]commands.Command, sink console.Sink) Scheduler {
	if maxWorkers < 1 {
		maxWorkers = constants.DefaultMaxWorkers
	}

	return &scheduler{
		maxWorkers: maxWorkers,
		slots:      make(chan struct{}, maxWorkers),
		commands:   registry,
		sink:       sink,
		logger:     logger.NewNamedLogger("scheduler"),
	}
}

func (s *scheduler) Dispatch(name string, cc commands.Context) (<-chan commands.Report, error) {
	cmd, ok := s.commands[name]
	if !ok {
		err := fmt.Errorf("%w: %s", errors.ErrUnknownCommand, name)
		s.sink.Println(commands.Describe(err))
		return nil, err
	}

	task, err := cmd.Prepare(cc)
	if err != nil {
		s.logger.Infof("Command %s rejected: %s", name, err)
		s.sink.Println(commands.Describe(err))
		return nil, err
	}

	done := make(chan commands.Report, 1)
	s.wg.Add(1)
	s.mu.Lock()
	s.queuedCount++
	s.mu.Unlock()

	go s.run(name, task, done)

	return done, nil
}

func (s *scheduler) run(name string, task commands.Task, done chan<- commands.Report) {
	defer s.wg.Done()

	s.slots <- struct{}{}
	s.markBusy()
	defer s.markIdle()

	report := commands.Report{Command: name}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorf("Command %s panicked: %v", name, r)
			report.Err = fmt.Errorf("command %s panicked: %v", name, r)
			s.sink.Println(commands.Describe(report.Err))
		}
		done <- report
	}()

	report = task(context.Background())
	if report.Err != nil {
		s.sink.Println(commands.Describe(report.Err))
	}
}

func (s *scheduler) markBusy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queuedCount--
	s.busyWorkersCount++
}

func (s *scheduler) markIdle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busyWorkersCount--
	<-s.slots
}

func (s *scheduler) Wait() {
	s.wg.Wait()
}

func (s *scheduler) GetWorkersStatus() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]interface{}{
		"busy_workers":  s.busyWorkersCount,
		"queued_tasks":  s.queuedCount,
		"total_workers": s.maxWorkers,
	}
}
