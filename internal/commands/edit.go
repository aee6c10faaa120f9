package commands

import (
	"context"

	"github.com/mini-maxit/lchelper/internal/console"
	"github.com/mini-maxit/lchelper/internal/problem"
	"github.com/mini-maxit/lchelper/internal/runner"
	"github.com/mini-maxit/lchelper/pkg/constants"
	"go.uber.org/zap"
)

type editCommand struct {
	toolCommand []string
	runner      runner.Runner
	sink        console.Sink
	logger      *zap.SugaredLogger
}

// NewEditCommand opens a problem through `leetcode edit`. The tool is started detached.
func NewEditCommand(deps Deps) Command {
	return &editCommand{
		toolCommand: deps.ToolCommand,
		runner:      deps.Runner,
		sink:        deps.Sink,
		logger:      newLogger(),
	}
}

func (c *editCommand) Name() string {
	return constants.CommandEdit
}

func (c *editCommand) Prepare(cc Context) (Task, error) {
	id, err := problem.FromText(cc.Input)
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context) Report {
		inv := runner.NewInvocation(c.toolCommand, constants.SubcommandEdit, false, id.String())
		c.logger.Infof("Editing problem %s [InvID: %s]", id, inv.ID)

		h, err := c.runner.Launch(ctx, inv)
		if err != nil {
			c.logger.Errorf("Launch failed: %s [InvID: %s]", err, inv.ID)
			return Report{Command: c.Name(), Problem: id, Err: err}
		}

		c.logger.Infof("Editor started with pid %d [InvID: %s]", h.PID, inv.ID)
		c.sink.Printf(constants.MessageEditLaunched, id)
		return Report{Command: c.Name(), Problem: id, Exited: h.Exited()}
	}, nil
}
