package commands

import (
	"context"
	"fmt"

	"github.com/mini-maxit/lchelper/internal/classifier"
	"github.com/mini-maxit/lchelper/internal/problem"
	"github.com/mini-maxit/lchelper/pkg/constants"
	customErr "github.com/mini-maxit/lchelper/pkg/errors"
)

type submitCommand struct {
	resolver *problem.Resolver
	run      *capturedRun
}

// NewSubmitCommand submits the active file through `leetcode exec` after the user confirms.
func NewSubmitCommand(deps Deps) Command {
	return &submitCommand{
		resolver: deps.Resolver,
		run: &capturedRun{
			name:        constants.CommandSubmit,
			toolCommand: deps.ToolCommand,
			subcommand:  constants.SubcommandSubmit,
			mode:        classifier.Submit,
			runner:      deps.Runner,
			sink:        deps.Sink,
			logger:      newLogger(),
		},
	}
}

func (c *submitCommand) Name() string {
	return constants.CommandSubmit
}

func (c *submitCommand) Prepare(cc Context) (Task, error) {
	id, err := c.resolver.FromPath(cc.FilePath)
	if err != nil {
		return nil, err
	}

	if cc.Confirm == nil || !cc.Confirm(fmt.Sprintf(constants.MessageSubmitConfirm, id)) {
		return nil, customErr.ErrSubmissionCancelled
	}

	return func(ctx context.Context) Report {
		return c.run.run(ctx, id, false)
	}, nil
}
