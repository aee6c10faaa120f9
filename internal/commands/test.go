package commands

import (
	"context"

	"github.com/mini-maxit/lchelper/internal/classifier"
	"github.com/mini-maxit/lchelper/internal/problem"
	"github.com/mini-maxit/lchelper/pkg/constants"
)

type testCommand struct {
	resolver *problem.Resolver
	run      *capturedRun
}

// NewTestCommand runs the example cases of the active file's problem.
func NewTestCommand(deps Deps) Command {
	return &testCommand{
		resolver: deps.Resolver,
		run: &capturedRun{
			name:        constants.CommandTest,
			toolCommand: deps.ToolCommand,
			subcommand:  constants.SubcommandTest,
			mode:        classifier.Test,
			runner:      deps.Runner,
			sink:        deps.Sink,
			logger:      newLogger(),
		},
	}
}

func (c *testCommand) Name() string {
	return constants.CommandTest
}

func (c *testCommand) Prepare(cc Context) (Task, error) {
	id, err := c.resolver.FromPath(cc.FilePath)
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context) Report {
		return c.run.run(ctx, id, true)
	}, nil
}
