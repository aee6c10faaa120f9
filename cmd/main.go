package main

import (
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/mini-maxit/lchelper/internal/commands"
	"github.com/mini-maxit/lchelper/internal/config"
	"github.com/mini-maxit/lchelper/internal/console"
	"github.com/mini-maxit/lchelper/internal/logger"
	"github.com/mini-maxit/lchelper/internal/problem"
	"github.com/mini-maxit/lchelper/internal/runner"
	"github.com/mini-maxit/lchelper/internal/scheduler"
	"github.com/mini-maxit/lchelper/internal/shell"
	"github.com/mini-maxit/lchelper/pkg/constants"
)

func main() {
	// Initialize the logger
	logger.InitializeLogger()
	defer logger.Sync()

	log := logger.NewNamedLogger("main")
	log.Info("Starting lchelper")

	// Load the configuration
	cfg := config.NewConfig()

	searchPath := runner.NewSearchPath(os.Getenv("PATH"), cfg.ToolBinDir)
	log.Infof("Tool search path: %s", searchPath)

	// Initialize the services
	sink := console.NewConsole(os.Stdout, cfg.ClearLines)
	registry := commands.NewRegistry(commands.Deps{
		ToolCommand: cfg.ToolCommand,
		Resolver:    problem.NewResolver(cfg.AllowedExtensions),
		Runner:      runner.NewRunner(searchPath),
		Sink:        sink,
	})
	sched := scheduler.NewScheduler(cfg.MaxWorkers, registry, sink)

	if len(os.Args) > 1 {
		code := runOnce(sched, os.Args[1:])
		log.Infof("One-shot command finished with status %d", code)
		logger.Sync()
		os.Exit(code)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          constants.ShellPrompt,
		HistoryFile:     cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       constants.BuiltinExit,
	})
	if err != nil {
		log.Fatalf("Failed to initialize terminal: %s", err.Error())
	}
	defer func() {
		if err := rl.Close(); err != nil {
			log.Errorf("Failed to close terminal: %s", err.Error())
		}
	}()

	if err := shell.NewShell(rl, sched, sink).Run(); err != nil {
		log.Errorf("Shell stopped: %s", err.Error())
	}
	log.Info("Shutting down")
}

// runOnce handles `lchelper <command> <arg> [-y]` and returns the process exit status.
func runOnce(sched scheduler.Scheduler, args []string) int {
	name := args[0]
	var arg string
	assumeYes := false
	for _, a := range args[1:] {
		switch a {
		case "-y", "--yes":
			assumeYes = true
		default:
			if arg == "" {
				arg = a
			}
		}
	}

	cc := commands.Context{
		Input:    arg,
		FilePath: arg,
		Confirm: func(question string) bool {
			if assumeYes {
				return true
			}
			fmt.Print(question + constants.ConfirmSuffix)
			var answer string
			_, _ = fmt.Scanln(&answer)
			return answer == "y" || answer == "Y" || answer == "yes"
		},
	}

	done, err := sched.Dispatch(name, cc)
	if err != nil {
		return 1
	}
	report := <-done
	sched.Wait()
	if report.Exited != nil {
		<-report.Exited
	}

	if succeeded(report) {
		return 0
	}
	return 1
}

func succeeded(report commands.Report) bool {
	if report.Err != nil {
		return false
	}
	if report.Outcome == nil {
		return true
	}
	return report.Outcome.Verdict.Passed()
}
