// Package cmd implements the CLI command structure for momo.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/momo-go/internal/command"
	"github.com/nibzard/momo-go/internal/config"
	"github.com/nibzard/momo-go/internal/logging"
	"github.com/nibzard/momo-go/internal/storage"
	"github.com/nibzard/momo-go/internal/task"
	"github.com/nibzard/momo-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Standard streams, replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// configFileName is the project config file written by init.
const configFileName = "momo.toml"

// Run executes the momo CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("momo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// No subcommand starts the interactive console
	subcommand := "run"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	logger := newLogger(cfg)
	logger.Debug("config loaded", "files", cfg.ConfigFiles, "task_file", cfg.TaskFile)

	switch subcommand {
	case "run":
		return runCommand(ctx, cfg, logger, remainingArgs)
	case "tui":
		return tuiCommand(ctx, cfg, logger, remainingArgs)
	case "do":
		return doCommand(cfg, logger, remainingArgs)
	case "check":
		return checkCommand(cfg, logger, remainingArgs)
	case "init":
		return initCommand(cfg, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

func newLogger(cfg *config.Config) *log.Logger {
	return logging.NewFromConfig(stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
}

// resolveTaskFile returns the task file named by an optional positional
// argument, falling back to the configured one.
func resolveTaskFile(cfg *config.Config, args []string) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("unexpected arguments: %v", args[1:])
	}
	path := cfg.TaskFile
	if len(args) == 1 {
		path = args[0]
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.ProjectRoot, path)
	}
	return path, nil
}

// openManager opens the task file and loads its tasks.
func openManager(path string, cfg *config.Config, logger *log.Logger) (*task.Manager, error) {
	store, err := storage.NewFileStore(path, storage.WithLogger(logger), storage.WithLock(cfg.Lock))
	if err != nil {
		return nil, err
	}
	return task.NewManager(store)
}

// runCommand runs the line console on stdin.
func runCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	path, err := resolveTaskFile(cfg, args)
	if err != nil {
		return err
	}

	console := ui.NewConsole(stdout, ui.WithPrompt(cfg.Prompt))
	manager, err := openManager(path, cfg, logger)
	if err != nil {
		logger.Error("storage failure", "err", err)
		console.ShowFatal(err)
		return err
	}

	exec := command.NewExecutor(manager, console, logger)
	return console.Run(ctx, stdin, exec)
}

// tuiCommand runs the full-screen shell.
func tuiCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	path, err := resolveTaskFile(cfg, args)
	if err != nil {
		return err
	}

	manager, err := openManager(path, cfg, logger)
	if err != nil {
		return fmt.Errorf("opening task file: %w", err)
	}

	tui := ui.NewTUI(cfg.Prompt)
	exec := command.NewExecutor(manager, tui.Display(), logger)
	return tui.Run(ctx, exec)
}

// doCommand handles one command line built from the remaining words.
func doCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) == 0 {
		return errors.New("do requires a command, e.g. momo do todo read book")
	}
	path, err := resolveTaskFile(cfg, nil)
	if err != nil {
		return err
	}

	console := ui.NewConsole(stdout, ui.WithFrame(false))
	manager, err := openManager(path, cfg, logger)
	if err != nil {
		return fmt.Errorf("opening task file: %w", err)
	}

	exec := command.NewExecutor(manager, console, logger)
	if _, err := exec.Handle(strings.Join(args, " ")); err != nil {
		if command.IsFatal(err) {
			return err
		}
		console.ShowError(err)
		return err
	}
	return nil
}

// checkCommand loads the configuration and the task file and reports what
// it found. A corrupt task file fails the check.
func checkCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	path, err := resolveTaskFile(cfg, args)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, "Momo Check")
	fmt.Fprintln(stdout, "==========")
	fmt.Fprintln(stdout)

	fmt.Fprintln(stdout, "Config files:")
	if len(cfg.ConfigFiles) == 0 {
		fmt.Fprintln(stdout, "  (none, using defaults)")
	}
	for _, file := range cfg.ConfigFiles {
		fmt.Fprintf(stdout, "  %s\n", file)
	}
	fmt.Fprintln(stdout)

	fmt.Fprintf(stdout, "Task file: %s\n", path)
	manager, err := openManager(path, cfg, logger)
	if err != nil {
		fmt.Fprintf(stdout, "  ❌ Error: %v\n", err)
		return fmt.Errorf("task file check failed: %w", err)
	}
	fmt.Fprintln(stdout, "  ✅ OK")
	fmt.Fprintln(stdout)

	var todos, deadlines, events, done int
	for _, t := range manager.Tasks() {
		switch t.Kind() {
		case task.KindTodo:
			todos++
		case task.KindDeadline:
			deadlines++
		case task.KindEvent:
			events++
		}
		if t.IsComplete() {
			done++
		}
	}
	fmt.Fprintf(stdout, "Tasks: %d (todo %d, deadline %d, event %d)\n", manager.Size(), todos, deadlines, events)
	fmt.Fprintf(stdout, "Completed: %d/%d\n", done, manager.Size())
	return nil
}

// initCommand writes the example config to the project root.
func initCommand(cfg *config.Config, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	path := filepath.Join(cfg.ProjectRoot, configFileName)
	if err := config.WriteExample(path); err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s already exists", path)
		}
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(stdout, "Wrote %s\n", path)
	return nil
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Fprintf(stdout, "momo version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Momo - a small task tracker")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  momo [options] [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run [file]      Start the interactive console (default command)")
	fmt.Fprintln(w, "  tui [file]      Launch terminal UI")
	fmt.Fprintln(w, "  do <command>    Run a single command, e.g. momo do todo read book")
	fmt.Fprintln(w, "  check [file]    Check config and task file validity")
	fmt.Fprintln(w, "  init            Write an example momo.toml to the current directory")
	fmt.Fprintln(w, "  version         Show version information")
	fmt.Fprintln(w, "  help            Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Console commands:")
	fmt.Fprintln(w, "  list | todo <task> | deadline <task> /by <date>")
	fmt.Fprintln(w, "  event <task> /from <start> /to <end>")
	fmt.Fprintln(w, "  mark <n> | unmark <n> | delete <n> | tag <n> <tag> | untag <n> <tag>")
	fmt.Fprintln(w, "  find <keyword> | find #<tag> | bye")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Dates are yyyy-MM-dd or yyyy-MM-dd HHmm.")
}
