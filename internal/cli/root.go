// Package cli implements the notekeeper command-line interface: one-shot
// commands for notes, items, reports and search, plus the interactive menu.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/notekeeper/internal/paths"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values shared by all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	backend   string
	logLevel  string
}

// app is the state built by the root command before any subcommand runs.
type app struct {
	flags   rootFlags
	config  *viper.Viper
	dirs    paths.Dirs
	backend string
	log     *slog.Logger
}

// NewRootCmd creates the top-level "notekeeper" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{log: slog.New(slog.DiscardHandler)}

	root := &cobra.Command{
		Use:   "notekeeper",
		Short: "Keep notes and their to-do items",
		Long: "Notekeeper manages titled notes, each holding a list of to-do items,\n" +
			"with categories, priorities, archiving, reports and search.",
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	pf.StringVar(&a.flags.backend, "backend", "", "storage backend: xml or sqlite")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newNoteCmd(a))
	root.AddCommand(newItemCmd(a))
	root.AddCommand(newReportCmd(a))
	root.AddCommand(newSearchCmd(a))
	root.AddCommand(newMenuCmd(a))

	return root
}

// Execute runs the root command against the process arguments and exits
// with the resulting code.
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// Run executes the command line args and returns the exit code.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "notekeeper:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// setup loads the environment and configuration, then builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := loadDotEnv(); err != nil {
		return sysError(err)
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	a.config, err = loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}

	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.config.GetString(cfgKeyDataDir))
	if err != nil {
		return sysError(fmt.Errorf("resolve data dir: %w", err))
	}
	a.dirs = paths.Dirs{Config: configDir, Data: dataDir}

	a.backend = a.config.GetString(cfgKeyBackend)
	if a.flags.backend != "" {
		a.backend = a.flags.backend
	}

	level := a.config.GetString(cfgKeyLogLevel)
	if a.flags.logLevel != "" {
		level = a.flags.logLevel
	}
	a.log, err = newLogger(cmd.ErrOrStderr(), level)
	if err != nil {
		return userError("%v", err)
	}

	a.log.Debug("configuration resolved",
		"config_dir", a.dirs.Config, "data_dir", a.dirs.Data, "backend", a.backend)
	return nil
}

// exitError carries the process exit code for a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// userError reports bad input: an invalid index, category, or a write to an
// archived note.
func userError(format string, args ...any) error {
	return &exitError{code: exitUserError, err: fmt.Errorf(format, args...)}
}

// sysError reports a configuration or persistence failure.
func sysError(err error) error {
	return &exitError{code: exitSysError, err: err}
}

// exitCode maps err to a process exit code. Errors raised by cobra itself,
// such as unknown flags or a wrong argument count, are user errors.
func exitCode(err error) int {
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	return exitUserError
}
