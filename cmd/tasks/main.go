package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/abatilo/tasks/internal/config"
	"github.com/abatilo/tasks/internal/logging"
	"github.com/abatilo/tasks/internal/output"
	"github.com/abatilo/tasks/internal/storage"
)

// rootFlags holds the persistent flags shared by every subcommand.
type rootFlags struct {
	configFile string
	dataFile   string
	json       bool
	logLevel   string
	logFormat  string
}

// app carries the resources a subcommand needs. It is populated by the root
// command's PersistentPreRunE.
type app struct {
	flags     rootFlags
	cfg       *config.Config
	logger    *log.Logger
	store     *storage.Store
	formatter output.Formatter
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{}
	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		f := a.formatter
		if f == nil {
			f = output.NewHumanFormatter()
		}
		_, _ = io.WriteString(stderr, f.FormatError(err))
		return exitCode(err)
	}
	return exitOK
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tasks",
		Short:         "A personal task tracker",
		Long:          "tasks - A personal task tracker backed by a single JSON file.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.formatter = output.New(a.flags.json)
			if skipsSetup(cmd) {
				return nil
			}
			return a.setup(cmd)
		},
	}
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.flags.configFile, "config", "", "Config file (default .tasks.toml in the working directory)")
	pf.StringVar(&a.flags.dataFile, "file", "", "Tasks file (overrides data_file)")
	pf.BoolVar(&a.flags.json, "json", false, "Output in JSON format")
	pf.StringVar(&a.flags.logLevel, "log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	pf.StringVar(&a.flags.logFormat, "log-format", config.DefaultLogFormat, "Log format (text, logfmt, json)")

	rootCmd.AddCommand(
		addCmd(a),
		listCmd(a),
		showCmd(a),
		updateCmd(a),
		doneCmd(a),
		undoCmd(a),
		rmCmd(a),
		searchCmd(a),
		statsCmd(a),
		exportCmd(a),
		uiCmd(a),
	)
	return rootCmd
}

// skipsSetup reports whether cmd is help or shell completion, which must work
// without a readable config or tasks file.
func skipsSetup(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return true
		}
	}
	return false
}

// setup loads configuration and opens the store. Only flags the user set
// explicitly override lower configuration layers.
func (a *app) setup(cmd *cobra.Command) error {
	a.formatter = output.New(a.flags.json)

	flags := cmd.Flags()
	o := config.Overrides{ConfigFile: a.flags.configFile}
	if flags.Changed("file") {
		o.DataFile = &a.flags.dataFile
	}
	if flags.Changed("json") {
		o.JSON = &a.flags.json
	}
	if flags.Changed("log-level") {
		o.LogLevel = &a.flags.logLevel
	}
	if flags.Changed("log-format") {
		o.LogFormat = &a.flags.logFormat
	}

	cfg, err := config.Load(o)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.formatter = output.New(cfg.JSON)
	a.logger = logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)

	store, err := storage.Open(cfg.DataFile, storage.WithLogger(a.logger))
	if err != nil {
		return err
	}
	a.store = store
	a.logger.Debug("opened store", "path", store.Path(), "command", cmd.Name())
	return nil
}

func (a *app) print(cmd *cobra.Command, s string) {
	_, _ = io.WriteString(cmd.OutOrStdout(), s)
}

func (a *app) printMessage(cmd *cobra.Command, format string, args ...any) {
	a.print(cmd, a.formatter.FormatMessage(fmt.Sprintf(format, args...)))
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, invalidIDError(arg)
	}
	return id, nil
}
