// Package cli implements the contacts command-line interface: the
// interactive assistant session and the one-shot exec, init and version
// subcommands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/contacts/internal/book"
	"github.com/mesh-intelligence/contacts/internal/logging"
	"github.com/mesh-intelligence/contacts/internal/paths"
	"github.com/mesh-intelligence/contacts/internal/router"
	"github.com/mesh-intelligence/contacts/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError carries the process exit code for an error. A nil err means
// the message was already printed.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error { return &exitError{code: exitUserError, err: err} }

func sysError(err error) error { return &exitError{code: exitSysError, err: err} }

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	color     string
	logLevel  string
}

// app is the state shared by subcommands once configuration is loaded.
type app struct {
	flags     rootFlags
	configDir string
	dataDir   string
	cfg       types.Config
	logger    *zap.Logger
	logCloser io.Closer
}

// NewRootCmd creates the top-level "contacts" command with global flags
// and all subcommands registered. Run without a subcommand it starts the
// interactive session.
func NewRootCmd() *cobra.Command {
	a := &app{logger: logging.Nop()}

	root := &cobra.Command{
		Use:   "contacts",
		Short: "An interactive contact manager",
		Long: `contacts keeps a small address book of named contacts with phones,
email, address, birthday, notes and tags. Run without a subcommand to
start the interactive assistant.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
		RunE: a.runSession,
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/contacts)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "directory for save/load filenames (default: current directory)")
	root.PersistentFlags().StringVar(&a.flags.color, "color", "", "color output: auto, always, never")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newExecCmd(a))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(report(root.ErrOrStderr(), err))
	}
}

// report prints err unless it was already shown and returns its exit code.
func report(w io.Writer, err error) int {
	var ee *exitError
	if !errors.As(err, &ee) || ee.err != nil {
		fmt.Fprintln(w, "contacts:", err)
	}
	return exitCode(err)
}

// exitCode maps err to a process exit code. Errors without a code are
// user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// setup resolves directories, loads config.yaml and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}

	cfg := configFromViper(v)
	if a.flags.color != "" {
		cfg.Color = a.flags.color
	}
	if a.flags.logLevel != "" {
		cfg.LogLevel = a.flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return userError(fmt.Errorf("config: %w", err))
	}

	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, cfg.DataDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve data dir: %w", err))
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return sysError(fmt.Errorf("create data dir: %w", err))
	}

	logger, closer, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cfg.LogOutput,
	})
	if err != nil {
		return sysError(err)
	}

	a.configDir = configDir
	a.dataDir = dataDir
	a.cfg = cfg
	a.logger = logger
	a.logCloser = closer
	a.logger.Debug("configuration loaded",
		zap.String("config_dir", configDir),
		zap.String("data_dir", dataDir),
		zap.String("format", cfg.Format),
	)
	return nil
}

func (a *app) teardown() error {
	_ = a.logger.Sync()
	if a.logCloser != nil {
		return a.logCloser.Close()
	}
	return nil
}

// newRouter builds an empty book and a router over it.
func (a *app) newRouter() *router.Router {
	b := book.New(
		book.WithFormat(a.cfg.Format),
		book.WithLogger(a.logger.Named("book")),
	)
	return router.New(b,
		router.WithDataDir(a.dataDir),
		router.WithLogger(a.logger.Named("router")),
	)
}
