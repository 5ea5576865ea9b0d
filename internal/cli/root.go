// Package cli implements the funnelkit command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/funnelkit/internal/paths"
	"github.com/mesh-intelligence/funnelkit/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// app holds per-invocation state shared by all subcommands.
type app struct {
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool

	cfg    *viper.Viper
	logger *zap.Logger
	out    io.Writer
}

// NewRootCmd creates the top-level "funnelkit" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop(), out: os.Stdout}

	root := &cobra.Command{
		Use:   "funnelkit",
		Short: "Template catalog sync and category reconciliation",
		Long: "funnelkit keeps the persisted template catalog in step with the built-in\n" +
			"catalog, assigns normalized categories and reports category statistics.",
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.configDir, "config-dir", "", "configuration directory (env "+paths.EnvConfigDir+")")
	pf.StringVar(&a.dataDir, "data-dir", "", "data directory (default: "+paths.DefaultDataDirName+")")
	pf.BoolVar(&a.jsonMode, "json", false, "output in JSON format")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newClassifyCmd(a),
		newSyncCmd(a),
		newCategorizeCmd(a),
		newCategoryCmd(a),
		newTemplateCmd(a),
		newStatsCmd(a),
	)
	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// setup resolves directories, loads config.yaml and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	a.out = cmd.OutOrStdout()
	if cmd.Name() == "version" {
		return nil
	}

	dir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	a.configDir = dir

	a.cfg, err = loadConfig(dir)
	if err != nil {
		return err
	}

	a.logger, err = newLogger(a.cfg.GetString(cfgKeyLogLevel), a.verbose)
	if err != nil {
		return err
	}
	a.logger.Debug("config loaded",
		zap.String("config_dir", dir),
		zap.String("backend", a.cfg.GetString(cfgKeyBackend)))
	return nil
}

// usageError marks errors caused by how the command was invoked.
type usageError struct {
	error
}

func (e usageError) Unwrap() error { return e.error }

// exitCode maps err to the process exit code: errors the user can correct
// exit 1, everything else exits 2.
func exitCode(err error) int {
	var ue usageError
	switch {
	case err == nil:
		return exitSuccess
	case errors.As(err, &ue),
		types.IsValidation(err),
		errors.Is(err, types.ErrNotFound),
		errors.Is(err, types.ErrInvalidID),
		errors.Is(err, types.ErrInvalidFilter):
		return exitUserError
	default:
		return exitSysError
	}
}

// argsExactly is cobra.ExactArgs reporting a usage error.
func argsExactly(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

func argsRange(lo, hi int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.RangeArgs(lo, hi)(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

func argsMin(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MinimumNArgs(n)(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}
