// Package cli provides the command-line interface for layoutopt.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/katalvlaran/layoutopt/internal/config"
	"github.com/katalvlaran/layoutopt/internal/logging"
	"github.com/katalvlaran/layoutopt/internal/render"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "0.1.0"

// app carries global flags and the state built from them before a command runs.
type app struct {
	cfgFile  string
	logLevel string
	format   string
	output   string

	cfg     config.Config
	logger  *slog.Logger
	cleanup func() error
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	a := &app{logger: logging.Discard(), cleanup: func() error { return nil }}

	root := &cobra.Command{
		Use:   "layoutopt",
		Short: "Facility layout optimizer (quadratic assignment)",
		Long: `Layoutopt assigns departments to locations so that the total
flow × distance between them is minimal.

Two engines are available: an exhaustive search that is globally optimal for
small instances, and a pairwise-exchange local search that scales further.
Matrices are typed one row per line; "-" marks pairs with no relationship.`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.cleanup()
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default ./layoutopt.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVarP(&a.format, "format", "f", "text", "output format: text, json, yaml")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", "", "write output to a file instead of stdout")

	root.AddCommand(newSolveCmd(a))
	root.AddCommand(newCompareCmd(a))
	root.AddCommand(newSampleCmd(a))
	root.AddCommand(newServeCmd(a))
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context) int {
	root := NewRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
		return 1
	}
	return 0
}

// setup loads configuration and the logger for every command except version and help.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" || cmd.Name() == "help" {
		return nil
	}

	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg
	a.logger, a.cleanup = logging.Setup(cmd.ErrOrStderr(), cfg.LogFile, cfg.Level())

	return nil
}

// outputFormat validates --format.
func (a *app) outputFormat() (render.Format, error) {
	return render.ParseFormat(a.format)
}

// write sends rendered output to --output or the command's stdout.
func (a *app) write(cmd *cobra.Command, fn func(w io.Writer) error) error {
	if a.output == "" {
		return fn(cmd.OutOrStdout())
	}

	f, err := os.Create(a.output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err = fn(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "layoutopt %s\n", Version)
		},
	}
}
