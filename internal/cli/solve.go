package cli

import (
	"errors"
	"io"

	"github.com/katalvlaran/layoutopt/internal/render"
	"github.com/katalvlaran/layoutopt/qap"
	"github.com/spf13/cobra"
)

func newSolveCmd(a *app) *cobra.Command {
	var (
		in      inputFlags
		details bool
	)
	cmd := &cobra.Command{
		Use:   "solve [problem.yaml | -]",
		Short: "Find a low-cost layout",
		Long: `Solve a layout problem and print the layout, its cost and, for the
pairwise-exchange engine, the round-by-round trace.

The problem is read from --flow/--dist text files, a YAML/JSON problem file,
stdin, or typed interactively when stdin is a terminal.

Examples:
  layoutopt solve --sample
  layoutopt solve --flow flow.txt --dist dist.txt --algo pairwise
  layoutopt solve problem.yaml --details --format yaml
  layoutopt sample | layoutopt solve - --timeout 5s`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSolve(cmd, args, &in, details)
		},
	}
	in.register(cmd, true)
	cmd.Flags().BoolVarP(&details, "details", "d", false, "include FLOW and DISTANCE in the output")
	return cmd
}

func (a *app) runSolve(cmd *cobra.Command, args []string, in *inputFlags, details bool) error {
	format, err := a.outputFormat()
	if err != nil {
		return err
	}
	p, err := in.loadProblem(cmd, args)
	if err != nil {
		return err
	}
	flow, dist, err := p.Matrices()
	if err != nil {
		return err
	}
	opts, err := in.options(cmd, a.cfg.SolverOptions(), p)
	if err != nil {
		return err
	}

	a.logger.Info("solve started", "n", flow.Rows(), "algo", opts.Algo.String(), "workers", opts.Workers, "time_limit", opts.TimeLimit)
	res, err := qap.Solve(cmd.Context(), flow, dist, opts)
	report := render.NewReport(res)
	if err != nil {
		if !errors.Is(err, qap.ErrInterrupted) {
			return err
		}
		a.logger.Warn("solve interrupted", "error", err)
		report.Warning = err.Error()
	}
	a.logger.Info("solve finished",
		"algo", res.Algo.String(),
		"cost", res.Cost,
		"evaluations", res.Evaluations,
		"complete", res.Complete,
		"elapsed", res.Elapsed,
	)

	if details {
		if report, err = report.WithMatrices(flow, dist); err != nil {
			return err
		}
	}
	return a.write(cmd, func(w io.Writer) error {
		return render.WriteReport(w, format, report)
	})
}
