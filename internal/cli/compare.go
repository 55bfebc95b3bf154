package cli

import (
	"errors"
	"io"

	"github.com/katalvlaran/layoutopt/internal/render"
	"github.com/katalvlaran/layoutopt/qap"
	"github.com/spf13/cobra"
)

func newCompareCmd(a *app) *cobra.Command {
	var in inputFlags
	cmd := &cobra.Command{
		Use:   "compare [problem.yaml | -]",
		Short: "Run both engines and report the optimality gap",
		Long: `Run the pairwise-exchange search and the exhaustive search on the same
problem and report how far the local optimum is from the global one.

Examples:
  layoutopt compare --sample
  layoutopt compare problem.yaml --workers 4 --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCompare(cmd, args, &in)
		},
	}
	in.register(cmd, false)
	return cmd
}

func (a *app) runCompare(cmd *cobra.Command, args []string, in *inputFlags) error {
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

	a.logger.Info("compare started", "n", flow.Rows(), "workers", opts.Workers)
	cmp, err := qap.Compare(cmd.Context(), flow, dist, opts)
	out := render.NewComparison(cmp)
	if err != nil {
		if !errors.Is(err, qap.ErrInterrupted) {
			return err
		}
		a.logger.Warn("compare interrupted", "error", err)
		out.Warning = err.Error()
	}
	a.logger.Info("compare finished", "exact", cmp.Exact.Cost, "heuristic", cmp.Heuristic.Cost, "gap", cmp.Gap)

	return a.write(cmd, func(w io.Writer) error {
		return render.WriteComparison(w, format, out)
	})
}
