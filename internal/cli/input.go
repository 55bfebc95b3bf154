package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/katalvlaran/layoutopt/internal/problem"
	"github.com/katalvlaran/layoutopt/qap"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// inputFlags are shared by solve and compare.
type inputFlags struct {
	flowPath       string
	distPath       string
	sample         bool
	symmetrize     bool
	algo           string
	workers        int
	timeout        time.Duration
	maxRounds      int
	maxExhaustiveN int
}

func (f *inputFlags) register(cmd *cobra.Command, withAlgo bool) {
	flags := cmd.Flags()
	flags.StringVar(&f.flowPath, "flow", "", "FLOW matrix file (text format)")
	flags.StringVar(&f.distPath, "dist", "", "DISTANCE matrix file (text format)")
	flags.BoolVar(&f.sample, "sample", false, "use the built-in 4-department example")
	flags.BoolVar(&f.symmetrize, "symmetrize", false, "replace FLOW by (FLOW + FLOWᵀ)/2")
	if withAlgo {
		flags.StringVarP(&f.algo, "algo", "a", "auto", "engine: auto, exhaustive, pairwise")
	}
	flags.IntVarP(&f.workers, "workers", "w", 0, "exhaustive search goroutines (default from config)")
	flags.DurationVar(&f.timeout, "timeout", 0, "time limit per engine run, 0 for none (default from config)")
	flags.IntVar(&f.maxRounds, "max-rounds", 0, "bound on pairwise-exchange rounds, 0 for none (default from config)")
	flags.IntVar(&f.maxExhaustiveN, "max-exhaustive-n", 0, "largest n for exhaustive search (default from config)")
}

// loadProblem resolves the problem from, in order: --sample, --flow/--dist,
// a file argument ("-" for stdin), an interactive prompt, or piped stdin.
func (f *inputFlags) loadProblem(cmd *cobra.Command, args []string) (problem.Problem, error) {
	var (
		p   problem.Problem
		err error
	)
	switch {
	case f.sample:
		p = problem.Sample()
	case f.flowPath != "" || f.distPath != "":
		if f.flowPath == "" || f.distPath == "" {
			return p, errors.New("--flow and --dist must be given together")
		}
		if p.Flow.Text, err = readText(f.flowPath); err != nil {
			return p, err
		}
		if p.Dist.Text, err = readText(f.distPath); err != nil {
			return p, err
		}
	case len(args) == 1 && args[0] != "-":
		file, openErr := os.Open(args[0])
		if openErr != nil {
			return p, fmt.Errorf("open problem: %w", openErr)
		}
		defer file.Close()
		if p, err = problem.Load(file); err != nil {
			return p, fmt.Errorf("%s: %w", args[0], err)
		}
	case len(args) == 0 && isTerminal(cmd.InOrStdin()):
		if p, err = readInteractive(cmd.InOrStdin(), cmd.ErrOrStderr()); err != nil {
			return p, err
		}
	default:
		if p, err = problem.Load(cmd.InOrStdin()); err != nil {
			return p, fmt.Errorf("stdin: %w", err)
		}
	}

	if f.symmetrize {
		p.Symmetrize = true
	}
	return p, nil
}

// options layers config, problem document and explicitly set flags.
func (f *inputFlags) options(cmd *cobra.Command, base qap.Options, p problem.Problem) (qap.Options, error) {
	opts, err := p.Options(base)
	if err != nil {
		return opts, err
	}

	flags := cmd.Flags()
	if flags.Changed("algo") {
		if opts.Algo, err = qap.ParseAlgorithm(f.algo); err != nil {
			return opts, err
		}
	}
	if flags.Changed("workers") {
		opts.Workers = f.workers
	}
	if flags.Changed("timeout") {
		opts.TimeLimit = f.timeout
	}
	if flags.Changed("max-rounds") {
		opts.MaxRounds = f.maxRounds
	}
	if flags.Changed("max-exhaustive-n") {
		opts.MaxExhaustiveN = f.maxExhaustiveN
	}
	return opts, nil
}

func readText(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read matrix: %w", err)
	}
	return string(b), nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// readInteractive prompts for FLOW then DISTANCE. Each matrix ends at the
// first empty line after at least one row, or at EOF.
func readInteractive(in io.Reader, prompt io.Writer) (problem.Problem, error) {
	var (
		p       problem.Problem
		scanner = bufio.NewScanner(in)
	)
	read := func(name string) (string, error) {
		fmt.Fprintf(prompt, "Enter the %s matrix, one row per line (\"-\" for none); finish with an empty line:\n", name)
		var rows []string
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				if len(rows) > 0 {
					break
				}
				continue
			}
			rows = append(rows, line)
		}
		if err := scanner.Err(); err != nil {
			return "", err
		}
		if len(rows) == 0 {
			return "", fmt.Errorf("%w: no %s rows entered", problem.ErrMissingMatrix, name)
		}
		return strings.Join(rows, "\n"), nil
	}

	var err error
	if p.Flow.Text, err = read("FLOW"); err != nil {
		return p, err
	}
	if p.Dist.Text, err = read("DISTANCE"); err != nil {
		return p, err
	}
	return p, nil
}
