package cli

import (
	"fmt"
	"io"

	"github.com/katalvlaran/layoutopt/internal/problem"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newSampleCmd(a *app) *cobra.Command {
	var text bool
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print the built-in example problem",
		Long: `Print the 4-department example as a YAML problem document, ready to be
edited or piped into "layoutopt solve -".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.write(cmd, func(w io.Writer) error {
				if text {
					_, err := fmt.Fprintf(w, "FLOW:\n%s\nDISTANCE:\n%s", problem.SampleFlow, problem.SampleDist)
					return err
				}
				enc := yaml.NewEncoder(w)
				enc.SetIndent(2)
				if err := enc.Encode(problem.Sample()); err != nil {
					return err
				}
				return enc.Close()
			})
		},
	}
	cmd.Flags().BoolVar(&text, "text", false, "print the raw matrices instead of a problem document")
	return cmd
}
