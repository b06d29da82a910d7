package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/JHertz5/role-assignment/pkg/pipeline"
	"github.com/JHertz5/role-assignment/pkg/tableio"
)

// solveCommand solves a cost matrix written by matrix (or by hand).
func (c *CLI) solveCommand() *cobra.Command {
	var (
		output  string
		graph   string
		verify  bool
		noCache bool
		redis   string
	)

	cmd := &cobra.Command{
		Use:   "solve <matrix.csv>",
		Short: "Solve a pre-built cost matrix",
		Long: `Solve reads a cost-matrix CSV, validates each row, and writes the
minimum-cost assignment. Rows are solved in file order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			mf, err := tableio.ReadMatrixFile(args[0])
			if err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, backendOpts{noCache: noCache, redisAddr: redis, history: c.config.History})
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := runner.SolveMatrix(ctx, mf.Matrix, mf.RowLabels, mf.ColLabels, pipeline.Options{
				DefaultCost: mf.Matrix.Default(),
				Verify:      verify,
				Source:      args[0],
			})
			if err != nil {
				return err
			}

			if output == "" {
				output = c.config.Output
			}
			if err := tableio.WriteResultsFile(output, res.Report); err != nil {
				return err
			}
			c.printResult(res, filepath.Base(args[0]))
			printFile(c.out, output)

			if graph != "" {
				if err := writeGraph(ctx, graph, res); err != nil {
					return err
				}
				printFile(c.out, graph)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "results CSV (default from config, else "+tableio.DefaultResultsFile+")")
	cmd.Flags().StringVar(&graph, "graph", "", "also draw the assignment graph (.dot, .svg, .pdf, .png)")
	cmd.Flags().BoolVar(&verify, "verify", false, "cross-check the optimum by exhaustive search (small inputs only)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the solve cache")
	cmd.Flags().StringVar(&redis, "redis", "", "redis address or URL for the solve cache")
	return cmd
}
