package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/JHertz5/role-assignment/pkg/cost"
	"github.com/JHertz5/role-assignment/pkg/roles"
	"github.com/JHertz5/role-assignment/pkg/tableio"
)

// defaultMatrixFile is where matrix writes when -o is not given.
const defaultMatrixFile = "cost_matrix.csv"

// matrixCommand writes the cost matrix of a preference table without
// solving it. The file can be edited and passed to solve.
func (c *CLI) matrixCommand() *cobra.Command {
	var (
		flags  runFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "matrix <table.csv>",
		Short: "Write the cost matrix of a preference table",
		Long: `Matrix builds the cost matrix for a preference table and writes it as CSV.

The header cell holds the default cost and blank cells take it, so the file
stays readable by hand. Rows follow the candidate shuffle unless
--no-shuffle is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			roster, err := tableio.ReadTableFile(args[0])
			if err != nil {
				return err
			}
			opts := flags.options(cmd, c.config, nil)
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			groups, err := roles.DetectCloneGroups(roster.Roles)
			if err != nil {
				return err
			}
			built, err := cost.Build(groups, roster.Candidates, opts.CostOptions())
			if err != nil {
				return err
			}
			logger.Debug("built cost matrix", "rows", built.Matrix.Rows(), "cols", built.Matrix.Cols())

			if err := tableio.WriteMatrixFile(output, built.Matrix, built.RowLabels, built.ColLabels); err != nil {
				return err
			}
			printSuccess(c.out, "Cost matrix for %s", StyleHighlight.Render(filepath.Base(args[0])))
			printStats(c.out, built.Matrix.Rows(), built.Matrix.Cols(), false)
			printFile(c.out, output)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", defaultMatrixFile, "output file")
	return cmd
}
