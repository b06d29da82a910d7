package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/JHertz5/role-assignment/pkg/store"
)

// historyCommand lists recorded runs, or shows one with --run.
func (c *CLI) historyCommand() *cobra.Command {
	var (
		limit int
		runID string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded assignment runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.newStore(ctx, true)
			if err != nil {
				return err
			}
			defer st.Close()

			if runID != "" {
				run, err := st.Get(ctx, runID)
				if err != nil {
					return err
				}
				c.printRun(run)
				return nil
			}

			runs, err := st.List(ctx, limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				printInfo(c.out, "No runs recorded")
				return nil
			}
			fmt.Fprintln(c.out, historyTable(runs, time.Now()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", store.DefaultListLimit, "number of runs to list")
	cmd.Flags().StringVar(&runID, "run", "", "show the report of one run")
	return cmd
}

func (c *CLI) printRun(run *store.Run) {
	printKeyValue(c.out, "Run", run.ID)
	printKeyValue(c.out, "Created", run.CreatedAt.Local().Format(time.DateTime))
	printKeyValue(c.out, "Source", run.Source)
	printStats(c.out, run.Candidates, run.Slots, run.CacheHit)
	if run.Report != nil {
		fmt.Fprintln(c.out, reportTable(run.Report))
		printSummary(c.out, run.Report)
	}
}

func historyTable(runs []store.Run, now time.Time) string {
	rows := make([][]string, len(runs))
	for i, r := range runs {
		total, first := "-", "-"
		if r.Report != nil {
			total = strconv.Itoa(r.Report.TotalCost)
			first = fmt.Sprintf("%d/%d", r.Report.Histogram.First, r.Candidates)
		}
		rows[i] = []string{r.ID, formatRelativeTime(r.CreatedAt, now), r.Source, total, first, strconv.Itoa(r.Warnings)}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Run", "When", "Source", "Cost", "1st", "Warnings").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader.Padding(0, 1)
			}
			if col == 1 {
				return StyleDim.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}

func formatRelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
