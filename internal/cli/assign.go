package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/JHertz5/role-assignment/pkg/errors"
	"github.com/JHertz5/role-assignment/pkg/pipeline"
	"github.com/JHertz5/role-assignment/pkg/render"
	"github.com/JHertz5/role-assignment/pkg/roles"
	"github.com/JHertz5/role-assignment/pkg/tableio"
)

// runFlags are the pipeline flags shared by assign, matrix and solve.
type runFlags struct {
	defaultCost int
	seed        uint64
	noShuffle   bool
	cloneAware  bool
	verify      bool
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.defaultCost, "default-cost", pipeline.DefaultCost, "cost of a role the candidate did not rank (> 2)")
	cmd.Flags().Uint64Var(&f.seed, "seed", pipeline.DefaultSeed, "seed for the candidate shuffle")
	cmd.Flags().BoolVar(&f.noShuffle, "no-shuffle", false, "keep candidates in input order")
	cmd.Flags().BoolVar(&f.cloneAware, "clone-aware", false, "count a rank once per clone group when validating")
	cmd.Flags().BoolVar(&f.verify, "verify", false, "cross-check the optimum by exhaustive search (small inputs only)")
}

// options merges config, problem file and flags. Flags win over the
// problem file, which wins over config.
func (f *runFlags) options(cmd *cobra.Command, cfg Config, p *tableio.Problem) pipeline.Options {
	opts := pipeline.Options{
		DefaultCost: cfg.DefaultCost,
		Seed:        cfg.Seed,
		NoShuffle:   !cfg.Shuffle,
		CloneAware:  cfg.CloneAware,
		Verify:      f.verify,
	}
	if p != nil {
		if p.DefaultCost != 0 {
			opts.DefaultCost = p.DefaultCost
		}
		if p.Seed != nil {
			opts.Seed = *p.Seed
		}
	}
	flags := cmd.Flags()
	if flags.Changed("default-cost") {
		opts.DefaultCost = f.defaultCost
	}
	if flags.Changed("seed") {
		opts.Seed = f.seed
	}
	if flags.Changed("no-shuffle") {
		opts.NoShuffle = f.noShuffle
	}
	if flags.Changed("clone-aware") {
		opts.CloneAware = f.cloneAware
	}
	return opts
}

type assignOpts struct {
	runFlags
	output      string
	graph       string
	problem     string
	interactive bool
	noCache     bool
	refresh     bool
	redis       string
	history     bool
}

// assignCommand creates the assign command.
func (c *CLI) assignCommand() *cobra.Command {
	var opts assignOpts

	cmd := &cobra.Command{
		Use:   "assign [table.csv]",
		Short: "Assign candidates to roles from a preference table",
		Long: `Assign reads a preference table (or a YAML/JSON problem file with --problem),
finds the minimum-cost assignment and writes it as CSV.

The first table row lists the roles, e.g. "Roles,Lab (1),Lab (2),Ops".
Numbered copies of a title form a clone group that a candidate can rank
by its bare name ("Lab"). Every further row is "<name>,<1st>,<2nd>,<3rd>".`,
		Example: `  gradassign assign prefs.csv
  gradassign assign prefs.csv -o out.csv --graph out.svg --verify
  gradassign assign --problem cohort.yaml --interactive`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (opts.problem == "") == (len(args) == 0) {
				return fmt.Errorf("give either a preference table or --problem")
			}
			return c.runAssign(cmd, args, &opts)
		},
	}

	opts.runFlags.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "results CSV (default from config, else "+tableio.DefaultResultsFile+")")
	cmd.Flags().StringVar(&opts.graph, "graph", "", "also draw the assignment graph (.dot, .svg, .pdf, .png)")
	cmd.Flags().StringVar(&opts.problem, "problem", "", "read a YAML or JSON problem file instead of a table")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse the results in the terminal")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the solve cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached solutions")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "redis address or URL for the solve cache")
	cmd.Flags().BoolVar(&opts.history, "history", true, "record the run in run history")

	return cmd
}

func (c *CLI) runAssign(cmd *cobra.Command, args []string, opts *assignOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	var (
		roster  roles.Roster
		problem *tableio.Problem
		source  string
		err     error
	)
	if opts.problem != "" {
		source = opts.problem
		problem, err = tableio.ReadProblemFile(source)
		if err == nil {
			roster = problem.Roster()
		}
	} else {
		source = args[0]
		roster, err = tableio.ReadTableFile(source)
	}
	if err != nil {
		return err
	}
	logger.Debug("read input", "path", source, "roles", len(roster.Roles), "candidates", len(roster.Candidates))

	history := c.config.History
	if cmd.Flags().Changed("history") {
		history = opts.history
	}
	runner, err := c.newRunner(ctx, backendOpts{noCache: opts.noCache, redisAddr: opts.redis, history: history})
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := opts.runFlags.options(cmd, c.config, problem)
	popts.Refresh = opts.refresh
	popts.Source = source

	prog := newProgress(logger)
	spin := newSpinner(ctx, cmd.ErrOrStderr(), "Solving assignment...")
	spin.Start()
	res, err := runner.Execute(ctx, roster, popts)
	spin.Stop()
	if err != nil {
		return err
	}
	prog.done("Assignment complete", "run", res.RunID, "cost", res.Report.TotalCost)

	output := opts.output
	if output == "" {
		output = c.config.Output
	}
	if err := tableio.WriteResultsFile(output, res.Report); err != nil {
		return err
	}

	c.printResult(res, filepath.Base(source))
	printFile(c.out, output)

	if opts.graph != "" {
		if err := writeGraph(ctx, opts.graph, res); err != nil {
			return err
		}
		printFile(c.out, opts.graph)
	}

	if opts.interactive {
		if _, err := tea.NewProgram(newResultsModel(res), tea.WithContext(ctx)).Run(); err != nil {
			return fmt.Errorf("results browser: %w", err)
		}
	}
	return nil
}

// printResult prints the table, summary and warnings of a run.
func (c *CLI) printResult(res *pipeline.Result, name string) {
	w := c.out
	printSuccess(w, "Assigned %s", StyleHighlight.Render(name))
	printStats(w, res.Stats.Candidates, res.Stats.Slots, res.CacheHit)
	fmt.Fprintln(w, reportTable(res.Report))
	printSummary(w, res.Report)
	if res.Verified {
		printSuccess(w, "Optimum confirmed by exhaustive search")
	}
	printWarnings(w, res.Warnings)
}

func writeGraph(ctx context.Context, path string, res *pipeline.Result) error {
	format, err := render.FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := render.Render(ctx, res.Report, render.Options{ShowUnmatched: true, ShowCost: true}, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write graph")
	}
	return nil
}
