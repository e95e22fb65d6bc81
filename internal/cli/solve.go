package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pgraphlab/pgraph/pkg/pipeline"
)

// solveOpts holds the command-line flags for the solve command.
type solveOpts struct {
	format      string  // input format
	bound       string  // bounding function: "additive" or "flow"
	minActivity float64 // minimum unit activity under the flow bound
	solutions   int     // how many solutions to retain (-1 for all)
	strategy    string  // search strategy: ordered, lifo, recursive
	workers     int     // parallel search workers
	timeLimit   time.Duration
	noCache     bool
	refresh     bool
	renderStr   string // comma-separated render formats
	output      string // output file or base path for renders
}

// pipelineOptions converts solveOpts into pipeline options.
func (o *solveOpts) pipelineOptions(source string) pipeline.Options {
	return pipeline.Options{
		Source:       source,
		Format:       o.format,
		Refresh:      o.refresh,
		Bound:        o.bound,
		MinActivity:  o.minActivity,
		MaxSolutions: o.solutions,
		Strategy:     o.strategy,
		Workers:      o.workers,
		TimeLimit:    o.timeLimit,
	}
}

// solveCommand creates the solve command for running the branch-and-bound
// search.
func (c *CLI) solveCommand() *cobra.Command {
	opts := solveOpts{
		bound:     pipeline.BoundAdditive,
		solutions: pipeline.DefaultMaxSolutions,
	}

	cmd := &cobra.Command{
		Use:   "solve [file]",
		Short: "Search for cost-optimal networks with branch and bound",
		Long: `Search for cost-optimal networks with branch and bound.

The problem is first reduced to its maximal structure, then searched for
the cheapest solution structures. The additive bound (default) sums unit
costs; the flow bound solves a linear flow relaxation per subproblem and
reports per-unit activity levels.

With --render the best solution is drawn into the requested formats.
Results are cached locally for faster subsequent runs.

Examples:
  pgraph solve plant.json
  pgraph solve plant.json --bound flow --min-activity 0.01
  pgraph solve plant.json -n 10 --workers 4 --time-limit 30s
  pgraph solve plant.json --render svg,pdf -o plant`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSolve(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "", "input format (default: detect from extension)")
	cmd.Flags().StringVar(&opts.bound, "bound", opts.bound, "bounding function: additive (default), flow")
	cmd.Flags().Float64Var(&opts.minActivity, "min-activity", 0, "reject flow solutions with units below this activity")
	cmd.Flags().IntVarP(&opts.solutions, "solutions", "n", opts.solutions, "solutions to retain (-1 for all)")
	cmd.Flags().StringVar(&opts.strategy, "strategy", "", "search strategy: ordered (default), lifo, recursive")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "parallel search workers (0 for default)")
	cmd.Flags().DurationVar(&opts.timeLimit, "time-limit", 0, "stop searching after this long, keeping what was found")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().StringVar(&opts.renderStr, "render", "", "render the best solution: dot, svg, pdf, png (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single render format) or base path (multiple)")

	return cmd
}

// runSolve executes the full pipeline and prints the retained solutions.
func (c *CLI) runSolve(ctx context.Context, input string, opts *solveOpts) error {
	popts := opts.pipelineOptions(input)
	if opts.renderStr != "" {
		popts.Formats = strings.Split(opts.renderStr, ",")
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Solving with %s bound...", popts.Bound))
	spinner.Start()

	result, err := runner.Execute(ctx, popts)
	if err != nil {
		spinner.StopWithError("Solve failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	printSolutions(result)

	if len(popts.Formats) > 0 && len(result.Artifacts) > 0 {
		if err := writeArtifacts(result.Artifacts, popts.Formats, input, opts.output); err != nil {
			return err
		}
	}
	return nil
}

// printSolutions prints the retained solutions, best first, followed by
// the search counters.
func printSolutions(result *pipeline.Result) {
	if result.Structure.IsEmpty() {
		printWarning("No solution structure exists: no unit can take part in a feasible network")
		return
	}
	if len(result.Solutions) == 0 {
		printWarning("No solution found within the search limits")
		return
	}

	printSuccess("Found %d solutions", len(result.Solutions))
	for i, sol := range result.Solutions {
		marker := "  "
		if i == 0 {
			marker = StyleSuccess.Render("★ ")
		}
		fmt.Printf("%s%s  %s\n",
			marker,
			StyleNumber.Render(fmt.Sprintf("%10.2f", sol.Value)),
			StyleValue.Render("{"+strings.Join(sol.Units, ", ")+"}"))
		for _, unit := range slices.Sorted(maps.Keys(sol.Activities)) {
			printDetail("  %s activity %.3f", unit, sol.Activities[unit])
		}
	}

	stats := result.SolveStats
	if stats.Explored > 0 {
		printDetail("explored %d subproblems, pruned %d, %s",
			stats.Explored, stats.Pruned, stats.Elapsed.Round(time.Millisecond))
	}
	if result.CacheInfo.SolveHit {
		printDetail("solutions served from cache")
	}
	if stats.TimedOut {
		printWarning("Search hit the time limit; solutions may be incomplete")
	}
}
