package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pgraphlab/pgraph/pkg/archive"
	"github.com/pgraphlab/pgraph/pkg/pipeline"
	"github.com/pgraphlab/pgraph/pkg/pns"
	"github.com/pgraphlab/pgraph/pkg/render"
)

// browseCommand creates the browse command for interactive solution
// exploration.
func (c *CLI) browseCommand() *cobra.Command {
	opts := solveOpts{
		bound:     pipeline.BoundAdditive,
		solutions: pipeline.DefaultMaxSolutions,
	}

	cmd := &cobra.Command{
		Use:   "browse [file]",
		Short: "Solve and browse the solutions interactively",
		Long: `Solve and browse the solutions interactively.

The problem is solved like with 'solve', then the retained solutions open
in an interactive list. Selecting a solution renders it as an SVG with the
chosen units highlighted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "", "input format (default: detect from extension)")
	cmd.Flags().StringVar(&opts.bound, "bound", opts.bound, "bounding function: additive (default), flow")
	cmd.Flags().Float64Var(&opts.minActivity, "min-activity", 0, "reject flow solutions with units below this activity")
	cmd.Flags().IntVarP(&opts.solutions, "solutions", "n", opts.solutions, "solutions to retain (-1 for all)")
	cmd.Flags().DurationVar(&opts.timeLimit, "time-limit", 0, "stop searching after this long")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runBrowse solves the problem and opens the solution browser.
func (c *CLI) runBrowse(ctx context.Context, input string, opts *solveOpts) error {
	popts := opts.pipelineOptions(input)

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Solving...")
	spinner.Start()

	result, err := runner.Execute(ctx, popts)
	if err != nil {
		spinner.StopWithError("Solve failed")
		return err
	}
	spinner.Stop()

	if len(result.Solutions) == 0 {
		printWarning("Nothing to browse: no solution found")
		return nil
	}

	model := NewSolutionListModel(result.Model.Problem.Name(), result.Solutions)
	p := tea.NewProgram(model)
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("browser: %w", err)
	}

	selected := final.(SolutionListModel).Selected
	if selected == nil {
		return nil
	}
	return c.renderSelection(ctx, result, *selected, input)
}

// renderSelection draws the chosen solution as an SVG next to the input.
func (c *CLI) renderSelection(ctx context.Context, result *pipeline.Result, sol archive.Solution, input string) error {
	highlight := pns.NewSet[*pns.Unit]()
	for _, name := range sol.Units {
		if u, ok := result.Model.Problem.Units().ByName(name); ok {
			highlight.Add(u)
		}
	}

	data, err := render.Render(ctx, result.Model.Problem, pipeline.FormatSVG, render.Options{
		Highlight: highlight,
		Costs:     result.Model.Costs,
	})
	if err != nil {
		return fmt.Errorf("render selection: %w", err)
	}

	path := basePath("", input) + "_solution.svg"
	if err := writeFile(path, data); err != nil {
		return err
	}
	printSuccess("Rendered solution (cost %.2f)", sol.Value)
	return nil
}
