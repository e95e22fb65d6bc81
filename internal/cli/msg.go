package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	pkgio "github.com/pgraphlab/pgraph/pkg/io"
	"github.com/pgraphlab/pgraph/pkg/pipeline"
)

// msgCommand creates the msg command for computing the maximal structure.
func (c *CLI) msgCommand() *cobra.Command {
	var (
		format  string
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "msg [file]",
		Short: "Compute the maximal structure of a problem",
		Long: `Compute the maximal structure of a problem.

The maximal structure is the union of every feasible solution structure:
units that cannot take part in any solution are removed, together with the
materials only they touch. An empty result means the problem has no
solution at all.

With --output the reduced problem is written as a new problem file;
otherwise the surviving unit names are printed.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMSG(cmd.Context(), args[0], format, output, noCache, refresh)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "input format (default: detect from extension)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the reduced problem to this file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if cached")

	return cmd
}

// runMSG loads the problem, reduces it, and reports the result.
func (c *CLI) runMSG(ctx context.Context, input, format, output string, noCache, refresh bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{Source: input, Format: format, Refresh: refresh}

	result, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Computing maximal structure...")
	spinner.Start()

	if err := runner.Reduce(ctx, result, opts); err != nil {
		spinner.StopWithError("Reduction failed")
		return err
	}
	spinner.Stop()

	if result.Structure.IsEmpty() {
		printWarning("No solution structure exists: no unit can take part in a feasible network")
		return nil
	}

	printSuccess("Maximal structure: %d of %d units", result.Structure.Len(), result.Model.Problem.Units().Len())
	for _, name := range result.Structure.Names() {
		printDetail("%s", name)
	}
	printStats(result.Structure.Len(), result.Model.Problem.Materials().Len(), result.CacheInfo.ReduceHit)

	if output != "" {
		if err := writeReduced(result, output); err != nil {
			return err
		}
	}

	printNewline()
	printNextStep("Solve", appName+" solve "+input)
	return nil
}

// writeReduced writes the problem restricted to the maximal structure as
// a new problem file.
func writeReduced(result *pipeline.Result, output string) error {
	doc, err := result.ReducedDocument()
	if err != nil {
		return err
	}
	if err := pkgio.Save(doc, output); err != nil {
		return err
	}
	printFile(output)
	return nil
}
