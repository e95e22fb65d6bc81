package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pgraphlab/pgraph/pkg/pipeline"
	"github.com/pgraphlab/pgraph/pkg/pns"
)

// ssgCommand creates the ssg command for enumerating solution structures.
func (c *CLI) ssgCommand() *cobra.Command {
	var (
		format string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "ssg [file]",
		Short: "Enumerate every feasible solution structure",
		Long: `Enumerate every feasible solution structure.

A solution structure is a set of units that produces all products from raw
materials alone, with no orphaned intermediate. The count grows
exponentially with network size; use --limit to cap the enumeration.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSSG(cmd.Context(), args[0], format, limit)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "input format (default: detect from extension)")
	cmd.Flags().IntVar(&limit, "limit", 0, "stop after this many structures (0 for all)")

	return cmd
}

// runSSG loads the problem and prints every solution structure.
func (c *CLI) runSSG(ctx context.Context, input, format string, limit int) error {
	runner, err := c.newRunner(true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := runner.Load(ctx, pipeline.Options{Source: input, Format: format})
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Enumerating solution structures...")
	spinner.Start()

	structures, err := pns.EnumerateStructures(result.Model.Problem, limit)
	if err != nil {
		spinner.StopWithError("Enumeration failed")
		return err
	}
	spinner.Stop()

	if len(structures) == 0 {
		printWarning("No solution structure exists")
		return nil
	}

	printSuccess("Found %d solution structures", len(structures))

	for i, s := range structures {
		printDetail("%3d  {%s}", i+1, strings.Join(s.Names(), ", "))
	}
	if limit > 0 && len(structures) == limit {
		printInfo("Stopped at limit; more structures may exist")
	}

	printNewline()
	printNextStep("Solve", appName+" solve "+input)
	return nil
}
