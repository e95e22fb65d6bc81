package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pgraphlab/pgraph/pkg/pipeline"
)

// infoCommand creates the info command for inspecting problem files.
func (c *CLI) infoCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "info [file]",
		Short: "Inspect a problem file and print its statistics",
		Long: `Inspect a problem file and print its statistics.

The file may be a local path, an http(s) URL, or "-" for stdin. The format
is detected from the file extension (.json, .toml, .xml, .txt, .pns) unless
--format is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInfo(cmd.Context(), args[0], format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "input format (default: detect from extension)")

	return cmd
}

// runInfo loads the problem and prints its composition.
func (c *CLI) runInfo(ctx context.Context, input, format string) error {
	runner, err := c.newRunner(true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := runner.Load(ctx, pipeline.Options{Source: input, Format: format})
	if err != nil {
		return err
	}

	p := result.Model.Problem

	printTitle("%s", p.Name())
	printKeyValue("Hash", result.ProblemHash[:12])
	printKeyValue("Materials", fmt.Sprintf("%d (%d raw, %d intermediate, %d product)",
		p.Materials().Len(), p.RawMaterials().Len(), p.Intermediates().Len(), p.Products().Len()))
	printKeyValue("Units", fmt.Sprintf("%d", p.Units().Len()))
	if groups := p.ExclusionGroups(); len(groups) > 0 {
		printKeyValue("Exclusions", fmt.Sprintf("%d groups", len(groups)))
	}
	printNewline()

	for _, name := range p.Products().Names() {
		m, _ := p.Materials().ByName(name)
		producers := p.Producers(m).Names()
		if len(producers) == 0 {
			printWarning("product %s has no producer", name)
			continue
		}
		printDetail("%s ← %s", name, strings.Join(producers, ", "))
	}
	printNewline()
	printNextStep("Reduce", appName+" msg "+input)

	return nil
}
