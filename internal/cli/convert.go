package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	pkgio "github.com/pgraphlab/pgraph/pkg/io"
	"github.com/pgraphlab/pgraph/pkg/pipeline"
)

// convertCommand creates the convert command for translating problem files
// between formats.
func (c *CLI) convertCommand() *cobra.Command {
	var (
		inFormat string
		toFormat string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert a problem file to another format",
		Long: `Convert a problem file to another format.

The output format is taken from the --to flag, or detected from the output
file extension. With no output file the document is written to stdout.

Examples:
  pgraph convert plant.json -o plant.toml
  pgraph convert plant.txt --to xml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd.Context(), args[0], inFormat, toFormat, output)
		},
	}

	cmd.Flags().StringVar(&inFormat, "format", "", "input format (default: detect from extension)")
	cmd.Flags().StringVar(&toFormat, "to", "", "output format: json, toml, xml, text")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

// runConvert loads the document and writes it back in the target format.
func (c *CLI) runConvert(ctx context.Context, input, inFormat, toFormat, output string) error {
	runner, err := c.newRunner(true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := runner.Load(ctx, pipeline.Options{Source: input, Format: inFormat})
	if err != nil {
		return err
	}

	f, err := targetFormat(toFormat, output)
	if err != nil {
		return err
	}

	out, err := openOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := pkgio.Write(out, result.Document, f); err != nil {
		return err
	}
	if output != "" {
		printSuccess("Converted to %s", f.Name())
		printFile(output)
	}
	return nil
}

// targetFormat resolves the output format from the --to flag or the
// output file extension, defaulting to json for stdout.
func targetFormat(toFormat, output string) (pkgio.Format, error) {
	if toFormat != "" {
		return pkgio.Lookup(toFormat)
	}
	if output != "" {
		return pkgio.Detect(output)
	}
	return pkgio.Lookup("json")
}
