package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/live-image-tracking-tools/gefftracks/pkg/pipeline"
	"github.com/live-image-tracking-tools/gefftracks/pkg/render"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		format  string
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Draw the tracklet lineage diagram",
		Long: `Draw the tracklet lineage diagram for a lineage file.

The render command decomposes the file and draws the tracklet-level
view: one box per tracklet, one arrow per parent relation. Divisions
fan out and merges fan in, giving a compact picture of the lineage
structure without the per-node detail.

Supported formats: dot, svg, png. Rendered artifacts are cached keyed
by the file contents and format.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = c.Config.Render.Format
			}
			if err := render.ValidateFormat(format); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], format, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: dot, svg (default), png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input with format suffix)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input, format, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", input))
	spinner.Start()

	result, err := runner.Load(ctx, pipeline.Options{Input: input, Logger: loggerFromContext(ctx)})
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}

	data, cacheHit, err := runner.Render(ctx, result, format)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if output == "" {
		output = renderPath(input, format)
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Rendered %d tracklets", result.Stats.TrackletCount)
	printStats(nil, cacheHit)
	printFile(output)
	return nil
}

// renderPath derives the default render output path from a lineage file
// path: cells.geff.json -> cells.svg.
func renderPath(input, format string) string {
	base := strings.TrimSuffix(input, ".json")
	base = strings.TrimSuffix(base, ".geff")
	return base + "." + format
}
