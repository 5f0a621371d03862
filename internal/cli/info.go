package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/live-image-tracking-tools/gefftracks/pkg/pipeline"
)

// infoCommand creates the info command.
func (c *CLI) infoCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "info [file]",
		Short: "Show summary statistics for a lineage file",
		Long: `Show summary statistics for a lineage file.

The info command reads a geff lineage file, decomposes it, and prints
node, edge, and tracklet counts together with the axis schema. Like
decompose, the result is cached keyed by the file contents.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInfo(cmd.Context(), args[0], noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runInfo(ctx context.Context, input string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := runner.Load(ctx, pipeline.Options{Input: input, Logger: loggerFromContext(ctx)})
	if err != nil {
		return err
	}

	fmt.Println(StyleTitle.Render(input))
	printKeyValue("nodes", fmt.Sprintf("%d", result.Stats.NodeCount))
	printKeyValue("edges", fmt.Sprintf("%d", result.Stats.EdgeCount))
	printKeyValue("tracklets", fmt.Sprintf("%d", result.Stats.TrackletCount))
	printKeyValue("divisions", fmt.Sprintf("%d", result.Stats.Divisions))
	printKeyValue("merges", fmt.Sprintf("%d", result.Stats.Merges))

	names := make([]string, len(result.Tracks.Axes))
	for i, ax := range result.Tracks.Axes {
		names[i] = fmt.Sprintf("%s (%s)", ax.Name, ax.Type)
	}
	printKeyValue("axes", strings.Join(names, ", "))
	printStats(nil, result.CacheInfo.TracksHit)
	return nil
}
