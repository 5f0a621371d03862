package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/live-image-tracking-tools/gefftracks/pkg/pipeline"
)

// decomposeCommand creates the decompose command.
func (c *CLI) decomposeCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "decompose [file]",
		Short: "Decompose a lineage file into a tracks table",
		Long: `Decompose a lineage file into a tracks table.

The decompose command reads a geff lineage file, partitions its tracking
graph into tracklets (maximal unbranched runs of nodes), and writes a
tracks table: one row per node carrying the tracklet ID and the display
axis values, plus the tracklet parent relation.

Results are cached locally keyed by the file contents, so re-running on
an unchanged file is instant. Use --refresh to force a rebuild.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDecompose(cmd.Context(), args[0], output, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input with .tracks.json suffix)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache and rebuild")

	return cmd
}

func (c *CLI) runDecompose(ctx context.Context, input, output string, noCache, refresh bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Decomposing %s...", input))
	spinner.Start()

	result, err := runner.Load(ctx, pipeline.Options{Input: input, Refresh: refresh, Logger: loggerFromContext(ctx)})
	if err != nil {
		spinner.StopWithError("Decomposition failed")
		return err
	}
	spinner.Stop()

	if output == "" {
		output = tracksPath(input)
	}
	data, err := json.MarshalIndent(result.Tracks, "", "  ")
	if err != nil {
		return fmt.Errorf("encode tracks: %w", err)
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Decomposed %s", input)
	printStats(statParts(result.Stats.NodeCount, result.Stats.EdgeCount, result.Stats.TrackletCount), result.CacheInfo.TracksHit)
	if result.Stats.Divisions > 0 || result.Stats.Merges > 0 {
		printDetail("%d divisions, %d merges", result.Stats.Divisions, result.Stats.Merges)
	}
	printFile(output)
	return nil
}

// tracksPath derives the default tracks output path from a lineage file
// path: cells.geff.json -> cells.tracks.json.
func tracksPath(input string) string {
	base := strings.TrimSuffix(input, ".json")
	base = strings.TrimSuffix(base, ".geff")
	return base + ".tracks.json"
}
