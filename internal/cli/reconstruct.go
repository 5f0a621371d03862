package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/live-image-tracking-tools/gefftracks/pkg/layer"
)

// reconstructCommand creates the reconstruct command.
func (c *CLI) reconstructCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "reconstruct [tracks.json]",
		Short: "Rebuild a lineage file from a tracks table",
		Long: `Rebuild a lineage file from a tracks table.

The reconstruct command is the inverse of decompose: it takes a tracks
table (typically edited in a viewer), reconstructs the tracking edges
from the tracklet assignment and parent relation, and writes the result
as a geff lineage file.

Rows without a node ID are assigned generated ones, so tables exported
from viewers that drop node identity remain reconstructable.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runReconstruct(cmd.Context(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input with .geff.json suffix)")

	return cmd
}

func (c *CLI) runReconstruct(ctx context.Context, input, output string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}
	var tracks layer.Tracks
	if err := json.Unmarshal(data, &tracks); err != nil {
		return fmt.Errorf("parse %s: %w", input, err)
	}

	// Reconstruction never consults the cache: the table itself is the input.
	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if output == "" {
		output = lineagePath(input)
	}

	p := newProgress(c.Logger)
	if err := runner.Save(ctx, &tracks, output); err != nil {
		return err
	}
	p.done(fmt.Sprintf("Reconstructed %d rows", len(tracks.Rows)))

	printSuccess("Reconstructed %s", input)
	printFile(output)
	return nil
}

// lineagePath derives the default lineage output path from a tracks file
// path: cells.tracks.json -> cells.geff.json.
func lineagePath(input string) string {
	base := strings.TrimSuffix(input, ".json")
	base = strings.TrimSuffix(base, ".tracks")
	return base + ".geff.json"
}
