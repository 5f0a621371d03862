// Package render draws tracklet lineage diagrams.
//
// The diagram shows the tracklet-level view of a lineage graph: one box per
// tracklet, one arrow per parent relation. Division points fan out, merge
// points fan in, and the per-node detail inside each tracklet is collapsed
// away. ToDOT produces Graphviz DOT; Render rasterizes it.
package render

import (
	"bytes"
	"context"
	"fmt"
	"slices"

	"github.com/goccy/go-graphviz"

	"github.com/live-image-tracking-tools/gefftracks/pkg/layer"
)

// Format constants for output formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
	FormatPNG: true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: dot, svg, png)", format)
	}
	return nil
}

// ToDOT converts a tracks layer to Graphviz DOT format. Each tracklet
// becomes a node labelled with its ID and member count; each parent
// relation becomes an edge from parent to child.
func ToDOT(t *layer.Tracks) string {
	members := make(map[int]int)
	for _, r := range t.Rows {
		members[r.TrackletID]++
	}

	var buf bytes.Buffer
	buf.WriteString("digraph tracklets {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, id := range t.TrackletIDs() {
		fmt.Fprintf(&buf, "  %d [label=%q];\n", id, fmtLabel(id, members[id]))
	}

	buf.WriteString("\n")
	children := make([]int, 0, len(t.Parents))
	for child := range t.Parents {
		children = append(children, child)
	}
	slices.Sort(children)
	for _, child := range children {
		for _, parent := range t.Parents[child] {
			fmt.Fprintf(&buf, "  %d -> %d;\n", parent, child)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(id, count int) string {
	noun := "nodes"
	if count == 1 {
		noun = "node"
	}
	return fmt.Sprintf("tracklet %d\n%d %s", id, count, noun)
}

// Render rasterizes a DOT string into the given format. The dot format
// returns the input unchanged; svg and png go through Graphviz.
func Render(ctx context.Context, dot, format string) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	if format == FormatDOT {
		return []byte(dot), nil
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	switch format {
	case FormatSVG:
		err = gv.Render(ctx, g, graphviz.SVG, &buf)
	case FormatPNG:
		err = gv.Render(ctx, g, graphviz.PNG, &buf)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}
