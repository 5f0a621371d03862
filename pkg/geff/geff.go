package geff

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/live-image-tracking-tools/gefftracks/pkg/axis"
	"github.com/live-image-tracking-tools/gefftracks/pkg/graph"
)

// FormatVersion is the document version written by [WriteJSON].
const FormatVersion = "0.1"

// document is the on-disk JSON shape.
type document struct {
	Meta  FileMeta     `json:"geff"`
	Nodes []nodeRecord `json:"nodes"`
	Edges []edgeRecord `json:"edges"`
}

// FileMeta is the graph-level metadata block of a lineage file.
type FileMeta struct {
	Version  string    `json:"version,omitempty"`
	Directed bool      `json:"directed"`
	Axes     axis.Axes `json:"axes"`
}

type nodeRecord struct {
	ID    string         `json:"id"`
	Attrs graph.Metadata `json:"attrs,omitempty"`
}

type edgeRecord struct {
	From  string         `json:"from"`
	To    string         `json:"to"`
	Attrs graph.Metadata `json:"attrs,omitempty"`
}

// ReadJSON decodes a lineage graph document from r.
//
// The input must be a JSON object with a "geff" metadata block and "nodes"
// and "edges" arrays:
//
//	{
//	  "geff": {"directed": true, "axes": [{"name": "t", "type": "time"}, ...]},
//	  "nodes": [{"id": "a", "attrs": {"t": 0, "x": 1.5}}, ...],
//	  "edges": [{"from": "a", "to": "b"}, ...]
//	}
//
// ReadJSON returns an error if the JSON is malformed, the metadata declares
// an undirected graph, the axis list fails [axis.Axes.Validate], a node has
// a duplicate or empty ID, an edge references an unknown node, or the edge
// set contains a cycle. Errors are wrapped with context describing which
// node or edge caused the problem.
//
// The returned graph is independent of r and can be modified safely after
// ReadJSON returns. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*graph.DirectedGraph, axis.Axes, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("decode: %w", err)
	}

	if !doc.Meta.Directed {
		return nil, nil, fmt.Errorf("lineage graph must be directed")
	}
	if err := doc.Meta.Axes.Validate(); err != nil {
		return nil, nil, fmt.Errorf("axes: %w", err)
	}

	g := graph.New(nil)
	for _, n := range doc.Nodes {
		if err := g.AddNode(graph.Node{ID: n.ID, Attrs: n.Attrs}); err != nil {
			return nil, nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
	}
	for _, e := range doc.Edges {
		if err := g.AddEdge(graph.Edge{From: e.From, To: e.To, Attrs: e.Attrs}); err != nil {
			return nil, nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
	}

	if err := g.Validate(); err != nil {
		return nil, nil, err
	}

	return g, doc.Meta.Axes, nil
}

// ImportFile reads a lineage file at path and returns the decoded graph and
// its axes. It returns the same validation errors as [ReadJSON], wrapped
// with the file path for context.
func ImportFile(path string) (*graph.DirectedGraph, axis.Axes, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	g, axes, err := ReadJSON(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, axes, nil
}

// WriteJSON encodes a lineage graph and its axes as a document on w.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(w io.Writer, g *graph.DirectedGraph, axes axis.Axes) error {
	if err := axes.Validate(); err != nil {
		return fmt.Errorf("axes: %w", err)
	}

	doc := document{
		Meta: FileMeta{
			Version:  FormatVersion,
			Directed: true,
			Axes:     axes,
		},
		Nodes: make([]nodeRecord, 0, g.NodeCount()),
		Edges: make([]edgeRecord, 0, g.EdgeCount()),
	}

	for _, n := range g.Nodes() {
		rec := nodeRecord{ID: n.ID}
		if len(n.Attrs) > 0 {
			rec.Attrs = n.Attrs
		}
		doc.Nodes = append(doc.Nodes, rec)
	}
	for _, e := range g.Edges() {
		rec := edgeRecord{From: e.From, To: e.To}
		if len(e.Attrs) > 0 {
			rec.Attrs = e.Attrs
		}
		doc.Edges = append(doc.Edges, rec)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportFile writes a lineage graph to a file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportFile(path string, g *graph.DirectedGraph, axes axis.Axes) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(f, g, axes)
}
