// Package layer builds viewer-facing tracks tables from decomposed lineage
// graphs and converts them back into graphs for export.
//
// A tracks table is the tabular view a viewer host consumes: one row per
// node, carrying the tracklet ID, the node ID, and one value per display
// axis, sorted by (tracklet ID, time). The [Tracks] struct bundles the
// table with the tracklet parent relation and the axis schema, which is
// everything needed to rebuild the lineage graph on save.
package layer

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/live-image-tracking-tools/gefftracks/pkg/axis"
	"github.com/live-image-tracking-tools/gefftracks/pkg/graph"
	"github.com/live-image-tracking-tools/gefftracks/pkg/tracklet"
)

// Row is one node's entry in a tracks table. Values holds one coordinate
// per display axis, keyed by axis name.
type Row struct {
	TrackletID int                `json:"tracklet_id"`
	NodeID     string             `json:"node_id"`
	Values     map[string]float64 `json:"values"`
}

// Tracks is a complete tracks layer: the table rows, the tracklet parent
// relation, and the axis schema the values are keyed by. It is the JSON
// payload exchanged between the decompose and reconstruct paths.
type Tracks struct {
	Axes    axis.Axes     `json:"axes"`
	Rows    []Row         `json:"rows"`
	Parents map[int][]int `json:"parents,omitempty"`
}

// Build constructs a tracks layer from a lineage graph and its
// decomposition. Rows carry the display axes only (time first, at most
// four axes) and are sorted by (tracklet ID, time) with a stable
// input-order tie-break.
//
// Every node must carry a numeric value for each display axis; a missing
// or non-numeric value is a contract violation and fails with a
// descriptive error.
func Build(g *graph.DirectedGraph, res *tracklet.Result, axes axis.Axes) (*Tracks, error) {
	if err := axes.Validate(); err != nil {
		return nil, fmt.Errorf("axes: %w", err)
	}
	display := axes.Display()
	timeAxis, _ := display.Time()

	rows := make([]Row, 0, g.NodeCount())
	for _, n := range g.Nodes() {
		tid, ok := res.NodeToTracklet[n.ID]
		if !ok {
			return nil, fmt.Errorf("node %s has no tracklet assignment", n.ID)
		}
		values := make(map[string]float64, len(display))
		for _, ax := range display {
			v, err := numericAttr(n.Attrs, ax.Name)
			if err != nil {
				return nil, fmt.Errorf("node %s: %w", n.ID, err)
			}
			values[ax.Name] = v
		}
		rows = append(rows, Row{TrackletID: tid, NodeID: n.ID, Values: values})
	}

	slices.SortStableFunc(rows, func(a, b Row) int {
		if a.TrackletID != b.TrackletID {
			if a.TrackletID < b.TrackletID {
				return -1
			}
			return 1
		}
		at, bt := a.Values[timeAxis.Name], b.Values[timeAxis.Name]
		if at < bt {
			return -1
		}
		if at > bt {
			return 1
		}
		return 0
	})

	return &Tracks{Axes: display, Rows: rows, Parents: res.Parents}, nil
}

// numericAttr extracts a float64 attribute value. JSON decoding produces
// float64 for all numbers, but graphs built in memory may carry int values.
func numericAttr(attrs graph.Metadata, name string) (float64, error) {
	raw, ok := attrs[name]
	if !ok {
		return 0, fmt.Errorf("missing value for axis %q", name)
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("axis %q value %v is not numeric", name, raw)
	}
}

// ReconstructionRows converts the table into the row form consumed by
// [tracklet.Reconstruct], reading time from the layer's time axis.
func (t *Tracks) ReconstructionRows() ([]tracklet.Row, error) {
	timeAxis, ok := t.Axes.Time()
	if !ok {
		return nil, axis.ErrNoTimeAxis
	}
	rows := make([]tracklet.Row, len(t.Rows))
	for i, r := range t.Rows {
		tv, ok := r.Values[timeAxis.Name]
		if !ok {
			return nil, fmt.Errorf("row %d (node %s): missing value for time axis %q", i, r.NodeID, timeAxis.Name)
		}
		rows[i] = tracklet.Row{Tracklet: r.TrackletID, Time: tv, Node: r.NodeID}
	}
	return rows, nil
}

// Graph rebuilds a lineage graph from the tracks layer: nodes from the
// table rows with their axis values as attributes, edges reconstructed
// from the tracklet assignment and parent relation.
//
// Rows lacking a node ID are assigned a generated one; a table coming from
// a viewer without stable node identifiers stays exportable, and generated
// IDs cannot collide with rows merged in from other tables.
func (t *Tracks) Graph() (*graph.DirectedGraph, error) {
	for i := range t.Rows {
		if t.Rows[i].NodeID == "" {
			t.Rows[i].NodeID = uuid.NewString()
		}
	}

	rows, err := t.ReconstructionRows()
	if err != nil {
		return nil, err
	}
	edges, err := tracklet.Reconstruct(rows, t.Parents)
	if err != nil {
		return nil, err
	}

	g := graph.New(nil)
	for _, r := range t.Rows {
		attrs := make(graph.Metadata, len(r.Values))
		for name, v := range r.Values {
			attrs[name] = v
		}
		if err := g.AddNode(graph.Node{ID: r.NodeID, Attrs: attrs}); err != nil {
			return nil, fmt.Errorf("node %s: %w", r.NodeID, err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(e); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
	}
	return g, nil
}

// TrackletIDs returns the distinct tracklet IDs present in the table, in
// ascending order.
func (t *Tracks) TrackletIDs() []int {
	seen := make(map[int]bool)
	var ids []int
	for _, r := range t.Rows {
		if !seen[r.TrackletID] {
			seen[r.TrackletID] = true
			ids = append(ids, r.TrackletID)
		}
	}
	slices.Sort(ids)
	return ids
}
