package tracklet

import (
	"fmt"
	"maps"
	"slices"

	"github.com/live-image-tracking-tools/gefftracks/pkg/graph"
)

// Row is one node's view in a tracks table: which tracklet it belongs to and
// at which time it was observed. Rows are the wire format between a viewer's
// tracks layer and edge reconstruction.
type Row struct {
	Tracklet int     // tracklet ID the node is assigned to
	Time     float64 // value of the node's time axis
	Node     string  // node ID
}

// Reconstruct rebuilds the full lineage edge list from per-node tracklet
// assignment and the tracklet parent relation. It is the inverse of
// [Decompose]: feeding the returned edges back through the decomposer
// reproduces the same partition of nodes into tracklets.
//
// Rows are grouped by tracklet and sorted by time. The sort is stable, so
// rows sharing a time value keep their input order; that tie-break is part
// of the contract, since the parent-edge endpoints below depend on which
// row sorts first and last.
//
// One continuity edge is emitted per consecutive pair within a tracklet
// (none for single-member tracklets). Then, for every entry in parents, an
// edge is emitted from each parent tracklet's last node to the child
// tracklet's first node.
//
// Reconstruct assumes well-formed input as produced by a tracks table
// builder. A parents entry referencing a tracklet with no rows is a caller
// contract violation and fails with a descriptive error.
func Reconstruct(rows []Row, parents map[int][]int) ([]graph.Edge, error) {
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b Row) int {
		if a.Tracklet != b.Tracklet {
			if a.Tracklet < b.Tracklet {
				return -1
			}
			return 1
		}
		// Stable sort keeps input order for equal times.
		if a.Time < b.Time {
			return -1
		}
		if a.Time > b.Time {
			return 1
		}
		return 0
	})

	groups := make(map[int][]string)
	var order []int
	for _, row := range sorted {
		if _, ok := groups[row.Tracklet]; !ok {
			order = append(order, row.Tracklet)
		}
		groups[row.Tracklet] = append(groups[row.Tracklet], row.Node)
	}

	var edges []graph.Edge

	// Continuity edges between consecutive members of each tracklet.
	for _, tid := range order {
		nodes := groups[tid]
		for i := 0; i+1 < len(nodes); i++ {
			edges = append(edges, graph.Edge{From: nodes[i], To: nodes[i+1]})
		}
	}

	// Division and merge edges: parent tracklet's last node to child
	// tracklet's first node. Children iterate in ascending ID order so the
	// output is deterministic; only the edge set is contractual.
	children := slices.Sorted(maps.Keys(parents))
	for _, child := range children {
		childNodes, ok := groups[child]
		if !ok {
			return nil, fmt.Errorf("tracklet parents reference tracklet %d, which has no rows", child)
		}
		for _, parent := range parents[child] {
			parentNodes, ok := groups[parent]
			if !ok {
				return nil, fmt.Errorf("tracklet %d lists parent tracklet %d, which has no rows", child, parent)
			}
			edges = append(edges, graph.Edge{
				From: parentNodes[len(parentNodes)-1],
				To:   childNodes[0],
			})
		}
	}

	return edges, nil
}
