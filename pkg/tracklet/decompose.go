package tracklet

import (
	"github.com/live-image-tracking-tools/gefftracks/pkg/graph"
)

// Decompose partitions a directed lineage graph into maximal linear
// tracklets and records the parent/child relation between them.
//
// The graph is scanned once in node enumeration order. For each unvisited
// node the decomposer first walks backward along single in-edges to locate
// the start of the maximal run, then walks forward from the start, claiming
// nodes for the current tracklet until it reaches a node whose out-degree is
// not one (track end, division) or whose successor is a merge point. Nodes
// are claimed in forward-walk order; the first scan to touch a node owns it.
//
// Parent relations discovered during the walk are recorded keyed by the
// literal successor node, because the successor's tracklet ID is not yet
// assigned at that point. A second pass translates the node-keyed relation
// into tracklet IDs once every node has an assignment.
//
// Tracklet IDs start at 1 and increase in discovery order. Given the same
// graph, Decompose always produces the same assignment.
//
// Decompose trusts that the graph is acyclic; it does not validate. As a
// guard, each walk is bounded by the total node count, and exceeding the
// bound returns ErrCycleDetected instead of looping forever.
func Decompose(g *graph.DirectedGraph) (*Result, error) {
	var (
		nextID         = 1
		total          = g.NodeCount()
		visited        = make(map[string]bool, total)
		nodeToTracklet = make(map[string]int, total)
		members        = make(map[int][]string)
		// Parent relations keyed by the child's start node, resolved to
		// tracklet IDs after the scan completes.
		parentNodes = make(map[string][]string)
		childOrder  []string
	)

	for _, node := range g.NodeIDs() {
		if visited[node] {
			continue
		}

		// Walk backward to the start of the maximal run. The walk stops
		// without moving when in-degree differs from one or when the unique
		// predecessor is already claimed by another tracklet. It does not
		// mark nodes visited: it only locates the start.
		start := node
		for steps := 0; g.InDegree(start) == 1; steps++ {
			if steps > total {
				return nil, ErrCycleDetected
			}
			pred := g.Predecessors(start)[0]
			if visited[pred] {
				break
			}
			start = pred
		}

		// Walk forward from the start, claiming nodes as they are appended.
		var run []string
		cur := start
		for steps := 0; ; steps++ {
			if steps > total {
				return nil, ErrCycleDetected
			}
			run = append(run, cur)
			visited[cur] = true

			if g.OutDegree(cur) != 1 {
				// Track end or division point: each successor starts (or
				// continues) a separate tracklet with this one as parent.
				for _, child := range g.Successors(cur) {
					if _, seen := parentNodes[child]; !seen {
						childOrder = append(childOrder, child)
					}
					parentNodes[child] = append(parentNodes[child], cur)
				}
				break
			}

			succ := g.Successors(cur)[0]
			if g.InDegree(succ) != 1 {
				// The successor is a merge point and must start its own
				// tracklet.
				if _, seen := parentNodes[succ]; !seen {
					childOrder = append(childOrder, succ)
				}
				parentNodes[succ] = append(parentNodes[succ], cur)
				break
			}

			cur = succ
		}

		for _, id := range run {
			nodeToTracklet[id] = nextID
		}
		members[nextID] = run
		nextID++
	}

	// Second pass: translate the node-keyed parent relation into tracklet
	// IDs. Every recorded node has an assignment by now.
	parents := make(map[int][]int, len(parentNodes))
	for _, child := range childOrder {
		childID := nodeToTracklet[child]
		for _, p := range parentNodes[child] {
			parents[childID] = append(parents[childID], nodeToTracklet[p])
		}
	}

	return &Result{
		NodeToTracklet: nodeToTracklet,
		Parents:        parents,
		Members:        members,
	}, nil
}
