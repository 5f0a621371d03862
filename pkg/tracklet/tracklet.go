package tracklet

import "errors"

// ErrCycleDetected is returned by [Decompose] when a backward or forward
// walk exceeds the total node count, which can only happen if the input
// graph contains a cycle. Decomposition of cyclic input is otherwise
// meaningless, so the walk bound turns a potential infinite loop into a
// checked error.
var ErrCycleDetected = errors.New("cycle detected in lineage graph")

// Result holds the output of a tracklet decomposition.
//
// Tracklet IDs are positive integers assigned in discovery order during the
// scan. They are unique within one decomposition but carry no meaning across
// runs or as a sort key.
type Result struct {
	// NodeToTracklet maps every node ID in the graph to the ID of the one
	// tracklet that owns it. Membership is total: each input node appears
	// exactly once.
	NodeToTracklet map[string]int

	// Parents maps a child tracklet ID to the IDs of its direct parent
	// tracklets. An entry exists only for tracklets with at least one
	// parent; a tracklet that starts at a graph source has no entry.
	// A merge gives a child more than one parent. A division is recorded
	// implicitly: each child of the division has its own single-parent
	// entry naming the same parent.
	Parents map[int][]int

	// Members lists each tracklet's node IDs in path order, from the
	// tracklet's start node to its end node.
	Members map[int][]string
}

// TrackletCount returns the number of tracklets in the decomposition.
func (r *Result) TrackletCount() int { return len(r.Members) }

// Divisions returns the number of tracklets whose end node divides into
// more than one child tracklet.
func (r *Result) Divisions() int {
	children := make(map[int]int)
	for _, parents := range r.Parents {
		for _, p := range parents {
			children[p]++
		}
	}
	var n int
	for _, c := range children {
		if c > 1 {
			n++
		}
	}
	return n
}

// Merges returns the number of tracklets that begin at a merge point, i.e.
// have more than one parent tracklet.
func (r *Result) Merges() int {
	var n int
	for _, parents := range r.Parents {
		if len(parents) > 1 {
			n++
		}
	}
	return n
}
