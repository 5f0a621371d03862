package tracklet

import (
	"errors"
	"reflect"
	"testing"

	"github.com/live-image-tracking-tools/gefftracks/pkg/graph"
)

// buildGraph constructs a lineage graph from node IDs and from->to pairs.
func buildGraph(t *testing.T, nodes []string, edges [][2]string) *graph.DirectedGraph {
	t.Helper()
	g := graph.New(nil)
	for _, id := range nodes {
		if err := g.AddNode(graph.Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(graph.Edge{From: e[0], To: e[1]}); err != nil {
			t.Fatalf("AddEdge(%s->%s): %v", e[0], e[1], err)
		}
	}
	return g
}

func TestDecompose_LinearChain(t *testing.T) {
	// a -> b -> c -> d collapses into a single tracklet.
	g := buildGraph(t,
		[]string{"a", "b", "c", "d"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}},
	)

	res, err := Decompose(g)
	if err != nil {
		t.Fatalf("Decompose() error = %v", err)
	}

	if res.TrackletCount() != 1 {
		t.Fatalf("TrackletCount() = %d, want 1", res.TrackletCount())
	}
	want := []string{"a", "b", "c", "d"}
	if !reflect.DeepEqual(res.Members[1], want) {
		t.Errorf("Members[1] = %v, want %v", res.Members[1], want)
	}
	if len(res.Parents) != 0 {
		t.Errorf("Parents = %v, want empty", res.Parents)
	}
}

func TestDecompose_Division(t *testing.T) {
	// b divides into c and d: {a,b} ends at the division, c and d each
	// start a child tracklet with {a,b} as sole parent.
	g := buildGraph(t,
		[]string{"a", "b", "c", "d"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"b", "d"}},
	)

	res, err := Decompose(g)
	if err != nil {
		t.Fatalf("Decompose() error = %v", err)
	}

	if res.TrackletCount() != 3 {
		t.Fatalf("TrackletCount() = %d, want 3", res.TrackletCount())
	}
	if !reflect.DeepEqual(res.Members[1], []string{"a", "b"}) {
		t.Errorf("Members[1] = %v, want [a b]", res.Members[1])
	}

	parentTID := res.NodeToTracklet["a"]
	for _, child := range []string{"c", "d"} {
		tid := res.NodeToTracklet[child]
		if tid == parentTID {
			t.Errorf("node %s assigned to parent tracklet %d", child, tid)
		}
		if !reflect.DeepEqual(res.Parents[tid], []int{parentTID}) {
			t.Errorf("Parents[%d] = %v, want [%d]", tid, res.Parents[tid], parentTID)
		}
	}
	if res.Divisions() != 1 {
		t.Errorf("Divisions() = %d, want 1", res.Divisions())
	}
	if res.Merges() != 0 {
		t.Errorf("Merges() = %d, want 0", res.Merges())
	}
}

func TestDecompose_Merge(t *testing.T) {
	// a and b merge into c, which continues to d: tracklets {a}, {b},
	// {c,d}, and {c,d} has both {a} and {b} as parents.
	g := buildGraph(t,
		[]string{"a", "b", "c", "d"},
		[][2]string{{"a", "c"}, {"b", "c"}, {"c", "d"}},
	)

	res, err := Decompose(g)
	if err != nil {
		t.Fatalf("Decompose() error = %v", err)
	}

	if res.TrackletCount() != 3 {
		t.Fatalf("TrackletCount() = %d, want 3", res.TrackletCount())
	}
	mergedTID := res.NodeToTracklet["c"]
	if res.NodeToTracklet["d"] != mergedTID {
		t.Errorf("c and d in different tracklets: %d vs %d", mergedTID, res.NodeToTracklet["d"])
	}

	wantParents := []int{res.NodeToTracklet["a"], res.NodeToTracklet["b"]}
	if !reflect.DeepEqual(res.Parents[mergedTID], wantParents) {
		t.Errorf("Parents[%d] = %v, want %v", mergedTID, res.Parents[mergedTID], wantParents)
	}
	if res.Merges() != 1 {
		t.Errorf("Merges() = %d, want 1", res.Merges())
	}
}

func TestDecompose_TotalCoverage(t *testing.T) {
	// Division followed by a merge plus an isolated node: every node must
	// be assigned to exactly one tracklet.
	g := buildGraph(t,
		[]string{"a", "b", "c", "d", "e", "f", "iso"},
		[][2]string{
			{"a", "b"},
			{"b", "c"}, {"b", "d"}, // division at b
			{"c", "e"}, {"d", "e"}, // merge at e
			{"e", "f"},
		},
	)

	res, err := Decompose(g)
	if err != nil {
		t.Fatalf("Decompose() error = %v", err)
	}

	for _, id := range g.NodeIDs() {
		if _, ok := res.NodeToTracklet[id]; !ok {
			t.Errorf("node %s has no tracklet assignment", id)
		}
	}

	seen := make(map[string]int)
	for tid, members := range res.Members {
		for _, id := range members {
			if prev, dup := seen[id]; dup {
				t.Errorf("node %s in tracklets %d and %d", id, prev, tid)
			}
			seen[id] = tid
		}
	}
	if len(seen) != g.NodeCount() {
		t.Errorf("member lists cover %d nodes, want %d", len(seen), g.NodeCount())
	}
}

func TestDecompose_InternalLinearity(t *testing.T) {
	g := buildGraph(t,
		[]string{"a", "b", "c", "d", "e"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"c", "e"}},
	)

	res, err := Decompose(g)
	if err != nil {
		t.Fatalf("Decompose() error = %v", err)
	}

	for tid, members := range res.Members {
		for i := 1; i < len(members)-1; i++ {
			id := members[i]
			if g.InDegree(id) != 1 || g.OutDegree(id) != 1 {
				t.Errorf("tracklet %d interior node %s has degree (%d,%d), want (1,1)",
					tid, id, g.InDegree(id), g.OutDegree(id))
			}
		}
	}
}

func TestDecompose_ParentCompleteness(t *testing.T) {
	// Every recorded parent tracklet must end at a node with an edge into
	// the child tracklet's start node.
	g := buildGraph(t,
		[]string{"a", "b", "c", "d", "e"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"b", "d"}, {"c", "e"}, {"d", "e"}},
	)

	res, err := Decompose(g)
	if err != nil {
		t.Fatalf("Decompose() error = %v", err)
	}

	for child, parents := range res.Parents {
		childStart := res.Members[child][0]
		for _, parent := range parents {
			pm := res.Members[parent]
			parentEnd := pm[len(pm)-1]
			if !g.HasEdge(parentEnd, childStart) {
				t.Errorf("no edge from tracklet %d end (%s) to tracklet %d start (%s)",
					parent, parentEnd, child, childStart)
			}
		}
	}
}

func TestDecompose_Idempotent(t *testing.T) {
	g := buildGraph(t,
		[]string{"a", "b", "c", "d", "e", "f"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"b", "d"}, {"c", "e"}, {"d", "f"}},
	)

	first, err := Decompose(g)
	if err != nil {
		t.Fatalf("Decompose() error = %v", err)
	}
	second, err := Decompose(g)
	if err != nil {
		t.Fatalf("Decompose() error = %v", err)
	}

	if !reflect.DeepEqual(first.NodeToTracklet, second.NodeToTracklet) {
		t.Errorf("NodeToTracklet differs between runs:\n%v\n%v", first.NodeToTracklet, second.NodeToTracklet)
	}
	if !reflect.DeepEqual(first.Parents, second.Parents) {
		t.Errorf("Parents differs between runs:\n%v\n%v", first.Parents, second.Parents)
	}
}

func TestDecompose_SingleNode(t *testing.T) {
	g := buildGraph(t, []string{"only"}, nil)

	res, err := Decompose(g)
	if err != nil {
		t.Fatalf("Decompose() error = %v", err)
	}

	if res.NodeToTracklet["only"] != 1 {
		t.Errorf("NodeToTracklet[only] = %d, want 1", res.NodeToTracklet["only"])
	}
	if len(res.Parents) != 0 {
		t.Errorf("Parents = %v, want empty", res.Parents)
	}
}

func TestDecompose_EmptyGraph(t *testing.T) {
	res, err := Decompose(graph.New(nil))
	if err != nil {
		t.Fatalf("Decompose() error = %v", err)
	}
	if res.TrackletCount() != 0 {
		t.Errorf("TrackletCount() = %d, want 0", res.TrackletCount())
	}
}

func TestDecompose_CycleReturnsError(t *testing.T) {
	// a -> b -> c -> a is invalid input. The walk bound must turn it into
	// ErrCycleDetected rather than an infinite loop.
	g := buildGraph(t,
		[]string{"a", "b", "c"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}},
	)

	_, err := Decompose(g)
	if !errors.Is(err, ErrCycleDetected) {
		t.Fatalf("Decompose() error = %v, want ErrCycleDetected", err)
	}
}

func TestDecompose_TwoNodeCycle(t *testing.T) {
	g := buildGraph(t,
		[]string{"a", "b"},
		[][2]string{{"a", "b"}, {"b", "a"}},
	)

	_, err := Decompose(g)
	if !errors.Is(err, ErrCycleDetected) {
		t.Fatalf("Decompose() error = %v, want ErrCycleDetected", err)
	}
}

func TestDecompose_DiscoveryOrderIDs(t *testing.T) {
	// Two disconnected chains: IDs follow the enumeration order of the
	// outer scan, not any temporal property.
	g := buildGraph(t,
		[]string{"m", "n", "p", "q"},
		[][2]string{{"m", "n"}, {"p", "q"}},
	)

	res, err := Decompose(g)
	if err != nil {
		t.Fatalf("Decompose() error = %v", err)
	}

	if res.NodeToTracklet["m"] != 1 || res.NodeToTracklet["p"] != 2 {
		t.Errorf("tracklet IDs = m:%d p:%d, want m:1 p:2",
			res.NodeToTracklet["m"], res.NodeToTracklet["p"])
	}
}

func TestDecompose_BackwardWalkFindsStart(t *testing.T) {
	// Nodes inserted in reverse order: the scan visits "d" first and must
	// walk backward to "a" before claiming the run.
	g := buildGraph(t,
		[]string{"d", "c", "b", "a"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}},
	)

	res, err := Decompose(g)
	if err != nil {
		t.Fatalf("Decompose() error = %v", err)
	}

	if res.TrackletCount() != 1 {
		t.Fatalf("TrackletCount() = %d, want 1", res.TrackletCount())
	}
	want := []string{"a", "b", "c", "d"}
	if !reflect.DeepEqual(res.Members[1], want) {
		t.Errorf("Members[1] = %v, want %v", res.Members[1], want)
	}
}
