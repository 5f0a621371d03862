package tracklet

import (
	"strings"
	"testing"

	"github.com/live-image-tracking-tools/gefftracks/pkg/graph"
)

// edgeSet collects edges into a comparable set representation.
func edgeSet(edges []graph.Edge) map[[2]string]bool {
	set := make(map[[2]string]bool, len(edges))
	for _, e := range edges {
		set[[2]string{e.From, e.To}] = true
	}
	return set
}

func TestReconstruct_LinearChain(t *testing.T) {
	rows := []Row{
		{Tracklet: 1, Time: 0, Node: "a"},
		{Tracklet: 1, Time: 1, Node: "b"},
		{Tracklet: 1, Time: 2, Node: "c"},
		{Tracklet: 1, Time: 3, Node: "d"},
	}

	edges, err := Reconstruct(rows, nil)
	if err != nil {
		t.Fatalf("Reconstruct() error = %v", err)
	}

	want := map[[2]string]bool{
		{"a", "b"}: true,
		{"b", "c"}: true,
		{"c", "d"}: true,
	}
	got := edgeSet(edges)
	if len(got) != len(want) {
		t.Fatalf("got %d edges, want %d: %v", len(got), len(want), edges)
	}
	for e := range want {
		if !got[e] {
			t.Errorf("missing edge %s->%s", e[0], e[1])
		}
	}
}

func TestReconstruct_Division(t *testing.T) {
	// Scenario from a division decomposition: tracklet 1 = {a,b}, tracklet
	// 2 = {c}, tracklet 3 = {d}, both children of 1. The reconstructed set
	// must be exactly {a->b, b->c, b->d}.
	rows := []Row{
		{Tracklet: 1, Time: 0, Node: "a"},
		{Tracklet: 1, Time: 1, Node: "b"},
		{Tracklet: 2, Time: 2, Node: "c"},
		{Tracklet: 3, Time: 2, Node: "d"},
	}
	parents := map[int][]int{2: {1}, 3: {1}}

	edges, err := Reconstruct(rows, parents)
	if err != nil {
		t.Fatalf("Reconstruct() error = %v", err)
	}

	want := map[[2]string]bool{
		{"a", "b"}: true,
		{"b", "c"}: true,
		{"b", "d"}: true,
	}
	got := edgeSet(edges)
	if len(got) != len(want) {
		t.Fatalf("got %d edges, want %d: %v", len(got), len(want), edges)
	}
	for e := range want {
		if !got[e] {
			t.Errorf("missing edge %s->%s", e[0], e[1])
		}
	}
}

func TestReconstruct_Merge(t *testing.T) {
	rows := []Row{
		{Tracklet: 1, Time: 0, Node: "a"},
		{Tracklet: 2, Time: 0, Node: "b"},
		{Tracklet: 3, Time: 1, Node: "c"},
		{Tracklet: 3, Time: 2, Node: "d"},
	}
	parents := map[int][]int{3: {1, 2}}

	edges, err := Reconstruct(rows, parents)
	if err != nil {
		t.Fatalf("Reconstruct() error = %v", err)
	}

	want := map[[2]string]bool{
		{"a", "c"}: true,
		{"b", "c"}: true,
		{"c", "d"}: true,
	}
	got := edgeSet(edges)
	if len(got) != len(want) {
		t.Fatalf("got %d edges, want %d: %v", len(got), len(want), edges)
	}
	for e := range want {
		if !got[e] {
			t.Errorf("missing edge %s->%s", e[0], e[1])
		}
	}
}

func TestReconstruct_SingleMemberTracklet(t *testing.T) {
	rows := []Row{{Tracklet: 1, Time: 0, Node: "solo"}}

	edges, err := Reconstruct(rows, nil)
	if err != nil {
		t.Fatalf("Reconstruct() error = %v", err)
	}
	if len(edges) != 0 {
		t.Errorf("got %d edges for single-member tracklet, want 0", len(edges))
	}
}

func TestReconstruct_UnsortedInput(t *testing.T) {
	// Rows arrive out of time order; the reconstructor must sort within
	// each tracklet before pairing.
	rows := []Row{
		{Tracklet: 1, Time: 2, Node: "c"},
		{Tracklet: 1, Time: 0, Node: "a"},
		{Tracklet: 1, Time: 1, Node: "b"},
	}

	edges, err := Reconstruct(rows, nil)
	if err != nil {
		t.Fatalf("Reconstruct() error = %v", err)
	}

	got := edgeSet(edges)
	if !got[[2]string{"a", "b"}] || !got[[2]string{"b", "c"}] {
		t.Errorf("edges = %v, want a->b and b->c", edges)
	}
}

func TestReconstruct_TimeTieKeepsInputOrder(t *testing.T) {
	// Two rows share a time value. The stable sort must preserve input
	// order so reconstruction stays deterministic.
	rows := []Row{
		{Tracklet: 1, Time: 0, Node: "a"},
		{Tracklet: 1, Time: 1, Node: "b1"},
		{Tracklet: 1, Time: 1, Node: "b2"},
	}

	edges, err := Reconstruct(rows, nil)
	if err != nil {
		t.Fatalf("Reconstruct() error = %v", err)
	}

	got := edgeSet(edges)
	if !got[[2]string{"a", "b1"}] || !got[[2]string{"b1", "b2"}] {
		t.Errorf("edges = %v, want a->b1 and b1->b2 (input order tie-break)", edges)
	}
}

func TestReconstruct_UnknownChildTracklet(t *testing.T) {
	rows := []Row{{Tracklet: 1, Time: 0, Node: "a"}}
	parents := map[int][]int{7: {1}}

	_, err := Reconstruct(rows, parents)
	if err == nil {
		t.Fatal("Reconstruct() expected error for parents entry with no rows")
	}
	if !strings.Contains(err.Error(), "7") {
		t.Errorf("error %q does not name the offending tracklet", err)
	}
}

func TestReconstruct_UnknownParentTracklet(t *testing.T) {
	rows := []Row{{Tracklet: 2, Time: 1, Node: "c"}}
	parents := map[int][]int{2: {9}}

	_, err := Reconstruct(rows, parents)
	if err == nil {
		t.Fatal("Reconstruct() expected error for parent tracklet with no rows")
	}
	if !strings.Contains(err.Error(), "9") {
		t.Errorf("error %q does not name the offending tracklet", err)
	}
}

func TestReconstruct_Empty(t *testing.T) {
	edges, err := Reconstruct(nil, nil)
	if err != nil {
		t.Fatalf("Reconstruct() error = %v", err)
	}
	if len(edges) != 0 {
		t.Errorf("got %d edges from empty input, want 0", len(edges))
	}
}
