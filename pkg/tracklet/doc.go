// Package tracklet decomposes directed lineage graphs into maximal linear
// tracklets and reconstructs lineage edges from tracklet assignments.
//
// # Overview
//
// A tracklet is a maximal run of nodes with no internal branching or
// merging: every interior node has exactly one predecessor and one
// successor. Divisions (one end node, several outgoing edges) and merges
// (one start node, several incoming edges) break runs apart, and the
// relation between the resulting tracklets is captured in a condensed
// parent/child mapping.
//
// [Decompose] computes the tracklet partition and parent relation from a
// [graph.DirectedGraph]. [Reconstruct] is its inverse: given per-node
// tracklet and time rows plus the parent relation, it emits the complete
// edge list. The two functions round-trip - decomposing reconstructed edges
// yields the same partition, provided node times within a tracklet are
// unambiguous.
//
// Decomposition runs when a lineage file is loaded, reconstruction when a
// tracks layer is saved back out. Both are pure, single-threaded functions
// over in-memory data; per-call state is discarded on return, and distinct
// graphs can be processed concurrently.
package tracklet
