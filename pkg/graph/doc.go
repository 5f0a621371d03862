// Package graph provides the directed lineage graph that tracklet
// decomposition and edge reconstruction operate on.
//
// # Overview
//
// A lineage graph records observed objects (cells, particles) at discrete
// time points. Nodes carry coordinate attributes; a directed edge means the
// source observation continues as, or divides into, the target observation
// at a later time point.
//
// # Basic Usage
//
// Create a graph with [New], add nodes with [DirectedGraph.AddNode], and
// edges with [DirectedGraph.AddEdge]:
//
//	g := graph.New(nil)
//	g.AddNode(graph.Node{ID: "a", Attrs: graph.Metadata{"t": 0.0, "x": 1.5}})
//	g.AddNode(graph.Node{ID: "b", Attrs: graph.Metadata{"t": 1.0, "x": 1.7}})
//	g.AddEdge(graph.Edge{From: "a", To: "b"})
//
// Query structure with [DirectedGraph.Successors], [DirectedGraph.Predecessors],
// [DirectedGraph.InDegree], [DirectedGraph.OutDegree], and related methods.
// Use [DirectedGraph.Validate] to verify acyclicity after loading.
//
// # Enumeration Order
//
// Nodes enumerate in insertion order, and adjacency lists preserve edge
// insertion order. This determinism is load-bearing: the tracklet decomposer
// in package tracklet assigns IDs in discovery order during a scan over
// [DirectedGraph.NodeIDs], so the same graph always decomposes identically.
//
// # Concurrency
//
// A DirectedGraph is safe for concurrent reads but not for concurrent
// mutation. Decomposition treats the graph as read-only.
package graph
