package graph

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [DirectedGraph.AddNode] when the node ID
	// is empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [DirectedGraph.AddNode] when a node
	// with the same ID already exists. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [DirectedGraph.AddEdge] when the
	// From node does not exist in the graph.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [DirectedGraph.AddEdge] when the
	// To node does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrSelfLoop is returned by [DirectedGraph.AddEdge] when From and To are
	// the same node. A lineage edge always connects two distinct observations.
	ErrSelfLoop = errors.New("self-loop edges are not allowed")

	// ErrDuplicateEdge is returned by [DirectedGraph.AddEdge] when an edge
	// between the same pair of nodes already exists. Parallel edges carry no
	// additional lineage information.
	ErrDuplicateEdge = errors.New("duplicate edge")

	// ErrInvalidEdgeEndpoint is returned by [DirectedGraph.Validate] when an
	// edge references a node that doesn't exist. This indicates corruption.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")

	// ErrGraphHasCycle is returned by [DirectedGraph.Validate] when a cycle is
	// detected. Lineage graphs are forward-in-time and must be acyclic.
	// Cycles are detected using depth-first search with white/gray/black
	// coloring.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// Metadata stores arbitrary key-value pairs attached to nodes or edges.
// Node metadata typically holds coordinate attributes (the time axis value
// and one or more spatial axis values); edge metadata holds optional scores
// or annotations from the tracking pipeline. Metadata maps are never nil -
// they are automatically initialized to empty maps when needed.
type Metadata map[string]any

// Node represents one observed object at one time point in the lineage graph.
//
// The zero value is not usable - ID must be set before adding to a graph.
type Node struct {
	ID    string   // Unique identifier
	Attrs Metadata // Coordinate and property attributes (never nil after AddNode)
}

// Edge represents temporal continuity or a division/merge event between two
// observations. The source occurs no later than the target.
type Edge struct {
	From  string   // Source node ID
	To    string   // Target node ID
	Attrs Metadata // Arbitrary key-value metadata (never nil after AddEdge)
}

// DirectedGraph is a directed lineage graph: nodes are observed objects at
// discrete time points, edges are temporal continuity or division events.
//
// Node enumeration order is insertion order and is stable across calls. The
// tracklet decomposer relies on this: a fixed enumeration order makes
// decomposition deterministic for a given graph.
//
// The zero value is not usable - use New to create a valid instance.
// DirectedGraph is not safe for concurrent mutation without external
// synchronization.
type DirectedGraph struct {
	nodes    map[string]*Node
	order    []string // node IDs in insertion order
	edges    []Edge
	outgoing map[string][]string // nodeID -> successor IDs
	incoming map[string][]string // nodeID -> predecessor IDs
	edgeSet  map[[2]string]bool
	meta     Metadata
}

// New creates an empty directed graph with optional graph-level metadata.
// The metadata parameter can be nil, in which case an empty map is created.
func New(meta Metadata) *DirectedGraph {
	if meta == nil {
		meta = Metadata{}
	}
	return &DirectedGraph{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
		edgeSet:  make(map[[2]string]bool),
		meta:     meta,
	}
}

// Meta returns the graph-level metadata map.
// The returned map is never nil and can be safely modified.
func (g *DirectedGraph) Meta() Metadata { return g.meta }

// AddNode adds a node to the graph.
// Returns ErrInvalidNodeID if the node ID is empty, or ErrDuplicateNodeID
// if a node with the same ID already exists. The node's Attrs field is
// automatically initialized to an empty map if nil.
func (g *DirectedGraph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Attrs == nil {
		n.Attrs = Metadata{}
	}
	node := &n
	g.nodes[node.ID] = node
	g.order = append(g.order, node.ID)
	return nil
}

// AddEdge adds a directed edge between two existing nodes.
// Returns ErrUnknownSourceNode or ErrUnknownTargetNode if either endpoint
// doesn't exist, ErrSelfLoop if both endpoints are the same node, and
// ErrDuplicateEdge if an edge between the pair already exists. The edge's
// Attrs field is automatically initialized to an empty map if nil.
//
// AddEdge does not check that the edge respects time ordering or acyclicity -
// use Validate after building the graph.
func (g *DirectedGraph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	if e.From == e.To {
		return ErrSelfLoop
	}
	if g.edgeSet[[2]string{e.From, e.To}] {
		return ErrDuplicateEdge
	}
	if e.Attrs == nil {
		e.Attrs = Metadata{}
	}
	g.edges = append(g.edges, e)
	g.edgeSet[[2]string{e.From, e.To}] = true
	g.outgoing[e.From] = append(g.outgoing[e.From], e.To)
	g.incoming[e.To] = append(g.incoming[e.To], e.From)
	return nil
}

// Nodes returns all nodes in insertion order.
// The returned slice contains pointers to the actual node structs, so
// modifications to their Attrs affect the graph.
func (g *DirectedGraph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// NodeIDs returns all node IDs in insertion order.
func (g *DirectedGraph) NodeIDs() []string { return slices.Clone(g.order) }

// Edges returns a copy of all edges in the graph.
// The order matches insertion order. Modifications to the returned slice
// do not affect the graph.
func (g *DirectedGraph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes in the graph.
func (g *DirectedGraph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *DirectedGraph) EdgeCount() int { return len(g.edges) }

// Successors returns the IDs of nodes this node has edges to, in edge
// insertion order. Returns nil if the node has no successors or doesn't
// exist. The returned slice should not be modified.
func (g *DirectedGraph) Successors(id string) []string { return g.outgoing[id] }

// Predecessors returns the IDs of nodes with edges into this node, in edge
// insertion order. Returns nil if the node has no predecessors or doesn't
// exist. The returned slice should not be modified.
func (g *DirectedGraph) Predecessors(id string) []string { return g.incoming[id] }

// OutDegree returns the number of outgoing edges from the node.
// Returns 0 if the node doesn't exist.
func (g *DirectedGraph) OutDegree(id string) int { return len(g.outgoing[id]) }

// InDegree returns the number of incoming edges to the node.
// Returns 0 if the node doesn't exist.
func (g *DirectedGraph) InDegree(id string) int { return len(g.incoming[id]) }

// HasEdge reports whether an edge from one node to another exists.
func (g *DirectedGraph) HasEdge(from, to string) bool {
	return g.edgeSet[[2]string{from, to}]
}

// Node returns the node with the given ID and true, or nil and false if not
// found. The returned pointer refers to the actual node in the graph.
func (g *DirectedGraph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Sources returns nodes with no incoming edges, in insertion order.
// In a lineage graph these are the first observations of each object.
// Returns nil for an empty graph.
func (g *DirectedGraph) Sources() []*Node {
	var sources []*Node
	for _, id := range g.order {
		if len(g.incoming[id]) == 0 {
			sources = append(sources, g.nodes[id])
		}
	}
	return sources
}

// Sinks returns nodes with no outgoing edges, in insertion order.
// In a lineage graph these are observations that end a track.
// Returns nil for an empty graph.
func (g *DirectedGraph) Sinks() []*Node {
	var sinks []*Node
	for _, id := range g.order {
		if len(g.outgoing[id]) == 0 {
			sinks = append(sinks, g.nodes[id])
		}
	}
	return sinks
}

// Validate checks graph integrity and returns nil if valid.
// It verifies that all edges connect existing nodes and that the graph is
// acyclic. Returns ErrInvalidEdgeEndpoint or ErrGraphHasCycle accordingly.
//
// The tracklet decomposer trusts its input and does not call Validate
// itself; loaders should validate once after construction.
//
// Cycle detection runs in O(N+E) time using depth-first search.
func (g *DirectedGraph) Validate() error {
	for _, e := range g.edges {
		if _, ok := g.nodes[e.From]; !ok {
			return ErrInvalidEdgeEndpoint
		}
		if _, ok := g.nodes[e.To]; !ok {
			return ErrInvalidEdgeEndpoint
		}
	}
	return g.detectCycles()
}

func (g *DirectedGraph) detectCycles() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(g.nodes))
	var hasCycle bool

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, succ := range g.outgoing[id] {
			switch color[succ] {
			case white:
				dfs(succ)
			case gray:
				hasCycle = true
				return
			}
		}
		color[id] = black
	}

	for _, id := range g.order {
		if color[id] == white {
			dfs(id)
			if hasCycle {
				return ErrGraphHasCycle
			}
		}
	}
	return nil
}
