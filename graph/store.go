package graph

// Store owns the canonical node and edge lists.
//
// It performs no validation: callers are trusted to keep the root node and
// to keep ids unique. Updater functions must return new slices rather than
// mutating the ones they are given, since snapshots may share them.
type Store struct {
	nodes []Node
	edges []Edge
}

// NewStore creates a store seeded with nodes and edges.
func NewStore(nodes []Node, edges []Edge) *Store {
	return &Store{
		nodes: CloneNodes(nodes),
		edges: CloneEdges(edges),
	}
}

// Nodes returns the current node list. Treat it as read-only.
func (s *Store) Nodes() []Node {
	return s.nodes
}

// Edges returns the current edge list. Treat it as read-only.
func (s *Store) Edges() []Edge {
	return s.edges
}

// ApplyNodeChanges applies canvas deltas to the node list.
func (s *Store) ApplyNodeChanges(changes []NodeChange) {
	s.nodes = ApplyNodeChanges(changes, s.nodes)
}

// ApplyEdgeChanges applies canvas deltas to the edge list.
func (s *Store) ApplyEdgeChanges(changes []EdgeChange) {
	s.edges = ApplyEdgeChanges(changes, s.edges)
}

// SetNodes replaces the node list with fn(current).
func (s *Store) SetNodes(fn func([]Node) []Node) {
	s.nodes = fn(s.nodes)
}

// SetEdges replaces the edge list with fn(current).
func (s *Store) SetEdges(fn func([]Edge) []Edge) {
	s.edges = fn(s.edges)
}

// Snapshot captures the current graph.
func (s *Store) Snapshot() Snapshot {
	return NewSnapshot(s.nodes, s.edges)
}

// Restore replaces the whole graph with a copy of snap.
func (s *Store) Restore(snap Snapshot) {
	s.nodes = CloneNodes(snap.Nodes)
	s.edges = CloneEdges(snap.Edges)
}
