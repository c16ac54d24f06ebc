// Package graph contains the node and edge model edited by logictree.
package graph

// NodeType tags which renderer draws a node.
type NodeType string

// NodeTypeCustom is the only node type the editor creates.
const NodeTypeCustom NodeType = "custom"

// Highlight colors used for selection feedback.
const (
	ColorSelected = "#FFD700"
	ColorDefault  = "#ffffff"
)

// Position is a point on the canvas, in canvas units (not terminal cells).
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p shifted by dx, dy.
func (p Position) Add(dx, dy float64) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Style holds the visual attributes of a node.
type Style struct {
	BackgroundColor string `json:"backgroundColor,omitempty"`
	FontWeight      string `json:"fontWeight,omitempty"`
}

// Node is a labeled, positioned vertex.
type Node struct {
	ID       string   `json:"id"`
	Type     NodeType `json:"type"`
	Label    string   `json:"label"`
	Position Position `json:"position"`
	Style    Style    `json:"style"`
	Selected bool     `json:"selected,omitempty"` // Set by canvas select changes
	Width    float64  `json:"-"`                  // Measured by the canvas
	Height   float64  `json:"-"`
}

// Edge is a directed connection between two node ids.
type Edge struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Selected bool   `json:"selected,omitempty"`
}

// Touches reports whether the edge has nodeID as either endpoint.
func (e Edge) Touches(nodeID string) bool {
	return e.Source == nodeID || e.Target == nodeID
}

// Snapshot is a full copy of the graph at one instant.
// It is never mutated after creation.
type Snapshot struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// NewSnapshot copies nodes and edges into a new snapshot.
func NewSnapshot(nodes []Node, edges []Edge) Snapshot {
	return Snapshot{
		Nodes: CloneNodes(nodes),
		Edges: CloneEdges(edges),
	}
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	return NewSnapshot(s.Nodes, s.Edges)
}

// CloneNodes copies a node slice. Nodes hold no reference fields, so a
// slice copy is a deep copy.
func CloneNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	clone := make([]Node, len(nodes))
	copy(clone, nodes)
	return clone
}

// CloneEdges copies an edge slice.
func CloneEdges(edges []Edge) []Edge {
	if edges == nil {
		return nil
	}
	clone := make([]Edge, len(edges))
	copy(clone, edges)
	return clone
}

// FindNode returns the node with the given id.
func FindNode(nodes []Node, id string) (Node, bool) {
	for _, n := range nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}
