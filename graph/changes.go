package graph

import "fmt"

// ChangeType identifies the kind of delta the canvas reports.
type ChangeType string

const (
	ChangePosition   ChangeType = "position"
	ChangeSelect     ChangeType = "select"
	ChangeRemove     ChangeType = "remove"
	ChangeDimensions ChangeType = "dimensions"
	ChangeAdd        ChangeType = "add"
)

// NodeChange is a single delta against the node list, produced by canvas
// interactions such as dragging or clicking.
type NodeChange struct {
	Type     ChangeType
	ID       string
	Position *Position // ChangePosition
	Dragging bool      // ChangePosition: true while a drag is in progress
	Selected bool      // ChangeSelect
	Width    float64   // ChangeDimensions
	Height   float64   // ChangeDimensions
	Item     *Node     // ChangeAdd
}

// EdgeChange is a single delta against the edge list.
type EdgeChange struct {
	Type     ChangeType
	ID       string
	Selected bool  // ChangeSelect
	Item     *Edge // ChangeAdd
}

// Connection describes an edge the user drew between two nodes.
type Connection struct {
	Source string
	Target string
}

// ApplyNodeChanges returns a new node list with changes applied. The input
// slice is left untouched.
func ApplyNodeChanges(changes []NodeChange, nodes []Node) []Node {
	removed := make(map[string]bool)
	for _, c := range changes {
		if c.Type == ChangeRemove {
			removed[c.ID] = true
		}
	}

	result := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if removed[n.ID] {
			continue
		}
		for _, c := range changes {
			if c.ID != n.ID {
				continue
			}
			switch c.Type {
			case ChangePosition:
				if c.Position != nil {
					n.Position = *c.Position
				}
			case ChangeSelect:
				n.Selected = c.Selected
			case ChangeDimensions:
				n.Width = c.Width
				n.Height = c.Height
			}
		}
		result = append(result, n)
	}

	for _, c := range changes {
		if c.Type == ChangeAdd && c.Item != nil {
			result = append(result, *c.Item)
		}
	}
	return result
}

// ApplyEdgeChanges returns a new edge list with changes applied.
func ApplyEdgeChanges(changes []EdgeChange, edges []Edge) []Edge {
	removed := make(map[string]bool)
	for _, c := range changes {
		if c.Type == ChangeRemove {
			removed[c.ID] = true
		}
	}

	result := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if removed[e.ID] {
			continue
		}
		for _, c := range changes {
			if c.ID == e.ID && c.Type == ChangeSelect {
				e.Selected = c.Selected
			}
		}
		result = append(result, e)
	}

	for _, c := range changes {
		if c.Type == ChangeAdd && c.Item != nil {
			result = append(result, *c.Item)
		}
	}
	return result
}

// ConnectionEdgeID is the id given to an edge drawn by the user.
func ConnectionEdgeID(conn Connection) string {
	return fmt.Sprintf("reactflow__edge-%s-%s", conn.Source, conn.Target)
}

// AddEdge appends an edge for conn unless one already joins the same pair
// or an endpoint is missing.
func AddEdge(conn Connection, edges []Edge) []Edge {
	if conn.Source == "" || conn.Target == "" {
		return edges
	}
	for _, e := range edges {
		if e.Source == conn.Source && e.Target == conn.Target {
			return edges
		}
	}
	result := CloneEdges(edges)
	return append(result, Edge{
		ID:     ConnectionEdgeID(conn),
		Source: conn.Source,
		Target: conn.Target,
	})
}
