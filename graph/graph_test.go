package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleNodes() []Node {
	return []Node{
		{ID: "1", Type: NodeTypeCustom, Label: "root", Position: Position{X: 10, Y: 10}},
		{ID: "2", Type: NodeTypeCustom, Label: "child", Position: Position{X: 160, Y: 130}},
	}
}

func TestApplyNodeChanges(t *testing.T) {
	nodes := sampleNodes()
	pos := Position{X: 50, Y: 60}

	result := ApplyNodeChanges([]NodeChange{
		{Type: ChangePosition, ID: "2", Position: &pos, Dragging: true},
		{Type: ChangeSelect, ID: "1", Selected: true},
		{Type: ChangeDimensions, ID: "1", Width: 12, Height: 3},
	}, nodes)

	require.Len(t, result, 2)
	assert.Equal(t, pos, result[1].Position)
	assert.True(t, result[0].Selected)
	assert.Equal(t, 12.0, result[0].Width)

	// Input must be left untouched
	assert.Equal(t, Position{X: 160, Y: 130}, nodes[1].Position)
	assert.False(t, nodes[0].Selected)
}

func TestApplyNodeChangesRemoveAndAdd(t *testing.T) {
	added := Node{ID: "3", Label: "new"}
	result := ApplyNodeChanges([]NodeChange{
		{Type: ChangeRemove, ID: "2"},
		{Type: ChangeAdd, Item: &added},
	}, sampleNodes())

	require.Len(t, result, 2)
	assert.Equal(t, "1", result[0].ID)
	assert.Equal(t, "3", result[1].ID)
}

func TestApplyEdgeChanges(t *testing.T) {
	edges := []Edge{
		{ID: "a", Source: "1", Target: "2"},
		{ID: "b", Source: "1", Target: "3"},
	}

	result := ApplyEdgeChanges([]EdgeChange{
		{Type: ChangeRemove, ID: "a"},
		{Type: ChangeSelect, ID: "b", Selected: true},
	}, edges)

	require.Len(t, result, 1)
	assert.Equal(t, "b", result[0].ID)
	assert.True(t, result[0].Selected)
	assert.False(t, edges[1].Selected)
}

func TestAddEdge(t *testing.T) {
	edges := AddEdge(Connection{Source: "1", Target: "2"}, nil)
	require.Len(t, edges, 1)
	assert.Equal(t, "reactflow__edge-1-2", edges[0].ID)

	// Same pair twice is ignored
	edges = AddEdge(Connection{Source: "1", Target: "2"}, edges)
	assert.Len(t, edges, 1)

	// Missing endpoint is ignored
	edges = AddEdge(Connection{Source: "1"}, edges)
	assert.Len(t, edges, 1)
}

func TestStoreSnapshotIsolation(t *testing.T) {
	store := NewStore(sampleNodes(), nil)
	snap := store.Snapshot()

	store.SetNodes(func(nodes []Node) []Node {
		next := CloneNodes(nodes)
		next[0].Label = "changed"
		return next
	})

	assert.Equal(t, "root", snap.Nodes[0].Label)
	assert.Equal(t, "changed", store.Nodes()[0].Label)

	store.Restore(snap)
	assert.Equal(t, "root", store.Nodes()[0].Label)

	// Mutating the store after restore must not leak into the snapshot
	store.Nodes()[0].Label = "leak"
	assert.Equal(t, "root", snap.Nodes[0].Label)
}

func TestValidate(t *testing.T) {
	nodes := sampleNodes()

	assert.NoError(t, Validate(nodes, []Edge{{ID: "e", Source: "1", Target: "2"}}))

	err := Validate(nodes, []Edge{{ID: "e", Source: "1", Target: "9"}})
	assert.ErrorContains(t, err, "non-existent target")

	err = Validate(append(nodes, Node{ID: "1"}), nil)
	assert.ErrorContains(t, err, "duplicate node ID")
}
