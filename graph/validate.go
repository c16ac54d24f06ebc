package graph

import "fmt"

// Validate checks that node ids are unique and that every edge references
// nodes present in the list.
func Validate(nodes []Node, edges []Edge) error {
	nodeIDs := make(map[string]bool, len(nodes))
	for _, node := range nodes {
		if nodeIDs[node.ID] {
			return fmt.Errorf("duplicate node ID: %q", node.ID)
		}
		nodeIDs[node.ID] = true
	}

	for _, edge := range edges {
		if !nodeIDs[edge.Source] {
			return fmt.Errorf("edge %q references non-existent source node: %q", edge.ID, edge.Source)
		}
		if !nodeIDs[edge.Target] {
			return fmt.Errorf("edge %q references non-existent target node: %q", edge.ID, edge.Target)
		}
	}

	return nil
}
