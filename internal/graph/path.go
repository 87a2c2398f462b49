// Package graph builds the flattened node/link view of the taxonomy documents.
// It also resolves node IDs back to the raw fragments they were built from.
package graph

import (
	"slices"

	"github.com/alignscope/core/internal/models"
)

// PathEntry is one step of a root-to-node hierarchy path.
type PathEntry struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Type models.NodeType `json:"type"`
}

// HierarchyPath walks the parent chain of the built graph from nodeID up to
// the root and returns the path ordered root first. The boolean reports
// whether nodeID exists in the graph at all. A dangling parent reference
// ends the walk early rather than failing.
func HierarchyPath(g *models.Graph, nodeID string) ([]PathEntry, bool) {
	byID := make(map[string]models.Node, len(g.Nodes))
	for _, n := range g.Nodes {
		// Duplicate IDs keep their first occurrence, matching build order.
		if _, ok := byID[n.ID]; !ok {
			byID[n.ID] = n
		}
	}

	node, ok := byID[nodeID]
	if !ok {
		return nil, false
	}

	path := []PathEntry{}
	for {
		path = append(path, PathEntry{ID: node.ID, Name: node.Name, Type: node.Type})
		if node.Parent == "" {
			break
		}

		parent, ok := byID[node.Parent]
		if !ok {
			break
		}
		node = parent
	}

	slices.Reverse(path)

	return path, true
}
