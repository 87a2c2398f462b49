// Package models defines the taxonomy document and graph data structures.
// It includes the node/edge type vocabularies and the fixed hierarchy levels.
package models

type NodeType string

const (
	TypeComponentGroup NodeType = "component_group"
	TypeComponent      NodeType = "component"
	TypeSubcomponent   NodeType = "subcomponent"
	TypeCapability     NodeType = "capability"
	TypeFunction       NodeType = "function"
	TypeSpecification  NodeType = "specification"
	TypeIntegration    NodeType = "integration"
	TypeTechnique      NodeType = "technique"
	TypeApplication    NodeType = "application"
	TypeInput          NodeType = "input"
	TypeOutput         NodeType = "output"
)

type EdgeType string

const (
	EdgeContains         EdgeType = "contains"
	EdgeHasCapability    EdgeType = "has_capability"
	EdgeHasFunction      EdgeType = "has_function"
	EdgeHasSpecification EdgeType = "has_specification"
	EdgeHasIntegration   EdgeType = "has_integration"
	EdgeHasTechnique     EdgeType = "has_technique"
	EdgeHasApplication   EdgeType = "has_application"
	EdgeHasInput         EdgeType = "has_input"
	EdgeHasOutput        EdgeType = "has_output"
)

// nodeLevels fixes the hierarchy depth per node type. Inputs and outputs
// share the deepest level.
var nodeLevels = map[NodeType]int{
	TypeComponentGroup: 0,
	TypeComponent:      1,
	TypeSubcomponent:   2,
	TypeCapability:     3,
	TypeFunction:       4,
	TypeSpecification:  5,
	TypeIntegration:    6,
	TypeTechnique:      7,
	TypeApplication:    8,
	TypeInput:          9,
	TypeOutput:         9,
}

// Level returns the fixed hierarchy depth for the node type, independent of
// anything a source fragment declares about itself.
func (t NodeType) Level() int {
	return nodeLevels[t]
}

type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Edge `json:"links"`
}

type Node struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        NodeType `json:"type"`
	Description string   `json:"description"`
	Parent      string   `json:"parent,omitempty"`
	Level       int      `json:"level"`
	Expandable  bool     `json:"expandable"`
	HasChildren bool     `json:"has_children"`
}

type Edge struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Type   EdgeType `json:"type"`
}

type Stats struct {
	TotalNodes  int              `json:"total_nodes"`
	TotalLinks  int              `json:"total_links"`
	NodesByType map[NodeType]int `json:"nodes_by_type,omitempty"`
}

// NewGraph returns a graph with non-nil slices so an empty graph serializes
// as [] rather than null.
func NewGraph() *Graph {
	return &Graph{
		Nodes: []Node{},
		Links: []Edge{},
	}
}

// Summary tallies the graph for diagnostic output.
func (g *Graph) Summary() Stats {
	stats := Stats{
		TotalNodes:  len(g.Nodes),
		TotalLinks:  len(g.Links),
		NodesByType: make(map[NodeType]int),
	}

	for _, node := range g.Nodes {
		stats.NodesByType[node.Type]++
	}

	return stats
}
