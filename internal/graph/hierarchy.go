// Package graph builds the flattened node/link view of the taxonomy documents.
// It also resolves node IDs back to the raw fragments they were built from.
package graph

import (
	"fmt"

	"github.com/alignscope/core/internal/models"
)

// childForm is the shape a level's child field may take in source documents.
type childForm int

const (
	formList childForm = iota
	formObject
	formListOrObject
)

// levelSchema describes one nested hierarchy level: the node type emitted for
// each fragment, the role tag used in synthesized IDs, the edge from the
// parent node, and where the next level's fragments live.
type levelSchema struct {
	nodeType   models.NodeType
	role       string
	edge       models.EdgeType
	childField string
	childShape childForm
}

// hierarchy fixes the capability subtree, in depth order. Applications carry
// no childField entry; their inputs and outputs need dedup rules a plain
// walk cannot express.
var hierarchy = []levelSchema{
	{models.TypeCapability, "capability", models.EdgeHasCapability, "functions", formList},
	{models.TypeFunction, "function", models.EdgeHasFunction, "specifications", formList},
	{models.TypeSpecification, "specification", models.EdgeHasSpecification, "integration", formObject},
	{models.TypeIntegration, "integration", models.EdgeHasIntegration, "techniques", formList},
	{models.TypeTechnique, "technique", models.EdgeHasTechnique, "applications", formList},
	{models.TypeApplication, "application", models.EdgeHasApplication, "", formList},
}

// normalizeCapabilities accepts the two shapes a subcomponent may use for its
// capabilities field: a plain array, or an object whose items field holds the
// array. Any other shape means no capabilities.
func normalizeCapabilities(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case map[string]any:
		if items, ok := t["items"].([]any); ok {
			return items
		}
	}

	return nil
}

// childList extracts a level's child fragments according to its declared
// shape. Singular-object fields are wrapped as one-element sequences.
func childList(v any, shape childForm) []any {
	switch shape {
	case formObject:
		if obj, ok := v.(map[string]any); ok {
			return []any{obj}
		}
		return nil
	case formListOrObject:
		if list := asList(v); list != nil {
			return list
		}
		if obj, ok := v.(map[string]any); ok {
			return []any{obj}
		}
		return nil
	default:
		return asList(v)
	}
}

func asList(v any) []any {
	list, _ := v.([]any)
	return list
}

// fragmentID returns the fragment's explicit id, or a deterministic
// {parent}-{role}-{index} ID from its position in the sibling list.
func fragmentID(frag models.Document, parentID, role string, index int) string {
	if id := frag.ID(); id != "" {
		return id
	}

	return fmt.Sprintf("%s-%s-%d", parentID, role, index)
}
