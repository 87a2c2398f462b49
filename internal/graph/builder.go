// Package graph builds the flattened node/link view of the taxonomy documents.
// It also resolves node IDs back to the raw fragments they were built from.
package graph

import (
	"fmt"
	"slices"

	"github.com/alignscope/core/internal/models"
)

// BuildGraph flattens the root, component, and subcomponent documents into
// the node and link lists the visualization consumes. It is a pure function
// of its inputs: mappings are iterated in sorted ID order, synthesized IDs
// come from sibling positions, and malformed fragments are skipped, so two
// calls on the same documents produce identical graphs. It always completes
// and returns whatever subset it could construct.
func BuildGraph(root models.Document, components, subcomponents map[string]any) *models.Graph {
	b := &builder{
		graph: models.NewGraph(),
		seen:  make(map[string]bool),
	}

	rootID := root.ID()
	if rootID == "" {
		rootID = models.DefaultRootID
	}

	b.graph.Nodes = append(b.graph.Nodes, models.Node{
		ID:          rootID,
		Name:        root.NameOr(rootID),
		Type:        models.TypeComponentGroup,
		Description: root.Description(),
		Level:       models.TypeComponentGroup.Level(),
		Expandable:  len(components) > 0,
		HasChildren: len(components) > 0,
	})
	b.seen[rootID] = true

	ids := make([]string, 0, len(components))
	for id := range components {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		b.addComponent(rootID, id, components[id], subcomponents)
	}

	return b.graph
}

type builder struct {
	graph *models.Graph
	// seen tracks every emitted node ID; only output emission consults it.
	seen map[string]bool
}

// add appends a node plus the edge from its parent.
func (b *builder) add(node models.Node, edge models.EdgeType) {
	b.graph.Nodes = append(b.graph.Nodes, node)
	b.seen[node.ID] = true
	b.graph.Links = append(b.graph.Links, models.Edge{
		Source: node.Parent,
		Target: node.ID,
		Type:   edge,
	})
}

func (b *builder) addComponent(rootID, id string, value any, subcomponents map[string]any) {
	doc, ok := models.AsDocument(value)
	if !ok {
		return
	}

	attached := attachedSubcomponents(id, subcomponents)

	b.add(models.Node{
		ID:          id,
		Name:        doc.NameOr(id),
		Type:        models.TypeComponent,
		Description: doc.Description(),
		Parent:      rootID,
		Level:       models.TypeComponent.Level(),
		Expandable:  len(attached) > 0,
		HasChildren: len(attached) > 0,
	}, models.EdgeContains)

	for _, sub := range attached {
		b.addSubcomponent(id, sub.id, sub.doc)
	}
}

type attachment struct {
	id  string
	doc models.Document
}

// attachedSubcomponents selects the subcomponents whose parent field names
// the component, in sorted ID order. Subcomponents without a parent are
// never attached anywhere.
func attachedSubcomponents(componentID string, subcomponents map[string]any) []attachment {
	var attached []attachment

	ids := make([]string, 0, len(subcomponents))
	for id := range subcomponents {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		doc, ok := models.AsDocument(subcomponents[id])
		if !ok || doc.Parent() != componentID {
			continue
		}
		attached = append(attached, attachment{id: id, doc: doc})
	}

	return attached
}

func (b *builder) addSubcomponent(componentID, id string, doc models.Document) {
	capabilities := normalizeCapabilities(doc["capabilities"])

	b.add(models.Node{
		ID:          id,
		Name:        doc.NameOr(id),
		Type:        models.TypeSubcomponent,
		Description: doc.Description(),
		Parent:      componentID,
		Level:       models.TypeSubcomponent.Level(),
		Expandable:  len(capabilities) > 0,
		HasChildren: len(capabilities) > 0,
	}, models.EdgeContains)

	b.walk(id, 0, capabilities)
}

// walk emits the capability subtree under parentID, one hierarchy level per
// recursion step. Non-object fragments are skipped without aborting their
// siblings.
func (b *builder) walk(parentID string, depth int, fragments []any) {
	if depth >= len(hierarchy) {
		return
	}
	level := hierarchy[depth]

	for i, raw := range fragments {
		frag, ok := models.AsDocument(raw)
		if !ok {
			continue
		}

		id := fragmentID(frag, parentID, level.role, i)

		if level.nodeType == models.TypeApplication {
			b.addApplication(parentID, id, frag)
			continue
		}

		children := childList(frag[level.childField], level.childShape)

		b.add(models.Node{
			ID:          id,
			Name:        frag.Name(),
			Type:        level.nodeType,
			Description: frag.Description(),
			Parent:      parentID,
			Level:       level.nodeType.Level(),
			Expandable:  len(children) > 0,
			HasChildren: len(children) > 0,
		}, level.edge)

		b.walk(id, depth+1, children)
	}
}

// addApplication emits an application and its input/output leaves. Outputs
// are gathered from the application itself plus any outputs nested inside
// its inputs, deduplicated per application by explicit ID, and checked
// against the whole graph so an output shared across applications appears
// exactly once.
func (b *builder) addApplication(parentID, id string, frag models.Document) {
	inputs := asList(frag["inputs"])
	outputs := applicationOutputs(frag, inputs)
	expandable := len(inputs) > 0 || len(outputs) > 0

	b.add(models.Node{
		ID:          id,
		Name:        frag.Name(),
		Type:        models.TypeApplication,
		Description: frag.Description(),
		Parent:      parentID,
		Level:       models.TypeApplication.Level(),
		Expandable:  expandable,
		HasChildren: expandable,
	}, models.EdgeHasApplication)

	for i, raw := range inputs {
		in, ok := models.AsDocument(raw)
		if !ok {
			continue
		}

		b.add(models.Node{
			ID:          fragmentID(in, id, "input", i),
			Name:        in.Name(),
			Type:        models.TypeInput,
			Description: in.Description(),
			Parent:      id,
			Level:       models.TypeInput.Level(),
		}, models.EdgeHasInput)
	}

	for i, out := range outputs {
		outputID := out.ID()
		if outputID == "" {
			outputID = fmt.Sprintf("%s-output-%d", id, i)
		}

		// Outputs alone deduplicate across the whole graph: a repeated ID
		// skips both the node and its edge.
		if b.seen[outputID] {
			continue
		}

		b.add(models.Node{
			ID:          outputID,
			Name:        out.Name(),
			Type:        models.TypeOutput,
			Description: out.Description(),
			Parent:      id,
			Level:       models.TypeOutput.Level(),
		}, models.EdgeHasOutput)
	}
}

// applicationOutputs concatenates an application's own outputs with outputs
// nested inside its input fragments (array or single-object form), then
// deduplicates by explicit ID keeping the first occurrence. ID-less outputs
// are always kept.
func applicationOutputs(frag models.Document, inputs []any) []models.Document {
	var gathered []models.Document

	for _, raw := range asList(frag["outputs"]) {
		if out, ok := models.AsDocument(raw); ok {
			gathered = append(gathered, out)
		}
	}

	for _, raw := range inputs {
		in, ok := models.AsDocument(raw)
		if !ok {
			continue
		}
		for _, nested := range childList(in["outputs"], formListOrObject) {
			if out, ok := models.AsDocument(nested); ok {
				gathered = append(gathered, out)
			}
		}
	}

	deduped := make([]models.Document, 0, len(gathered))
	seen := make(map[string]bool, len(gathered))

	for _, out := range gathered {
		if id := out.ID(); id != "" {
			if seen[id] {
				continue
			}
			seen[id] = true
		}
		deduped = append(deduped, out)
	}

	return deduped
}
