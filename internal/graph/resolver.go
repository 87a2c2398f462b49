// Package graph builds the flattened node/link view of the taxonomy documents.
// It also resolves node IDs back to the raw fragments they were built from.
package graph

import (
	"errors"
	"fmt"
	"slices"

	"github.com/alignscope/core/internal/models"
)

var (
	// ErrNotFound reports that no document or fragment carries the ID.
	ErrNotFound = errors.New("node not found")

	// ErrBadDocument reports a stored document whose top level is not a JSON
	// object. It is an internal condition, distinct from ErrNotFound.
	ErrBadDocument = errors.New("document is not a JSON object")
)

// Resolve returns the raw document or fragment carrying nodeID, searched in
// precedence order: the root document (by the well-known ID or its own),
// the component mapping, the subcomponent mapping, then a depth-first scan
// of every subcomponent's capability tree. Mapping keys win over identical
// IDs nested deeper. The match is returned verbatim, untouched.
func Resolve(nodeID string, root models.Document, components, subcomponents map[string]any) (any, error) {
	if nodeID == models.DefaultRootID || (root.ID() != "" && nodeID == root.ID()) {
		return root, nil
	}

	if v, ok := components[nodeID]; ok {
		return v, nil
	}

	if v, ok := subcomponents[nodeID]; ok {
		if _, isObject := models.AsDocument(v); !isObject {
			return nil, fmt.Errorf("subcomponent %s: %w", nodeID, ErrBadDocument)
		}
		return v, nil
	}

	ids := make([]string, 0, len(subcomponents))
	for id := range subcomponents {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		sub, ok := models.AsDocument(subcomponents[id])
		if !ok {
			continue
		}
		if frag, found := searchFragments(nodeID, normalizeCapabilities(sub["capabilities"]), 0); found {
			return frag, nil
		}
	}

	return nil, fmt.Errorf("%s: %w", nodeID, ErrNotFound)
}

// searchFragments scans one hierarchy level depth-first, comparing each
// object fragment's explicit id before descending. First match wins; there
// is no backtracking.
func searchFragments(nodeID string, fragments []any, depth int) (any, bool) {
	if depth >= len(hierarchy) {
		return nil, false
	}
	level := hierarchy[depth]

	for _, raw := range fragments {
		frag, ok := models.AsDocument(raw)
		if !ok {
			continue
		}

		if frag.ID() == nodeID {
			return raw, true
		}

		if level.nodeType == models.TypeApplication {
			if hit, found := searchLeaves(nodeID, frag); found {
				return hit, true
			}
			continue
		}

		if hit, found := searchFragments(nodeID, childList(frag[level.childField], level.childShape), depth+1); found {
			return hit, true
		}
	}

	return nil, false
}

// searchLeaves checks an application's inputs and outputs together, inputs
// first. Outputs nested inside input fragments are a graph-only construct
// and are not searched.
func searchLeaves(nodeID string, app models.Document) (any, bool) {
	for _, field := range []string{"inputs", "outputs"} {
		for _, raw := range asList(app[field]) {
			frag, ok := models.AsDocument(raw)
			if !ok {
				continue
			}
			if frag.ID() == nodeID {
				return raw, true
			}
		}
	}

	return nil, false
}
