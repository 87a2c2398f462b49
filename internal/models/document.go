// Package models defines the taxonomy document and graph data structures.
// It includes the node/edge type vocabularies and the fixed hierarchy levels.
package models

// DefaultRootID is the well-known identifier of the taxonomy root document.
const DefaultRootID = "ai-alignment"

// Document is one parsed taxonomy document, or a fragment nested inside one.
// Fields are loosely typed; accessors tolerate absent or mistyped values so
// malformed source data degrades to empty strings instead of failing.
type Document map[string]any

// AsDocument reports whether v is a JSON object and returns it as a Document.
func AsDocument(v any) (Document, bool) {
	switch m := v.(type) {
	case Document:
		return m, true
	case map[string]any:
		return Document(m), true
	}
	return nil, false
}

func (d Document) ID() string {
	return d.str("id")
}

func (d Document) Name() string {
	return d.str("name")
}

// NameOr returns the document name, falling back when the field is absent,
// empty, or not a string.
func (d Document) NameOr(fallback string) string {
	if name := d.str("name"); name != "" {
		return name
	}
	return fallback
}

func (d Document) Description() string {
	return d.str("description")
}

// Parent returns the owning component ID a subcomponent declares, if any.
func (d Document) Parent() string {
	return d.str("parent")
}

func (d Document) str(key string) string {
	s, _ := d[key].(string)
	return s
}
