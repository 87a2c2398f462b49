// Package graph builds the flattened node/link view of the taxonomy documents.
// It also resolves node IDs back to the raw fragments they were built from.
package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alignscope/core/internal/models"
)

func TestNormalizeCapabilities(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{
			name: "plain array",
			in:   []any{map[string]any{"id": "a"}, map[string]any{"id": "b"}},
			want: 2,
		},
		{
			name: "items object",
			in:   map[string]any{"items": []any{map[string]any{"id": "a"}}},
			want: 1,
		},
		{
			name: "items is not a list",
			in:   map[string]any{"items": "nope"},
			want: 0,
		},
		{
			name: "object without items",
			in:   map[string]any{"id": "a"},
			want: 0,
		},
		{
			name: "string",
			in:   "capabilities",
			want: 0,
		},
		{
			name: "absent",
			in:   nil,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, normalizeCapabilities(tt.in), tt.want)
		})
	}
}

func TestChildList(t *testing.T) {
	obj := map[string]any{"id": "only"}

	tests := []struct {
		name  string
		in    any
		shape childForm
		want  int
	}{
		{name: "list shape accepts arrays", in: []any{obj, obj}, shape: formList, want: 2},
		{name: "list shape rejects objects", in: obj, shape: formList, want: 0},
		{name: "object shape wraps an object", in: obj, shape: formObject, want: 1},
		{name: "object shape rejects arrays", in: []any{obj}, shape: formObject, want: 0},
		{name: "either shape accepts arrays", in: []any{obj}, shape: formListOrObject, want: 1},
		{name: "either shape wraps an object", in: obj, shape: formListOrObject, want: 1},
		{name: "either shape rejects scalars", in: "scalar", shape: formListOrObject, want: 0},
		{name: "absent field", in: nil, shape: formList, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, childList(tt.in, tt.shape), tt.want)
		})
	}
}

func TestFragmentID(t *testing.T) {
	t.Run("explicit id wins", func(t *testing.T) {
		frag := models.Document{"id": "explicit"}

		assert.Equal(t, "explicit", fragmentID(frag, "parent", "capability", 4))
	})

	t.Run("missing id synthesizes from parent role and position", func(t *testing.T) {
		frag := models.Document{"name": "Unnamed"}

		assert.Equal(t, "parent-capability-4", fragmentID(frag, "parent", "capability", 4))
	})

	t.Run("empty id synthesizes", func(t *testing.T) {
		frag := models.Document{"id": ""}

		assert.Equal(t, "parent-function-0", fragmentID(frag, "parent", "function", 0))
	})

	t.Run("non-string id synthesizes", func(t *testing.T) {
		frag := models.Document{"id": float64(7)}

		assert.Equal(t, "parent-technique-2", fragmentID(frag, "parent", "technique", 2))
	})
}
