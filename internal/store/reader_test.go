// Package store loads the taxonomy documents that back the API: one root
// document plus a directory each of component and subcomponent files. Loads
// are tolerant; unreadable files become logged misses, never errors.
package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alignscope/core/internal/models"
)

func writeFixture(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestReadDocument(t *testing.T) {
	dir := t.TempDir()

	t.Run("plain utf-8 object", func(t *testing.T) {
		path := writeFixture(t, dir, "plain.json", []byte(`{"id": "value-learning", "name": "Value Learning"}`))

		v, err := ReadDocument(path)
		require.NoError(t, err)

		doc, ok := models.AsDocument(v)
		require.True(t, ok)
		assert.Equal(t, "value-learning", doc.ID())
	})

	t.Run("utf-8 with byte order mark", func(t *testing.T) {
		content := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{"id": "bom"}`)...)
		path := writeFixture(t, dir, "bom.json", content)

		v, err := ReadDocument(path)
		require.NoError(t, err)

		doc, _ := models.AsDocument(v)
		assert.Equal(t, "bom", doc.ID())
	})

	t.Run("leading whitespace before the object", func(t *testing.T) {
		path := writeFixture(t, dir, "spaced.json", []byte("\n\t  {\"id\": \"spaced\"}"))

		v, err := ReadDocument(path)
		require.NoError(t, err)

		doc, _ := models.AsDocument(v)
		assert.Equal(t, "spaced", doc.ID())
	})

	t.Run("non-utf8 bytes fall through the encoding ladder", func(t *testing.T) {
		// 0xE9 is é in Latin-1 but invalid as a standalone UTF-8 byte.
		path := writeFixture(t, dir, "latin1.json", []byte("{\"name\": \"caf\xe9\"}"))

		v, err := ReadDocument(path)
		require.NoError(t, err)

		doc, _ := models.AsDocument(v)
		assert.Equal(t, "café", doc.Name())
	})

	t.Run("top-level array is accepted", func(t *testing.T) {
		path := writeFixture(t, dir, "array.json", []byte(`[{"id": "a"}, {"id": "b"}]`))

		v, err := ReadDocument(path)
		require.NoError(t, err)

		list, ok := v.([]any)
		require.True(t, ok)
		assert.Len(t, list, 2)
	})

	t.Run("content not starting with a bracket is rejected", func(t *testing.T) {
		path := writeFixture(t, dir, "prose.json", []byte("this is not json"))

		_, err := ReadDocument(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not start with")
	})

	t.Run("empty file is rejected", func(t *testing.T) {
		path := writeFixture(t, dir, "empty.json", []byte("   \n  "))

		_, err := ReadDocument(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})

	t.Run("unparseable json reports a content preview", func(t *testing.T) {
		path := writeFixture(t, dir, "broken.json", []byte(`{"id": "broken",`))

		_, err := ReadDocument(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken")
		assert.Contains(t, err.Error(), "content:")
	})

	t.Run("missing file returns an error", func(t *testing.T) {
		_, err := ReadDocument(filepath.Join(dir, "absent.json"))
		require.Error(t, err)
	})
}

func TestPreview(t *testing.T) {
	t.Run("short content is returned whole", func(t *testing.T) {
		assert.Equal(t, "{}", preview([]byte("{}")))
	})

	t.Run("long content is truncated", func(t *testing.T) {
		long := make([]byte, previewLimit+50)
		for i := range long {
			long[i] = 'x'
		}

		p := preview(long)

		assert.Len(t, p, previewLimit+3)
		assert.Contains(t, p, "...")
	})
}
