// Package store loads the taxonomy documents that back the API: one root
// document plus a directory each of component and subcomponent files. Loads
// are tolerant; unreadable files become logged misses, never errors.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// previewLimit caps how much file content is quoted in error messages.
const previewLimit = 200

// decoders is the fixed encoding ladder tried in order: strict UTF-8, then
// Latin-1, then Windows-1252. A JSON failure on one rung moves to the next.
var decoders = []func([]byte) ([]byte, bool){
	decodeUTF8,
	charmapDecoder(charmap.ISO8859_1),
	charmapDecoder(charmap.Windows1252),
}

// ReadDocument reads and parses one JSON document from disk. The top-level
// value may be an object or an array; anything else is rejected before
// decoding is attempted.
func ReadDocument(path string) (any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return decodeDocument(raw, path)
}

func decodeDocument(raw []byte, path string) (any, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("document %s is empty", path)
	}

	if trimmed[0] != '{' && trimmed[0] != '[' {
		return nil, fmt.Errorf("document %s does not start with { or [ (content: %s)", path, preview(trimmed))
	}

	var lastErr error
	for _, decode := range decoders {
		text, ok := decode(trimmed)
		if !ok {
			continue
		}

		var doc any
		if err := json.Unmarshal(text, &doc); err != nil {
			lastErr = err
			continue
		}

		return doc, nil
	}

	return nil, fmt.Errorf("document %s is not valid JSON in any supported encoding (content: %s): %w", path, preview(trimmed), lastErr)
}

func decodeUTF8(raw []byte) ([]byte, bool) {
	if !utf8.Valid(raw) {
		return nil, false
	}
	return raw, true
}

func charmapDecoder(cm *charmap.Charmap) func([]byte) ([]byte, bool) {
	return func(raw []byte) ([]byte, bool) {
		text, err := cm.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, false
		}
		return text, true
	}
}

func preview(raw []byte) string {
	if len(raw) > previewLimit {
		return string(raw[:previewLimit]) + "..."
	}
	return string(raw)
}
