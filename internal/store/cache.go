// Package store loads the taxonomy documents that back the API: one root
// document plus a directory each of component and subcomponent files. Loads
// are tolerant; unreadable files become logged misses, never errors.
package store

import (
	"fmt"
	"hash/fnv"
	"os"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// cacheEntry records how a cached parse was validated. A hit requires a
// matching stat (size and mtime) or, failing that, a matching content hash.
type cacheEntry struct {
	size    int64
	modTime time.Time
	sum     uint64
	doc     any
}

// DocumentCache keeps parsed documents keyed by path. Every read revalidates
// against the file, so a stale parse is never served; cached documents are
// shared between requests and must be treated as read-only.
type DocumentCache struct {
	entries *lru.Cache[string, cacheEntry]
}

func NewDocumentCache(size int) (*DocumentCache, error) {
	entries, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, err
	}
	return &DocumentCache{entries: entries}, nil
}

// Read returns the parsed document at path, reusing the cached parse when
// the file is unchanged.
func (c *DocumentCache) Read(path string) (any, error) {
	info, err := os.Stat(path)
	if err != nil {
		c.entries.Remove(path)
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	entry, cached := c.entries.Get(path)
	if cached && entry.size == info.Size() && entry.modTime.Equal(info.ModTime()) {
		return entry.doc, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		c.entries.Remove(path)
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	sum := contentSum(raw)
	if cached && entry.sum == sum {
		entry.size = info.Size()
		entry.modTime = info.ModTime()
		c.entries.Add(path, entry)
		return entry.doc, nil
	}

	doc, err := decodeDocument(raw, path)
	if err != nil {
		c.entries.Remove(path)
		return nil, err
	}

	c.entries.Add(path, cacheEntry{
		size:    info.Size(),
		modTime: info.ModTime(),
		sum:     sum,
		doc:     doc,
	})

	return doc, nil
}

// Evict drops the entry for one path.
func (c *DocumentCache) Evict(path string) {
	c.entries.Remove(path)
}

// Purge drops every entry.
func (c *DocumentCache) Purge() {
	c.entries.Purge()
}

func (c *DocumentCache) Len() int {
	return c.entries.Len()
}

func contentSum(raw []byte) uint64 {
	h := fnv.New64a()
	h.Write(raw)
	return h.Sum64()
}
