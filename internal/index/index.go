// Package index turns loaded documents into the searchable chunk index.
package index

import (
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/singleflight"

	"docchat/internal/chunker"
	"docchat/internal/domain"
	"docchat/internal/logger"
)

// Index is the complete collection of chunks across all loaded documents,
// in document load order then position within each document. It is never
// modified after Build, so concurrent reads need no locking.
type Index struct {
	chunks []domain.Chunk
	docs   []string
}

// Build chunks every document and appends the results flatly.
// Chunks that trim to empty never appear in the index.
func Build(docs []domain.Document, chunkSize int) *Index {
	idx := &Index{}
	seen := make(map[string]bool, len(docs))
	for _, d := range docs {
		for _, text := range chunker.Split(d.Text, chunkSize) {
			idx.chunks = append(idx.chunks, domain.Chunk{Document: d.Name, Text: text})
		}
		if !seen[d.Name] {
			seen[d.Name] = true
			idx.docs = append(idx.docs, d.Name)
		}
	}
	sort.Strings(idx.docs)
	return idx
}

// Chunks returns the indexed chunks. Callers must not modify the slice.
func (idx *Index) Chunks() []domain.Chunk { return idx.chunks }

// Documents returns the sorted names of the documents in the index.
func (idx *Index) Documents() []string { return idx.docs }

// Empty reports whether the index holds no chunks.
func (idx *Index) Empty() bool { return len(idx.chunks) == 0 }

// Builder memoises index construction per source location. Concurrent
// requests for the same location share a single build; the result is cached
// for the process lifetime until Invalidate is called.
type Builder struct {
	source    domain.Source
	chunkSize int

	group singleflight.Group
	mu    sync.RWMutex
	cache map[string]*Index
}

// NewBuilder creates a Builder reading documents from source.
func NewBuilder(source domain.Source, chunkSize int) *Builder {
	return &Builder{source: source, chunkSize: chunkSize, cache: make(map[string]*Index)}
}

// Get returns the index for dir, building it on first use. A source that
// cannot be listed degrades to an empty index rather than an error.
func (b *Builder) Get(dir string) *Index {
	key := b.key(dir)
	b.mu.RLock()
	idx, ok := b.cache[key]
	b.mu.RUnlock()
	if ok {
		return idx
	}

	v, _, _ := b.group.Do(key, func() (any, error) {
		docs, err := b.source.ListDocuments(dir)
		if err != nil {
			logger.Warn("listing documents failed", "dir", dir, "error", err)
			docs = nil
		}
		idx := Build(docs, b.chunkSize)
		b.mu.Lock()
		b.cache[key] = idx
		b.mu.Unlock()
		return idx, nil
	})
	return v.(*Index)
}

// Invalidate drops the cached index for dir; the next Get rebuilds it.
func (b *Builder) Invalidate(dir string) {
	b.mu.Lock()
	delete(b.cache, b.key(dir))
	b.mu.Unlock()
}

func (b *Builder) key(dir string) string {
	return fmt.Sprintf("%s|%d", dir, b.chunkSize)
}
