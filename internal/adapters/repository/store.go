// Package repository loads the knowledge corpora and persists interaction
// records.
package repository

import (
	"context"

	"github.com/HRehwald/PoolChat/internal/domain/model"
)

// Store provides read-only access to both knowledge corpora. Implementations
// load once and never mutate what they return, so callers may share the
// results across goroutines.
type Store interface {
	// Chunks returns the website corpus in file order.
	Chunks(ctx context.Context) []model.KnowledgeChunk

	// KnowledgeBase returns the structured staff knowledge base.
	KnowledgeBase(ctx context.Context) *model.KnowledgeBase

	// Count returns the number of chunks and structured entries.
	Count(ctx context.Context) (chunks, entries int)
}

// MemoryStore is a Store over corpora already in memory.
type MemoryStore struct {
	chunks []model.KnowledgeChunk
	kb     *model.KnowledgeBase
}

// NewMemoryStore wraps the given corpora. A nil kb is treated as empty.
func NewMemoryStore(chunks []model.KnowledgeChunk, kb *model.KnowledgeBase) *MemoryStore {
	if kb == nil {
		kb = &model.KnowledgeBase{}
	}
	return &MemoryStore{chunks: chunks, kb: kb}
}

// Chunks implements Store.
func (s *MemoryStore) Chunks(_ context.Context) []model.KnowledgeChunk { return s.chunks }

// KnowledgeBase implements Store.
func (s *MemoryStore) KnowledgeBase(_ context.Context) *model.KnowledgeBase { return s.kb }

// Count implements Store.
func (s *MemoryStore) Count(_ context.Context) (int, int) {
	return len(s.chunks), len(s.kb.Entries)
}
