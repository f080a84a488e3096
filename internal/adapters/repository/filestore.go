package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/HRehwald/PoolChat/internal/domain/model"
	"github.com/HRehwald/PoolChat/pkg/metrics"
)

// FileStore is a Store loaded from web_chunks.json and local_kb.json.
// Both files may contain comments and trailing commas.
type FileStore struct {
	*MemoryStore
	webPath   string
	localPath string
}

// NewFileStore reads both corpora. Either file missing or malformed is an
// ErrLoadKnowledge.
func NewFileStore(ctx context.Context, webPath, localPath string) (*FileStore, error) {
	var chunks []model.KnowledgeChunk
	if err := readJSONC(webPath, &chunks); err != nil {
		return nil, err
	}

	var kb model.KnowledgeBase
	if err := readJSONC(localPath, &kb); err != nil {
		return nil, err
	}

	s := &FileStore{
		MemoryStore: NewMemoryStore(chunks, &kb),
		webPath:     webPath,
		localPath:   localPath,
	}
	metrics.UpdateKnowledgeSize(s.Count(ctx))
	return s, nil
}

// Paths returns the files the store was loaded from.
func (s *FileStore) Paths() (web, local string) {
	return s.webPath, s.localPath
}

func readJSONC(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: read %s: %w", ErrLoadKnowledge, path, err)
	}
	if err := json.Unmarshal(jsonc.ToJSON(data), v); err != nil {
		return fmt.Errorf("%w: decode %s: %w", ErrLoadKnowledge, path, err)
	}
	return nil
}
