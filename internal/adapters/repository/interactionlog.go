package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/HRehwald/PoolChat/internal/domain/model"
)

// JSONLSink appends one JSON object per line to a file. It is safe for
// concurrent use; records from concurrent Appends never interleave.
type JSONLSink struct {
	mu            sync.Mutex
	path          string
	file          *os.File
	enc           *json.Encoder
	closed        bool
	fileMode      os.FileMode
	syncEachWrite bool
}

// NewJSONLSink opens path for appending, creating it and its parent
// directories if needed.
func NewJSONLSink(path string, opts ...SinkOption) (*JSONLSink, error) {
	s := &JSONLSink{
		path:     path,
		fileMode: defaultLogFileMode,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, defaultLogDirMode); err != nil {
			return nil, fmt.Errorf("create log dir %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, s.fileMode)
	if err != nil {
		return nil, fmt.Errorf("open interaction log %s: %w", path, err)
	}
	s.file = f
	s.enc = json.NewEncoder(f)
	s.enc.SetEscapeHTML(false)
	return s, nil
}

// Append writes rec as a single line.
func (s *JSONLSink) Append(_ context.Context, rec model.Interaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSinkClosed
	}
	if err := s.enc.Encode(rec); err != nil {
		return fmt.Errorf("append interaction %s: %w", rec.ID, err)
	}
	if s.syncEachWrite {
		if err := s.file.Sync(); err != nil {
			return fmt.Errorf("sync interaction log: %w", err)
		}
	}
	return nil
}

// Path returns the log file location.
func (s *JSONLSink) Path() string {
	return s.path
}

// Close closes the underlying file. Further Appends return ErrSinkClosed.
func (s *JSONLSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.file.Close()
}
