package service

import (
	"time"

	"github.com/HRehwald/PoolChat/internal/adapters/mq/worker"
	repository "github.com/HRehwald/PoolChat/internal/adapters/repository"
	"github.com/HRehwald/PoolChat/internal/domain/guardrail"
	"github.com/HRehwald/PoolChat/internal/domain/retrieval"
	"github.com/HRehwald/PoolChat/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStore uses an already loaded knowledge store instead of reading the
// knowledge files on Start.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithKnowledgePaths sets the website corpus and structured knowledge base
// files loaded on Start.
func WithKnowledgePaths(webChunks, localKB string) Option {
	return func(s *Service) {
		if webChunks != "" {
			s.webChunksPath = webChunks
		}
		if localKB != "" {
			s.localKBPath = localKB
		}
	}
}

// WithInteractionLogPath sets the JSON Lines file interactions are appended
// to. An empty path disables the interaction log.
func WithInteractionLogPath(path string) Option {
	return func(s *Service) {
		s.interactionLogPath = path
	}
}

// WithInteractionSink writes interactions to sink instead of a file.
func WithInteractionSink(sink worker.Sink) Option {
	return func(s *Service) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithLogQueueSize bounds the interaction log queue.
func WithLogQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.logQueueSize = size
		}
	}
}

// WithAnswerCacheSize sets the LRU answer cache size. Zero disables caching.
func WithAnswerCacheSize(size int) Option {
	return func(s *Service) {
		if size >= 0 {
			s.answerCacheSize = size
		}
	}
}

// WithRetriever replaces the default retriever.
func WithRetriever(r *retrieval.Retriever) Option {
	return func(s *Service) {
		if r != nil {
			s.retriever = r
		}
	}
}

// WithPolicy replaces the default guardrail policy.
func WithPolicy(p *guardrail.Policy) Option {
	return func(s *Service) {
		if p != nil {
			s.policy = p
		}
	}
}

// WithClock overrides the time source used for interaction timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
