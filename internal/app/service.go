// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the REPL.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	eventqueue "github.com/HRehwald/PoolChat/internal/adapters/mq/queue"
	"github.com/HRehwald/PoolChat/internal/adapters/mq/worker"
	repository "github.com/HRehwald/PoolChat/internal/adapters/repository"
	"github.com/HRehwald/PoolChat/internal/domain/guardrail"
	"github.com/HRehwald/PoolChat/internal/domain/intent"
	"github.com/HRehwald/PoolChat/internal/domain/model"
	"github.com/HRehwald/PoolChat/internal/domain/retrieval"
	"github.com/HRehwald/PoolChat/internal/domain/types"
	"github.com/HRehwald/PoolChat/pkg/logger"
	"github.com/HRehwald/PoolChat/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultWebChunksPath      = "kb/web_chunks.json"
	defaultLocalKBPath        = "kb/local_kb.json"
	defaultInteractionLogPath = "logs/interactions.jsonl"
	defaultLogQueueSize       = 1024
	defaultAnswerCacheSize    = 512
	writerShutdownTimeout     = 5 * time.Second
)

// trace is what the pipeline decided beyond the answer itself. It is cached
// with the answer so hits report the same metrics as misses.
type trace struct {
	rule                string
	retrievalSource     string
	retrievalConfidence float64
	hasCandidate        bool
}

type cachedAnswer struct {
	answer types.Answer
	trace  trace
}

// Service answers questions with the classify, retrieve, guardrail pipeline
// and records every interaction.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     repository.Store
	retriever *retrieval.Retriever
	policy    *guardrail.Policy
	cache     *lru.Cache[string, cachedAnswer]

	// Interaction log
	sink      worker.Sink
	ownedSink *repository.JSONLSink
	logQueue  *eventqueue.InMemoryQueue
	writer    *worker.InMemoryWorker

	// Configuration
	webChunksPath      string
	localKBPath        string
	interactionLogPath string
	logQueueSize       int
	answerCacheSize    int
	now                func() time.Time

	// State
	started   bool
	startedAt time.Time
	stopCh    chan struct{}

	// Counters
	questions atomic.Int64
	answered  atomic.Int64
	escalated atomic.Int64
	refused   atomic.Int64
	cacheHits atomic.Int64
	dropped   atomic.Int64

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		retriever:          retrieval.New(),
		policy:             guardrail.New(),
		webChunksPath:      defaultWebChunksPath,
		localKBPath:        defaultLocalKBPath,
		interactionLogPath: defaultInteractionLogPath,
		logQueueSize:       defaultLogQueueSize,
		answerCacheSize:    defaultAnswerCacheSize,
		now:                time.Now,
		stopCh:             make(chan struct{}),
		logger:             nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the knowledge corpora and starts the interaction log writer.
// It refuses to start when either corpus cannot be loaded.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting assistant service...")

	if s.store == nil {
		store, err := repository.NewFileStore(ctx, s.webChunksPath, s.localKBPath)
		if err != nil {
			metrics.RecordErrorByComponent("service", "load_knowledge")
			return fmt.Errorf("start service: %w", err)
		}
		s.store = store
	}
	chunks, entries := s.store.Count(ctx)
	metrics.UpdateKnowledgeSize(chunks, entries)

	if s.answerCacheSize > 0 {
		cache, err := lru.New[string, cachedAnswer](s.answerCacheSize)
		if err != nil {
			return fmt.Errorf("start service: answer cache: %w", err)
		}
		s.cache = cache
	}

	if err := s.startInteractionLog(ctx); err != nil {
		return err
	}

	// Recreate the stop channel so a stopped service can be started again
	s.stopCh = make(chan struct{})
	go s.refreshGauges(s.stopCh)

	s.started = true
	s.startedAt = s.now()
	s.logger.Info(ctx, "assistant service started",
		logger.Int("chunks", chunks),
		logger.Int("entries", entries),
		logger.Int("answerCacheSize", s.answerCacheSize),
		logger.Bool("interactionLog", s.logQueue != nil),
	)

	return nil
}

// startInteractionLog wires queue, writer and sink. Without a sink or a
// path the log is disabled.
func (s *Service) startInteractionLog(ctx context.Context) error {
	if s.sink == nil && s.interactionLogPath != "" {
		sink, err := repository.NewJSONLSink(s.interactionLogPath)
		if err != nil {
			metrics.RecordErrorByComponent("service", "open_interaction_log")
			return fmt.Errorf("start service: %w", err)
		}
		s.ownedSink = sink
		s.sink = sink
	}
	if s.sink == nil {
		s.logger.Warn(ctx, "interaction log disabled")
		return nil
	}

	s.logQueue = eventqueue.NewInMemoryQueue(eventqueue.WithCapacity(s.logQueueSize))
	s.writer = worker.NewInMemoryWorker(s.logQueue, s.sink, worker.WithLogger(s.logger))

	// The writer must outlive the caller's context so Stop can drain it.
	go s.writer.Run(context.WithoutCancel(ctx))
	return nil
}

// refreshGauges samples the interaction log queue length until stop closes.
func (s *Service) refreshGauges(stop <-chan struct{}) {
	ticker := time.NewTicker(metrics.RefreshInterval())
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.mu.RLock()
			q := s.logQueue
			s.mu.RUnlock()
			if q != nil {
				metrics.UpdateLogQueueSize(q.Len(context.Background()))
			}
		}
	}
}

// Stop gracefully shuts down the service, flushing queued interactions.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping assistant service...")

	// Close the queue first so the writer drains and exits
	if s.logQueue != nil {
		_ = s.logQueue.Close()
		shutdownCtx, cancel := context.WithTimeout(ctx, writerShutdownTimeout)
		if err := s.writer.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn(ctx, "interaction writer did not drain", logger.Error(err))
		}
		cancel()
	}

	if s.ownedSink != nil {
		if err := s.ownedSink.Close(); err != nil {
			s.logger.Error(ctx, "error closing interaction log", logger.Error(err))
		}
		s.ownedSink = nil
		s.sink = nil
	}

	// Signal gauge loop to stop
	select {
	case <-s.stopCh:
		// Channel already closed
	default:
		close(s.stopCh)
	}

	s.logQueue = nil
	s.writer = nil
	s.started = false
	s.logger.Info(ctx, "assistant service stopped")
}

// Ask runs one question through the pipeline. Identical questions (ignoring
// case and surrounding whitespace) are served from the answer cache; every
// question is logged either way.
func (s *Service) Ask(ctx context.Context, question string) (types.Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return types.Answer{}, ErrNotStarted
	}

	q := strings.TrimSpace(question)
	if q == "" {
		return types.Answer{}, ErrEmptyQuestion
	}

	start := time.Now()
	key := strings.ToLower(q)

	var entry cachedAnswer
	cached := false
	if s.cache != nil {
		entry, cached = s.cache.Get(key)
	}

	if cached {
		s.cacheHits.Add(1)
		metrics.RecordCacheHit()
		entry.answer.Question = q
		entry.answer.Cached = true
	} else {
		metrics.RecordCacheMiss()
		entry = s.answer(ctx, q)
		if s.cache != nil {
			s.cache.Add(key, entry)
		}
	}

	ans := entry.answer
	s.count(ans.Decision)
	observe(ans, entry.trace)
	metrics.RecordPipelineLatency(float64(time.Since(start).Microseconds()) / 1000)

	s.record(ctx, ans)
	return ans, nil
}

// answer is the uncached pipeline.
func (s *Service) answer(ctx context.Context, q string) cachedAnswer {
	kb := s.store.KnowledgeBase(ctx)

	c := intent.Classify(q)
	candidate := s.retriever.Retrieve(q, c.Intent, c.Primary(), s.store.Chunks(ctx), kb)
	decision, rule := s.policy.Evaluate(q, c.Intent, c.Confidence, candidate, kb.Facility)

	tr := trace{rule: rule, hasCandidate: !candidate.Empty()}
	if tr.hasCandidate {
		tr.retrievalConfidence = candidate.Confidence
		tr.retrievalSource = candidate.Provenance.Source
	}

	s.logger.Debug(ctx, "answered question",
		logger.String("intent", c.Intent.String()),
		logger.Float64("intentConfidence", c.Confidence),
		logger.Strings("entities", intent.EntityStrings(c.Entities)),
		logger.Float64("retrievalConfidence", candidate.Confidence),
		logger.String("source", candidate.Source),
		logger.String("rule", rule),
		logger.String("decision", string(decision.Kind)),
	)

	return cachedAnswer{
		answer: types.Answer{
			Question:         q,
			Intent:           c.Intent,
			IntentConfidence: c.Confidence,
			Entities:         c.Entities,
			Decision:         decision.Kind,
			Answer:           decision.Answer,
			Source:           decision.Source,
			Escalation:       decision.Escalation,
		},
		trace: tr,
	}
}

// observe records the per-question metrics for cached and fresh answers alike.
func observe(ans types.Answer, tr trace) { //nolint:gocritic // hugeParam: Answer is a value snapshot
	metrics.RecordQuestion(ans.Intent.String())
	metrics.RecordIntentConfidence(ans.IntentConfidence)
	metrics.RecordDecision(string(ans.Decision), tr.rule)
	if tr.hasCandidate {
		metrics.RecordRetrievalConfidence(tr.retrievalConfidence)
	}
	metrics.RecordRetrievalSource(tr.retrievalSource)
}

func (s *Service) count(kind model.DecisionKind) {
	s.questions.Add(1)
	switch kind {
	case model.DecisionAnswered:
		s.answered.Add(1)
	case model.DecisionEscalated:
		s.escalated.Add(1)
	case model.DecisionRefused:
		s.refused.Add(1)
	}
}

// record enqueues the interaction without blocking. A full queue drops the
// record; answering never fails because of logging.
func (s *Service) record(ctx context.Context, ans types.Answer) { //nolint:gocritic // hugeParam: Answer is a value snapshot
	if s.logQueue == nil {
		return
	}

	primary := intent.EntityUnknown
	if len(ans.Entities) > 0 {
		primary = ans.Entities[0]
	}

	rec := model.Interaction{
		ID:         uuid.NewString(),
		TS:         s.now().UTC(),
		Question:   ans.Question,
		Intent:     ans.Intent.String(),
		IntentConf: ans.IntentConfidence,
		Activity:   primary.String(),
		Decision:   ans.Decision,
		Source:     model.SourcePtr(ans.Source),
	}
	if !s.logQueue.Enqueue(ctx, rec) {
		s.dropped.Add(1)
		s.logger.Warn(ctx, "interaction log queue full, dropping record",
			logger.String("id", rec.ID),
		)
	}
}

// Topics lists the facility and the intents and entities the assistant
// recognizes.
func (s *Service) Topics(ctx context.Context) (types.Topics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return types.Topics{}, ErrNotStarted
	}

	return types.Topics{
		Facility: s.store.KnowledgeBase(ctx).Facility,
		Intents:  intent.Labels(),
		Entities: intent.EntityLabels(),
	}, nil
}

// Facility returns the loaded front-desk contact details.
func (s *Service) Facility(ctx context.Context) model.Facility {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.store == nil {
		return model.Facility{}
	}
	return s.store.KnowledgeBase(ctx).Facility
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() types.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := types.Stats{
		QuestionsAnswered: s.questions.Load(),
		Answered:          s.answered.Load(),
		Escalated:         s.escalated.Load(),
		Refused:           s.refused.Load(),
		CacheHits:         s.cacheHits.Load(),
	}

	if s.store != nil {
		stats.KnowledgeChunks, stats.KnowledgeEntries = s.store.Count(ctx)
	}
	if s.started {
		stats.UptimeSeconds = s.now().Sub(s.startedAt).Seconds()
		if s.logQueue != nil {
			stats.LogQueueSize = s.logQueue.Len(ctx)
		}
		// Records rejected by the sink are lost just like queue drops
		stats.LogDropped = s.dropped.Load()
		if s.writer != nil {
			stats.LogDropped += s.writer.Failed()
		}
	}

	return stats
}

// Started reports whether Start has completed.
func (s *Service) Started() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}
