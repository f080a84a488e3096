// Package types contains common types used across the application
package types

import (
	"github.com/HRehwald/PoolChat/internal/domain/intent"
	"github.com/HRehwald/PoolChat/internal/domain/model"
)

// Answer is the full pipeline result for one question, as returned by the
// service and rendered by the HTTP API and the REPL.
type Answer struct {
	Question         string             `json:"question"`
	Intent           intent.Intent      `json:"intent"`
	IntentConfidence float64            `json:"intent_confidence"`
	Entities         []intent.Entity    `json:"entities"`
	Decision         model.DecisionKind `json:"decision"`
	Answer           string             `json:"answer"`
	Source           string             `json:"source,omitempty"`
	Escalation       string             `json:"escalation,omitempty"`
	Cached           bool               `json:"cached"`
}

// Escalated reports whether the user was pointed at staff.
func (a Answer) Escalated() bool {
	return a.Escalation != ""
}

// Topics lists what the assistant can talk about.
type Topics struct {
	Facility model.Facility `json:"facility"`
	Intents  []string       `json:"intents"`
	Entities []string       `json:"entities"`
}

// Stats is a point-in-time service snapshot.
type Stats struct {
	KnowledgeChunks   int     `json:"knowledge_chunks"`
	KnowledgeEntries  int     `json:"knowledge_entries"`
	QuestionsAnswered int64   `json:"questions_answered"`
	Answered          int64   `json:"answered"`
	Escalated         int64   `json:"escalated"`
	Refused           int64   `json:"refused"`
	CacheHits         int64   `json:"cache_hits"`
	LogQueueSize      int     `json:"log_queue_size"`
	LogDropped        int64   `json:"log_dropped"`
	UptimeSeconds     float64 `json:"uptime_seconds"`
}
