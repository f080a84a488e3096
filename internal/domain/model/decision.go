package model

// Provenance points at the record a Candidate was built from. Exactly one of
// Chunk or Entry is set.
type Provenance struct {
	Source string          `json:"source"`
	Chunk  *KnowledgeChunk `json:"chunk,omitempty"`
	Entry  *KnowledgeEntry `json:"entry,omitempty"`
}

// Candidate is the retriever's best passage for one question.
type Candidate struct {
	Answer     string      `json:"answer"`
	Source     string      `json:"source,omitempty"` // empty when there is no candidate
	Confidence float64     `json:"confidence"`
	Provenance *Provenance `json:"provenance,omitempty"`
}

// Empty reports whether retrieval found nothing usable.
func (c Candidate) Empty() bool { return c.Answer == "" }

// DecisionKind is the guardrail verdict.
type DecisionKind string

// Decision kinds.
const (
	DecisionAnswered  DecisionKind = "answered"
	DecisionEscalated DecisionKind = "escalated"
	DecisionRefused   DecisionKind = "refused"
)

// Decision is the final, user-facing outcome for one question.
type Decision struct {
	Answer     string       `json:"answer"`
	Source     string       `json:"source,omitempty"`
	Escalation string       `json:"escalation,omitempty"`
	Kind       DecisionKind `json:"decision"`
}
