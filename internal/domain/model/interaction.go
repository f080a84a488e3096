package model

import "time"

// Interaction is the append-only log record written once per question.
type Interaction struct {
	ID         string       `json:"id"`
	TS         time.Time    `json:"ts"`
	Question   string       `json:"question"`
	Intent     string       `json:"intent"`
	IntentConf float64      `json:"intent_conf"`
	Activity   string       `json:"activity"` // primary entity label
	Decision   DecisionKind `json:"decision"`
	Source     *string      `json:"source"` // null when the decision has no source
}

// SourcePtr converts an optional source label to the log's nullable form.
func SourcePtr(source string) *string {
	if source == "" {
		return nil
	}
	return &source
}
