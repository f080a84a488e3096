// Package guardrail decides whether a retrieved candidate may be shown,
// must be escalated to staff, or must be refused outright.
//
// Rules are evaluated in a fixed order and the first match wins. Later rules
// assume earlier ones did not fire, so the order is part of the contract.
package guardrail

import (
	"regexp"
	"strings"

	"github.com/HRehwald/PoolChat/internal/domain/intent"
	"github.com/HRehwald/PoolChat/internal/domain/model"
)

// Default confidence floors.
const (
	defaultMinCandidateConfidence = 0.10
	defaultMinIntentConfidence    = 0.10
)

// User-facing messages.
const (
	refusalMessage       = "I can’t help with medical/legal/personal account questions. "
	noCandidateMessage   = "I'm not confident I can answer that accurately. "
	lowConfidenceMessage = "I'm not fully confident in that answer. "
	liveStatusCaveat     = "\n\nFor live status updates, "
)

// Rule names, in evaluation order.
const (
	RuleSensitive     = "sensitive_topic"
	RuleNoCandidate   = "no_candidate"
	RuleLowConfidence = "low_confidence"
	RuleLiveStatus    = "live_status"
	RuleDefault       = "default"
)

// SensitivePatterns cover medical, legal/liability and personal-account
// questions. Each is matched against the lower-cased question.
var SensitivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(seizure|faint|pregnan|injur|blood|heart|asthma)\b`),
	regexp.MustCompile(`\b(sue|lawsuit|liabilit|legal advice)\b`),
	regexp.MustCompile(`\b(my account|my payment|credit card|refund status)\b`),
}

// LiveStatusPatterns catch questions about real-time conditions that the
// knowledge base cannot confirm.
var LiveStatusPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(right now|currently|open now|closed now|status)\b`),
}

// Input is everything a rule may look at.
type Input struct {
	Question         string
	Intent           intent.Intent
	IntentConfidence float64
	Candidate        model.Candidate
	EscalationLine   string
}

// rule pairs a predicate with the decision it produces.
type rule struct {
	name   string
	match  func(p *Policy, in *Input) bool
	decide func(in *Input) model.Decision
}

// Option applies a configuration option to the Policy.
type Option func(*Policy)

// WithSensitivePatterns replaces the refusal patterns.
func WithSensitivePatterns(patterns []*regexp.Regexp) Option {
	return func(p *Policy) {
		if len(patterns) > 0 {
			p.sensitive = patterns
		}
	}
}

// WithLiveStatusPatterns replaces the live-status patterns.
func WithLiveStatusPatterns(patterns []*regexp.Regexp) Option {
	return func(p *Policy) {
		if len(patterns) > 0 {
			p.liveStatus = patterns
		}
	}
}

// WithConfidenceFloors sets the minimum candidate and intent confidence
// below which an answer is escalated instead of shown.
func WithConfidenceFloors(candidate, intent float64) Option {
	return func(p *Policy) {
		if candidate >= 0 {
			p.minCandidateConfidence = candidate
		}
		if intent >= 0 {
			p.minIntentConfidence = intent
		}
	}
}

// Policy is an ordered guardrail rule set. It is immutable after New and
// safe for concurrent use.
type Policy struct {
	sensitive              []*regexp.Regexp
	liveStatus             []*regexp.Regexp
	minCandidateConfidence float64
	minIntentConfidence    float64
	rules                  []rule
}

// New creates a Policy with the default patterns and floors.
func New(opts ...Option) *Policy {
	p := &Policy{
		sensitive:              SensitivePatterns,
		liveStatus:             LiveStatusPatterns,
		minCandidateConfidence: defaultMinCandidateConfidence,
		minIntentConfidence:    defaultMinIntentConfidence,
	}

	// Apply all options
	for _, opt := range opts {
		opt(p)
	}

	p.rules = []rule{
		{name: RuleSensitive, match: matchSensitive, decide: refuse},
		{name: RuleNoCandidate, match: matchNoCandidate, decide: escalateNoCandidate},
		{name: RuleLowConfidence, match: matchLowConfidence, decide: escalateLowConfidence},
		{name: RuleLiveStatus, match: matchLiveStatus, decide: escalateLiveStatus},
	}

	return p
}

var defaultPolicy = New()

// Apply runs the default Policy.
func Apply(question string, in intent.Intent, intentConfidence float64, candidate model.Candidate, facility model.Facility) model.Decision {
	d, _ := defaultPolicy.Evaluate(question, in, intentConfidence, candidate, facility)
	return d
}

// Apply returns the decision for one question.
func (p *Policy) Apply(question string, in intent.Intent, intentConfidence float64, candidate model.Candidate, facility model.Facility) model.Decision {
	d, _ := p.Evaluate(question, in, intentConfidence, candidate, facility)
	return d
}

// Evaluate returns the decision together with the name of the rule that
// produced it.
func (p *Policy) Evaluate(question string, in intent.Intent, intentConfidence float64, candidate model.Candidate, facility model.Facility) (model.Decision, string) {
	input := &Input{
		Question:         question,
		Intent:           in,
		IntentConfidence: intentConfidence,
		Candidate:        candidate,
		EscalationLine:   EscalationLine(facility),
	}

	for _, r := range p.rules {
		if r.match(p, input) {
			return r.decide(input), r.name
		}
	}

	return model.Decision{
		Answer: strings.TrimSpace(candidate.Answer),
		Source: candidate.Source,
		Kind:   model.DecisionAnswered,
	}, RuleDefault
}

// EscalationLine tells the user how to reach staff.
func EscalationLine(facility model.Facility) string {
	if facility.Phone != "" {
		return "Please contact the front desk at " + facility.Phone + "."
	}
	return "Please contact the front desk."
}

func matchSensitive(p *Policy, in *Input) bool {
	return matchesAny(p.sensitive, in.Question)
}

func matchNoCandidate(_ *Policy, in *Input) bool {
	return in.Candidate.Empty()
}

func matchLowConfidence(p *Policy, in *Input) bool {
	return in.Candidate.Confidence < p.minCandidateConfidence || in.IntentConfidence < p.minIntentConfidence
}

func matchLiveStatus(p *Policy, in *Input) bool {
	return matchesAny(p.liveStatus, in.Question)
}

func refuse(in *Input) model.Decision {
	return model.Decision{
		Answer:     refusalMessage + in.EscalationLine,
		Escalation: in.EscalationLine,
		Kind:       model.DecisionRefused,
	}
}

func escalateNoCandidate(in *Input) model.Decision {
	return model.Decision{
		Answer:     noCandidateMessage + in.EscalationLine,
		Escalation: in.EscalationLine,
		Kind:       model.DecisionEscalated,
	}
}

// escalateLowConfidence hides the candidate text but still reports where
// it came from.
func escalateLowConfidence(in *Input) model.Decision {
	return model.Decision{
		Answer:     lowConfidenceMessage + in.EscalationLine,
		Source:     in.Candidate.Source,
		Escalation: in.EscalationLine,
		Kind:       model.DecisionEscalated,
	}
}

func escalateLiveStatus(in *Input) model.Decision {
	return model.Decision{
		Answer:     strings.TrimSpace(in.Candidate.Answer) + liveStatusCaveat + in.EscalationLine,
		Source:     in.Candidate.Source,
		Escalation: in.EscalationLine,
		Kind:       model.DecisionEscalated,
	}
}

func matchesAny(patterns []*regexp.Regexp, text string) bool {
	t := strings.ToLower(text)
	for _, re := range patterns {
		if re.MatchString(t) {
			return true
		}
	}
	return false
}
