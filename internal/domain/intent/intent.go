// Package intent classifies questions into intents and extracts the topical
// entities they mention.
//
// Both classifiers are keyword based: a keyword matches when it occurs as a
// substring of the lower-cased question. Matching is deliberately naive, so
// short keywords can fire inside unrelated words ("age" in "page").
package intent

import (
	"fmt"
	"strings"
)

// Intent is the coarse purpose assigned to a question.
type Intent uint8

// Intents in classification order. Ties between intents keep the one that
// appears first in this list.
const (
	Unknown Intent = iota
	ScheduleInquiry
	PolicyInquiry
	EligibilityInquiry
	AmenityInquiry
	AmenityAvailability
	ContactInquiry
	LocationInquiry
	RegistrationInquiry
)

var intentNames = [...]string{
	Unknown:             "unknown",
	ScheduleInquiry:     "schedule_inquiry",
	PolicyInquiry:       "policy_inquiry",
	EligibilityInquiry:  "eligibility_inquiry",
	AmenityInquiry:      "amenity_inquiry",
	AmenityAvailability: "amenity_availability",
	ContactInquiry:      "contact_inquiry",
	LocationInquiry:     "location_inquiry",
	RegistrationInquiry: "registration_inquiry",
}

// String returns the wire label, e.g. "schedule_inquiry".
func (i Intent) String() string {
	if int(i) < len(intentNames) {
		return intentNames[i]
	}
	return intentNames[Unknown]
}

// MarshalText implements encoding.TextMarshaler.
func (i Intent) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Intent) UnmarshalText(b []byte) error {
	parsed, err := ParseIntent(string(b))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// ParseIntent maps a wire label back to an Intent.
func ParseIntent(s string) (Intent, error) {
	for i, name := range intentNames {
		if name == s {
			return Intent(i), nil
		}
	}
	return Unknown, fmt.Errorf("%w: %q", ErrUnknownLabel, s)
}

// Official reports whether answers for this intent should favour the
// facility website over staff notes.
func (i Intent) Official() bool {
	switch i {
	case ScheduleInquiry, PolicyInquiry, EligibilityInquiry, RegistrationInquiry:
		return true
	default:
		return false
	}
}

// Confidence bands for the keyword classifier.
const (
	ConfidenceNone  = 0.20
	ConfidenceOne   = 0.60
	ConfidenceTwo   = 0.75
	ConfidenceThree = 0.90
)

// ClassifyIntent returns the intent with the most distinct keyword hits and a
// banded confidence. A question with no hits is (Unknown, 0.20).
func ClassifyIntent(question string) (Intent, float64) {
	q := strings.ToLower(question)

	best := Unknown
	bestHits := 0
	for _, row := range intentKeywords {
		hits := countHits(q, row.keywords)
		if hits > bestHits {
			bestHits = hits
			best = row.intent
		}
	}

	switch {
	case bestHits == 0:
		return Unknown, ConfidenceNone
	case bestHits == 1:
		return best, ConfidenceOne
	case bestHits == 2:
		return best, ConfidenceTwo
	default:
		return best, ConfidenceThree
	}
}

// ExtractEntities returns every entity with at least one keyword hit, in
// table order. The result is never empty: no hits yields [Unknown entity].
func ExtractEntities(question string) []Entity {
	q := strings.ToLower(question)

	var matched []Entity
	for _, row := range entityKeywords {
		if countHits(q, row.keywords) > 0 {
			matched = append(matched, row.entity)
		}
	}
	if len(matched) == 0 {
		return []Entity{EntityUnknown}
	}
	return matched
}

// Classification bundles everything the classifier knows about a question.
type Classification struct {
	Intent     Intent   `json:"intent"`
	Confidence float64  `json:"confidence"`
	Entities   []Entity `json:"entities"`
}

// Primary returns the first matched entity, used as the question's activity.
func (c Classification) Primary() Entity {
	if len(c.Entities) == 0 {
		return EntityUnknown
	}
	return c.Entities[0]
}

// Classify runs both classifiers.
func Classify(question string) Classification {
	in, conf := ClassifyIntent(question)
	return Classification{
		Intent:     in,
		Confidence: conf,
		Entities:   ExtractEntities(question),
	}
}

// countHits counts keywords present in q; repeats of one keyword count once.
func countHits(q string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(q, kw) {
			n++
		}
	}
	return n
}

// Labels returns every known intent label except "unknown", in
// classification order.
func Labels() []string {
	return append([]string(nil), intentNames[Unknown+1:]...)
}
