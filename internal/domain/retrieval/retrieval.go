// Package retrieval finds the best matching passage for a question across the
// website corpus and the structured staff knowledge base.
package retrieval

import (
	"regexp"
	"strings"

	"github.com/HRehwald/PoolChat/internal/domain/intent"
	"github.com/HRehwald/PoolChat/internal/domain/model"
)

// Default retrieval configuration constants.
const (
	defaultBoostWeight    = 0.15
	defaultOfficialMargin = 0.10
	minQueryTokens        = 6
	curatedContentTitle   = "curated content"
	structuredSourceLabel = "Staff notes (structured)"
)

// tokenPattern splits lower-cased text into alphanumeric runs.
var tokenPattern = regexp.MustCompile(`[a-z0-9]+`)

// Option applies a configuration option to the Retriever.
type Option func(*Retriever)

// WithCategoryBoosts replaces the category → boost term table used for
// website chunks.
func WithCategoryBoosts(boosts map[string][]string) Option {
	return func(r *Retriever) {
		if boosts == nil {
			return
		}
		// Copy the table to avoid external modifications
		r.categoryBoosts = make(map[string][]string, len(boosts))
		for category, terms := range boosts {
			r.categoryBoosts[category] = append([]string(nil), terms...)
		}
	}
}

// WithOfficialMargin sets how far the website score may trail the staff
// notes score and still win for official intents.
func WithOfficialMargin(margin float64) Option {
	return func(r *Retriever) {
		if margin >= 0 {
			r.officialMargin = margin
		}
	}
}

// Retriever scores both corpora and merges the two winners.
// It holds no per-question state and is safe for concurrent use.
type Retriever struct {
	categoryBoosts map[string][]string
	officialMargin float64
}

// New creates a Retriever with the default boost table.
func New(opts ...Option) *Retriever {
	r := &Retriever{
		categoryBoosts: defaultCategoryBoosts,
		officialMargin: defaultOfficialMargin,
	}

	// Apply all options
	for _, opt := range opts {
		opt(r)
	}

	return r
}

var defaultRetriever = New()

// Retrieve runs the default Retriever.
func Retrieve(question string, in intent.Intent, primary intent.Entity, chunks []model.KnowledgeChunk, kb *model.KnowledgeBase) model.Candidate {
	return defaultRetriever.Retrieve(question, in, primary, chunks, kb)
}

// scored is a pass winner before labelling.
type scored struct {
	provenance *model.Provenance
	text       string
	answer     string
	score      float64
}

// Retrieve returns the single best candidate for question. It never fails:
// when neither corpus produces a positive score the candidate is empty.
func (r *Retriever) Retrieve(question string, in intent.Intent, primary intent.Entity, chunks []model.KnowledgeChunk, kb *model.KnowledgeBase) model.Candidate {
	web := r.bestChunk(question, chunks)
	local := r.bestEntry(question, primary, kb)

	var chosen *scored
	switch {
	case web != nil && local != nil:
		if in.Official() && web.score >= local.score-r.officialMargin {
			chosen = web
		} else if web.score >= local.score {
			chosen = web
		} else {
			chosen = local
		}
	case web != nil:
		chosen = web
	case local != nil:
		chosen = local
	default:
		return model.Candidate{}
	}

	answer := chosen.answer
	if answer == "" {
		answer = chosen.text
	}

	return model.Candidate{
		Answer:     strings.TrimSpace(answer),
		Source:     sourceLabel(chosen.provenance),
		Confidence: chosen.score,
		Provenance: chosen.provenance,
	}
}

// bestChunk scores every website chunk with its category boosts. Only a
// strictly positive score can win; ties keep the first chunk.
func (r *Retriever) bestChunk(question string, chunks []model.KnowledgeChunk) *scored {
	var best *scored
	bestScore := 0.0
	for i := range chunks {
		ch := &chunks[i]
		score := ScoreOverlap(question, ch.Text, r.categoryBoosts[ch.Category])
		if score > bestScore {
			bestScore = score
			best = &scored{
				provenance: &model.Provenance{Source: ch.Source, Chunk: ch},
				text:       ch.Text,
				score:      score,
			}
		}
	}
	return best
}

// bestEntry scores every structured entry. The primary entity's display form
// becomes a boost term for entries that declare that entity.
func (r *Retriever) bestEntry(question string, primary intent.Entity, kb *model.KnowledgeBase) *scored {
	if kb == nil {
		return nil
	}

	var best *scored
	bestScore := 0.0
	for i := range kb.Entries {
		entry := &kb.Entries[i]
		var boost []string
		if primary != intent.EntityUnknown && entry.HasEntity(primary.String()) {
			boost = []string{primary.DisplayName()}
		}
		text := entry.SearchText()
		score := ScoreOverlap(question, text, boost)
		if score > bestScore {
			bestScore = score
			best = &scored{
				provenance: &model.Provenance{Source: model.SourceStructured, Entry: entry},
				text:       text,
				answer:     entry.Answer,
				score:      score,
			}
		}
	}
	return best
}

// sourceLabel renders the user-facing provenance label.
func sourceLabel(p *model.Provenance) string {
	if p.Source == model.SourceWebsite {
		title := curatedContentTitle
		if p.Chunk != nil && p.Chunk.Title != "" {
			title = p.Chunk.Title
		}
		return "Website: " + title
	}
	return structuredSourceLabel
}

// Tokenize returns the set of lower-case alphanumeric tokens in text.
func Tokenize(text string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		tokens[tok] = struct{}{}
	}
	return tokens
}

// ScoreOverlap scores text against query: shared tokens divided by
// max(6, query tokens), plus a flat 0.15 for every boost term found in the
// raw query. Boosts are additive and the result is not capped at 1.
func ScoreOverlap(query, text string, boostTerms []string) float64 {
	textTokens := Tokenize(text)
	if len(textTokens) == 0 {
		return 0
	}
	queryTokens := Tokenize(query)

	overlap := 0
	for tok := range queryTokens {
		if _, ok := textTokens[tok]; ok {
			overlap++
		}
	}
	score := float64(overlap) / float64(max(minQueryTokens, len(queryTokens)))

	q := strings.ToLower(query)
	for _, term := range boostTerms {
		if term != "" && strings.Contains(q, strings.ToLower(term)) {
			score += defaultBoostWeight
		}
	}

	return score
}
