// Package model contains domain models passed between layers.
package model

import "strings"

// Source tags carried by knowledge records.
const (
	SourceWebsite    = "website"
	SourceStructured = "staff_structured"
)

// KnowledgeChunk is a passage scraped from the facility website.
// Fields mirror web_chunks.json.
type KnowledgeChunk struct {
	Text     string `json:"text"`
	Category string `json:"category"` // selects the boost keyword list
	Title    string `json:"title,omitempty"`
	Source   string `json:"source,omitempty"` // "website" for scraped content
}

// KnowledgeEntry is a curated staff Q&A record from local_kb.json.
type KnowledgeEntry struct {
	ID         string   `json:"id"`
	Intent     string   `json:"intent"`
	Question   string   `json:"question"`
	Variations []string `json:"variations"`
	Answer     string   `json:"answer"`
	Entities   []string `json:"entities"`
	Keywords   []string `json:"keywords"`
}

// SearchText joins the question, variations, answer and keywords into the
// blob the retriever scores against.
func (e *KnowledgeEntry) SearchText() string {
	parts := make([]string, 0, 2+len(e.Variations)+len(e.Keywords))
	parts = append(parts, e.Question)
	parts = append(parts, e.Variations...)
	parts = append(parts, e.Answer)
	parts = append(parts, e.Keywords...)
	return strings.Join(parts, " ")
}

// HasEntity reports whether label is one of the entry's declared entities.
func (e *KnowledgeEntry) HasEntity(label string) bool {
	for _, ent := range e.Entities {
		if ent == label {
			return true
		}
	}
	return false
}

// Facility holds front-desk contact details.
type Facility struct {
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Email   string `json:"email,omitempty"`
}

// KnowledgeBase is the structured staff knowledge base.
type KnowledgeBase struct {
	Facility Facility         `json:"facility"`
	Entries  []KnowledgeEntry `json:"entries"`
}
