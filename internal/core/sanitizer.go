// ABOUTME: Record sanitizer deciding which archive messages are eligible for embedding
// ABOUTME: Drops empty, trivial, non-string, and over-length content before the embedding step
package core

import (
	"strings"
	"unicode/utf8"

	"github.com/zain/mindsearch/internal/models"
)

// TokenCounter counts tokens the way the embedding model does. The concrete
// implementation lives in the llm package; tests substitute a cheap counter.
type TokenCounter interface {
	Count(text string) int
}

// Sanitizer filters raw message records down to the embeddable ones.
type Sanitizer struct {
	counter   TokenCounter
	maxTokens int
}

// NewSanitizer creates a sanitizer enforcing the embedding model's maximum
// context length.
func NewSanitizer(counter TokenCounter, maxTokens int) *Sanitizer {
	return &Sanitizer{counter: counter, maxTokens: maxTokens}
}

// EligibleText returns the trimmed content and true when the record can be
// embedded: content is a string whose trimmed form is non-empty, not an
// empty JSON literal, at least 3 characters, and strictly under the token
// limit. The trimmed form is what gets embedded; the record itself is stored
// unmodified.
func (s *Sanitizer) EligibleText(r models.MessageRecord) (string, bool) {
	text, ok := r.Text()
	if !ok {
		return "", false
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || trimmed == "{}" || trimmed == "[]" {
		return "", false
	}
	if utf8.RuneCountInString(trimmed) < 3 {
		return "", false
	}
	if s.counter.Count(trimmed) >= s.maxTokens {
		return "", false
	}
	return trimmed, true
}

// Filter returns the eligible records and their embeddable texts, position
// for position. Ineligible records are dropped from the embedding pipeline
// but stay untouched in the source archive for thread display.
func (s *Sanitizer) Filter(records []models.MessageRecord) ([]models.MessageRecord, []string) {
	var kept []models.MessageRecord
	var texts []string
	for _, r := range records {
		if text, ok := s.EligibleText(r); ok {
			kept = append(kept, r)
			texts = append(texts, text)
		}
	}
	return kept, texts
}
