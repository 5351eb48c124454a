// ABOUTME: Insight holds a generated one-sentence summary and keyword list for a conversation
// ABOUTME: Stored in the insight cache file keyed by conversation id
package models

import "strings"

// Error markers cached in place of an insight so failed conversations are not
// retried on every batch run.
const (
	InsightErrNoText   = "Error: No processable text"
	InsightErrGenerate = "Error: Failed to generate"
	MaxInsightKeywords = 5
)

// Insight is a generated summary and keyword list describing a conversation.
type Insight struct {
	Summary  string   `json:"summary"`
	Keywords []string `json:"keywords"`
}

// Failed reports whether the insight is one of the cached error markers.
func (in Insight) Failed() bool {
	return strings.HasPrefix(in.Summary, "Error:")
}
