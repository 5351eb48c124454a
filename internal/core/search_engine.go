// ABOUTME: SearchEngine answers free-text queries against the loaded archive
// ABOUTME: Embeds the query, overfetches candidates, applies role filtering, hydrates threads
package core

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/zain/mindsearch/internal/models"
	"github.com/zain/mindsearch/internal/storage"
)

// Role filter values for Search.
const (
	RoleFilterAny       = "any"
	RoleFilterUser      = models.RoleUser
	RoleFilterAssistant = models.RoleAssistant
)

// QueryEmbedder embeds a single query text.
type QueryEmbedder interface {
	EmbedText(text string) ([]float32, error)
}

// SearchOptions controls filtering and hydration of search results.
type SearchOptions struct {
	// Role keeps only hits whose record role matches; RoleFilterAny (or
	// empty) disables the filter. Filtering removes hits, never reorders.
	Role string
	// MaxResults caps the number of hits returned (default 5).
	MaxResults int
	// IncludeConversation attaches each hit's reconstructed thread.
	IncludeConversation bool
}

// SearchHit is one retrieved message with its distance and, optionally, the
// surrounding conversation.
type SearchHit struct {
	Handle       int                    `json:"handle"`
	Distance     float32                `json:"distance"`
	Record       models.MessageRecord   `json:"record"`
	Conversation []models.MessageRecord `json:"conversation,omitempty"`
}

// SearchEngine ties the query embedder to a loaded archive.
type SearchEngine struct {
	embedder  QueryEmbedder
	archive   *storage.Archive
	overfetch int
}

// NewSearchEngine creates an engine that fetches overfetch candidates from
// the index before filtering, leaving headroom for role filters.
func NewSearchEngine(embedder QueryEmbedder, archive *storage.Archive, overfetch int) *SearchEngine {
	if overfetch < 1 {
		overfetch = 20
	}
	return &SearchEngine{embedder: embedder, archive: archive, overfetch: overfetch}
}

// Search runs a semantic query. An empty or whitespace-only query is a
// no-op: no embedding call, no results, no error. A query embedding failure
// aborts the search; partial or stale results are never returned.
func (e *SearchEngine) Search(query string, opts SearchOptions) ([]SearchHit, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	maxResults := opts.MaxResults
	if maxResults < 1 {
		maxResults = 5
	}
	role := opts.Role
	if role == "" {
		role = RoleFilterAny
	}

	queryVector, err := e.embedder.EmbedText(query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	k := e.overfetch
	if maxResults > k {
		k = maxResults
	}
	neighbors, err := e.archive.Index.Search(queryVector, k)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}

	hits := make([]SearchHit, 0, maxResults)
	for _, nb := range neighbors {
		if len(hits) == maxResults {
			break
		}

		record, ok := e.archive.Metadata.Record(nb.Handle)
		if !ok {
			// Only possible when the index/metadata alignment is broken;
			// skip the handle rather than crash the query.
			logrus.Warnf("search handle %d outside metadata bounds, skipping", nb.Handle)
			continue
		}
		if role != RoleFilterAny && record.Role != role {
			continue
		}

		hit := SearchHit{Handle: nb.Handle, Distance: nb.Distance, Record: record}
		if opts.IncludeConversation && record.ConversationID != "" {
			hit.Conversation = e.archive.Metadata.Conversation(record.ConversationID)
		}
		hits = append(hits, hit)
	}

	return hits, nil
}

// Conversation returns the full reconstructed thread for a conversation id,
// ordered by timestamp.
func (e *SearchEngine) Conversation(conversationID string) []models.MessageRecord {
	return e.archive.Metadata.Conversation(conversationID)
}

// Insight returns the cached insight for a conversation, if any.
func (e *SearchEngine) Insight(conversationID string) (models.Insight, bool) {
	return e.archive.Insights.Get(conversationID)
}
