// ABOUTME: InsightCache maps conversation ids to precomputed summaries and keywords
// ABOUTME: Backed by a single JSON object file, written atomically
package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/zain/mindsearch/internal/models"
)

// InsightCache holds generated conversation insights keyed by conversation
// id. Entries are immutable once written except for explicit regeneration.
type InsightCache struct {
	entries map[string]models.Insight
}

// NewInsightCache returns an empty cache.
func NewInsightCache() *InsightCache {
	return &InsightCache{entries: make(map[string]models.Insight)}
}

// LoadInsights reads the insight file. A missing file yields an empty cache;
// a corrupt file is logged and also yields an empty cache so on-demand
// generation still works.
func LoadInsights(path string) *InsightCache {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logrus.Warnf("insights file %s unreadable, starting empty: %v", path, err)
		}
		return NewInsightCache()
	}

	entries := make(map[string]models.Insight)
	if err := json.Unmarshal(data, &entries); err != nil {
		logrus.Warnf("insights file %s corrupt, starting empty: %v", path, err)
		return NewInsightCache()
	}
	return &InsightCache{entries: entries}
}

// Get returns the cached insight for a conversation id.
func (c *InsightCache) Get(conversationID string) (models.Insight, bool) {
	in, ok := c.entries[conversationID]
	return in, ok
}

// Has reports whether an insight (including an error marker) is cached.
func (c *InsightCache) Has(conversationID string) bool {
	_, ok := c.entries[conversationID]
	return ok
}

// Put stores an insight for a conversation id.
func (c *InsightCache) Put(conversationID string, in models.Insight) {
	c.entries[conversationID] = in
}

// Len returns the number of cached entries.
func (c *InsightCache) Len() int { return len(c.entries) }

// Save writes the cache to path atomically.
func (c *InsightCache) Save(path string) error {
	if err := writeJSON(path, c.entries); err != nil {
		return fmt.Errorf("saving insights: %w", err)
	}
	return nil
}
