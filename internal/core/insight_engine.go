// ABOUTME: InsightEngine batch-generates conversation summaries and keywords
// ABOUTME: Resumable via the cache, with incremental saves and rate-limit pacing
package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/zain/mindsearch/internal/models"
	"github.com/zain/mindsearch/internal/storage"
)

// InsightGenerator produces a summary and keywords for one transcript.
type InsightGenerator interface {
	GenerateInsight(transcript string) (models.Insight, error)
}

// InsightEngine walks the archive's conversations and fills the insight
// cache. Failures are cached as explicit error markers so an interrupted or
// re-run batch never retries them within normal operation.
type InsightEngine struct {
	generator InsightGenerator
	meta      *storage.MetadataStore
	cache     *storage.InsightCache
	cachePath string
	delay     time.Duration
	saveEvery int
}

// InsightStats is the accounting for one batch run.
type InsightStats struct {
	Conversations int // distinct ids in the metadata store
	Skipped       int // already cached
	Generated     int // successfully generated this run
	Failed        int // cached with an error marker this run
	Saves         int // incremental cache writes
}

// NewInsightEngine creates a batch engine. delay spaces out generation calls
// to respect service rate limits; saveEvery controls incremental persistence
// so an interrupted run loses little work.
func NewInsightEngine(generator InsightGenerator, meta *storage.MetadataStore, cache *storage.InsightCache, cachePath string, delay time.Duration, saveEvery int) *InsightEngine {
	if saveEvery < 1 {
		saveEvery = 5
	}
	return &InsightEngine{
		generator: generator,
		meta:      meta,
		cache:     cache,
		cachePath: cachePath,
		delay:     delay,
		saveEvery: saveEvery,
	}
}

// Transcript renders a reconstructed thread for the language model, one
// "User:"/"Assistant:" line per message. Only timestamped records appear,
// matching what reconstruction returns. Returns "" when nothing is usable.
func Transcript(thread []models.MessageRecord) string {
	var parts []string
	for _, r := range thread {
		prefix := "Assistant"
		if r.IsUser() {
			prefix = "User"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", prefix, strings.TrimSpace(r.DisplayText())))
	}
	return strings.Join(parts, "\n")
}

// Run generates insights for every conversation id not yet cached, in
// sorted id order. limit > 0 stops after that many uncached ids (useful for
// trial runs). The cache file is written after every saveEvery new entries
// and once at the end; a run over a fully cached archive performs no
// generation calls and no writes.
func (e *InsightEngine) Run(limit int) (*InsightStats, error) {
	ids := e.meta.ConversationIDs()
	stats := &InsightStats{Conversations: len(ids)}
	if len(ids) == 0 {
		return stats, fmt.Errorf("no conversation ids in metadata store")
	}

	newlyCached := 0
	dirty := false
	processed := 0

	for _, id := range ids {
		if e.cache.Has(id) {
			stats.Skipped++
			continue
		}
		if limit > 0 && processed >= limit {
			break
		}
		processed++

		transcript := Transcript(e.meta.Conversation(id))
		calledService := transcript != ""
		if !calledService {
			logrus.Warnf("conversation %s has no processable text, caching marker", id)
			e.cache.Put(id, models.Insight{Summary: models.InsightErrNoText, Keywords: []string{}})
			stats.Failed++
		} else if insight, err := e.generator.GenerateInsight(transcript); err != nil {
			logrus.Warnf("insight generation for %s failed, caching marker: %v", id, err)
			e.cache.Put(id, models.Insight{Summary: models.InsightErrGenerate, Keywords: []string{}})
			stats.Failed++
		} else {
			e.cache.Put(id, insight)
			stats.Generated++
			logrus.Infof("generated insight for %s", id)
		}
		newlyCached++
		dirty = true

		// Marker entries count toward the save cadence too, so a stretch of
		// textless conversations still persists incrementally.
		if newlyCached%e.saveEvery == 0 {
			if err := e.cache.Save(e.cachePath); err != nil {
				return stats, err
			}
			stats.Saves++
			dirty = false
		}

		// Pacing exists for the service's rate limits; skip it when no call
		// was made.
		if calledService && e.delay > 0 {
			time.Sleep(e.delay)
		}
	}

	if dirty {
		if err := e.cache.Save(e.cachePath); err != nil {
			return stats, err
		}
		stats.Saves++
	}
	return stats, nil
}

// GenerateOnDemand builds one conversation's insight immediately, caching
// and persisting it on success. Failures are returned to the caller without
// caching, leaving a manual retry possible.
func (e *InsightEngine) GenerateOnDemand(conversationID string) (models.Insight, error) {
	transcript := Transcript(e.meta.Conversation(conversationID))
	if transcript == "" {
		return models.Insight{}, fmt.Errorf("conversation %s has no processable text", conversationID)
	}

	insight, err := e.generator.GenerateInsight(transcript)
	if err != nil {
		return models.Insight{}, fmt.Errorf("generating insight for %s: %w", conversationID, err)
	}

	e.cache.Put(conversationID, insight)
	if err := e.cache.Save(e.cachePath); err != nil {
		return insight, err
	}
	return insight, nil
}
