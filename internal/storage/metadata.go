// ABOUTME: MetadataStore holds the eligible message records in embedding order
// ABOUTME: Position i here resolves vector handle i from the flat index
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/zain/mindsearch/internal/models"
)

// MetadataStore is the ordered list of records whose texts were embedded.
// Its order is identical to the embedding order given to the vector index;
// that alignment is what makes search hits resolvable.
type MetadataStore struct {
	records []models.MessageRecord
}

// NewMetadataStore wraps records already in embedding order.
func NewMetadataStore(records []models.MessageRecord) *MetadataStore {
	return &MetadataStore{records: records}
}

// LoadMetadata reads a metadata file (a single JSON array of records).
func LoadMetadata(path string) (*MetadataStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading metadata file: %w", err)
	}
	var records []models.MessageRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing metadata %s: %w", path, err)
	}
	return &MetadataStore{records: records}, nil
}

// Save writes the store to path atomically.
func (s *MetadataStore) Save(path string) error {
	return writeJSON(path, s.records)
}

// Len returns the number of stored records.
func (s *MetadataStore) Len() int { return len(s.records) }

// Record returns the record at position i. The second return is false when
// i is out of bounds, which only happens if the index/metadata alignment has
// been violated; callers skip such handles rather than fail.
func (s *MetadataStore) Record(i int) (models.MessageRecord, bool) {
	if i < 0 || i >= len(s.records) {
		return models.MessageRecord{}, false
	}
	return s.records[i], true
}

// Records returns the full record sequence in embedding order.
func (s *MetadataStore) Records() []models.MessageRecord {
	return s.records
}

// Conversation returns the store's records for the given conversation id,
// time-ordered. See ReconstructThread for the ordering contract.
func (s *MetadataStore) Conversation(conversationID string) []models.MessageRecord {
	return ReconstructThread(s.records, conversationID)
}

// ConversationIDs returns the distinct non-empty conversation ids present in
// the store, sorted ascending.
func (s *MetadataStore) ConversationIDs() []string {
	seen := make(map[string]struct{})
	for _, r := range s.records {
		if r.ConversationID != "" {
			seen[r.ConversationID] = struct{}{}
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ReconstructThread returns the records sharing conversationID whose
// timestamp is present and parsable, sorted ascending by timestamp. Records
// with equal timestamps keep their relative source order. Records without a
// usable timestamp are omitted, so a reconstructed thread can be shorter
// than the true conversation.
func ReconstructThread(records []models.MessageRecord, conversationID string) []models.MessageRecord {
	if conversationID == "" {
		return nil
	}

	type timed struct {
		rec models.MessageRecord
		at  int64 // unix nanos
	}
	var thread []timed
	for _, r := range records {
		if r.ConversationID != conversationID {
			continue
		}
		t, ok := r.Time()
		if !ok {
			continue
		}
		thread = append(thread, timed{rec: r, at: t.UnixNano()})
	}

	sort.SliceStable(thread, func(i, j int) bool {
		return thread[i].at < thread[j].at
	})

	out := make([]models.MessageRecord, len(thread))
	for i, tr := range thread {
		out[i] = tr.rec
	}
	return out
}
