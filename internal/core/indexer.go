// ABOUTME: Indexer runs the build pipeline: sanitize, batch embed, build index + metadata
// ABOUTME: A failed batch drops its records from both halves so alignment always holds
package core

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/zain/mindsearch/internal/models"
	"github.com/zain/mindsearch/internal/storage"
)

// Embedder turns an ordered batch of texts into one vector per text.
type Embedder interface {
	EmbedTexts(texts []string) ([][]float32, error)
}

// Indexer builds the vector index and metadata store from raw records.
type Indexer struct {
	embedder  Embedder
	sanitizer *Sanitizer
	batchSize int
}

// BuildResult is the accounting for one index build.
type BuildResult struct {
	Total          int // records read from the source
	Eligible       int // records that passed sanitization
	Embedded       int // records actually embedded and stored
	SkippedBatches int // batches dropped after embedding failure
	Dimension      int // embedding dimension
}

// NewIndexer creates an indexer embedding batchSize texts per service call.
func NewIndexer(embedder Embedder, sanitizer *Sanitizer, batchSize int) *Indexer {
	return &Indexer{embedder: embedder, sanitizer: sanitizer, batchSize: batchSize}
}

// Build sanitizes records, embeds the eligible texts in batches, and returns
// an aligned index/metadata pair. A batch whose embedding call ultimately
// fails (after the embedder's own retries) is logged and skipped; its
// records appear in neither the index nor the metadata store, degrading
// coverage instead of aborting the run. Zero eligible or zero embedded
// records is an error and nothing is built.
func (ix *Indexer) Build(records []models.MessageRecord) (*storage.FlatIndex, *storage.MetadataStore, *BuildResult, error) {
	eligible, texts := ix.sanitizer.Filter(records)
	result := &BuildResult{Total: len(records), Eligible: len(eligible)}

	if len(eligible) == 0 {
		return nil, nil, result, fmt.Errorf("no records eligible for embedding (of %d read)", len(records))
	}
	logrus.Infof("%d of %d records ready for embedding", len(eligible), len(records))

	var vectors [][]float32
	var stored []models.MessageRecord
	for start := 0; start < len(texts); start += ix.batchSize {
		end := start + ix.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batchNum := start/ix.batchSize + 1

		batchVectors, err := ix.embedder.EmbedTexts(texts[start:end])
		if err != nil {
			logrus.Errorf("batch %d failed, skipping %d records: %v", batchNum, end-start, err)
			result.SkippedBatches++
			continue
		}
		if len(batchVectors) != end-start {
			logrus.Errorf("batch %d returned %d vectors for %d texts, skipping", batchNum, len(batchVectors), end-start)
			result.SkippedBatches++
			continue
		}

		vectors = append(vectors, batchVectors...)
		stored = append(stored, eligible[start:end]...)
		logrus.Debugf("embedded batch %d (%d texts)", batchNum, end-start)
	}

	result.Embedded = len(stored)
	if len(vectors) == 0 {
		return nil, nil, result, fmt.Errorf("no embeddings created (all %d batches failed)", result.SkippedBatches)
	}

	result.Dimension = len(vectors[0])
	index, err := storage.NewFlatIndex(result.Dimension)
	if err != nil {
		return nil, nil, result, err
	}
	if err := index.Add(vectors); err != nil {
		return nil, nil, result, fmt.Errorf("building index: %w", err)
	}

	// Records reaching the store without a message id get one, so hit
	// highlighting inside reconstructed threads can identify them.
	for i := range stored {
		if stored[i].MessageID == "" {
			stored[i].MessageID = uuid.New().String()
		}
	}

	return index, storage.NewMetadataStore(stored), result, nil
}
