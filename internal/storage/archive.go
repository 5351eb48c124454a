// ABOUTME: Archive bundles the loaded metadata store, vector index, and insight cache
// ABOUTME: Constructed once per process and passed to the engines (no global state)
package storage

import (
	"fmt"
	"path/filepath"
)

// Archive is the read-only loaded state a query session operates on. The
// metadata store and vector index are always loaded together so a consumer
// never sees one half of a rebuilt pair.
type Archive struct {
	Metadata *MetadataStore
	Index    *FlatIndex
	Insights *InsightCache

	dataDir string
}

// LoadArchive loads the index/metadata pair plus the insight cache from the
// data directory. Missing or corrupt index or metadata is an error: search
// against half an archive is refused rather than silently run against
// nothing. Insights degrade to an empty cache.
func LoadArchive(dataDir string) (*Archive, error) {
	meta, err := LoadMetadata(filepath.Join(dataDir, MetadataFile))
	if err != nil {
		return nil, fmt.Errorf("loading archive metadata (run the index command first?): %w", err)
	}
	index, err := LoadIndex(filepath.Join(dataDir, IndexFile))
	if err != nil {
		return nil, fmt.Errorf("loading archive index (run the index command first?): %w", err)
	}
	if meta.Len() != index.Len() {
		return nil, fmt.Errorf("archive corrupt: %d metadata records but %d indexed vectors",
			meta.Len(), index.Len())
	}

	return &Archive{
		Metadata: meta,
		Index:    index,
		Insights: LoadInsights(filepath.Join(dataDir, InsightsFile)),
		dataDir:  dataDir,
	}, nil
}

// InsightsPath returns the insight cache file path for this archive.
func (a *Archive) InsightsPath() string {
	return filepath.Join(a.dataDir, InsightsFile)
}

// WriteArchive persists a freshly built index/metadata pair. Both files are
// written atomically; metadata goes first so a crash between the two renames
// leaves a mismatched pair that LoadArchive rejects instead of serving.
func WriteArchive(dataDir string, index *FlatIndex, meta *MetadataStore) error {
	if index.Len() != meta.Len() {
		return fmt.Errorf("refusing to write misaligned archive: %d vectors, %d records",
			index.Len(), meta.Len())
	}
	if err := meta.Save(filepath.Join(dataDir, MetadataFile)); err != nil {
		return fmt.Errorf("writing metadata: %w", err)
	}
	if err := SaveIndex(index, filepath.Join(dataDir, IndexFile)); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	return nil
}
