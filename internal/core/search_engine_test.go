// ABOUTME: Unit tests for the query engine
// ABOUTME: Covers empty queries, ordering, role filtering, truncation, and hydration
package core

import (
	"errors"
	"testing"

	"github.com/zain/mindsearch/internal/models"
	"github.com/zain/mindsearch/internal/storage"
)

type fakeQueryEmbedder struct {
	vector []float32
	err    error
	calls  int
}

func (f *fakeQueryEmbedder) EmbedText(text string) ([]float32, error) {
	f.calls++
	return f.vector, f.err
}

// searchFixture builds an archive with three messages in one conversation,
// placed so handle order by distance from the origin is 0, 1, 2.
func searchFixture(t *testing.T) *storage.Archive {
	t.Helper()

	index, err := storage.NewFlatIndex(2)
	if err != nil {
		t.Fatal(err)
	}
	if err := index.Add([][]float32{{1, 0}, {2, 0}, {3, 0}}); err != nil {
		t.Fatal(err)
	}

	meta := storage.NewMetadataStore([]models.MessageRecord{
		record("c1", "m0", "user", "closest message", 10),
		record("c1", "m1", "assistant", "middle message", 20),
		record("c1", "m2", "user", "farthest message", 30),
	})

	dir := t.TempDir()
	if err := storage.WriteArchive(dir, index, meta); err != nil {
		t.Fatal(err)
	}
	arch, err := storage.LoadArchive(dir)
	if err != nil {
		t.Fatal(err)
	}
	return arch
}

func TestSearchEngine_EmptyQueryIsNoOp(t *testing.T) {
	embedder := &fakeQueryEmbedder{vector: []float32{0, 0}}
	engine := NewSearchEngine(embedder, searchFixture(t), 20)

	for _, q := range []string{"", "   ", "\n\t"} {
		hits, err := engine.Search(q, SearchOptions{})
		if err != nil {
			t.Errorf("query %q: unexpected error %v", q, err)
		}
		if len(hits) != 0 {
			t.Errorf("query %q: expected no hits, got %d", q, len(hits))
		}
	}
	if embedder.calls != 0 {
		t.Errorf("empty queries must not call the embedder, got %d calls", embedder.calls)
	}
}

func TestSearchEngine_OrderingAndLimit(t *testing.T) {
	engine := NewSearchEngine(&fakeQueryEmbedder{vector: []float32{0, 0}}, searchFixture(t), 20)

	hits, err := engine.Search("what was closest", SearchOptions{MaxResults: 2})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits[0].Record.MessageID != "m0" || hits[1].Record.MessageID != "m1" {
		t.Errorf("hits = [%s %s], want [m0 m1]", hits[0].Record.MessageID, hits[1].Record.MessageID)
	}
	if hits[0].Distance > hits[1].Distance {
		t.Error("hits not in ascending distance order")
	}
}

func TestSearchEngine_RoleFilter(t *testing.T) {
	engine := NewSearchEngine(&fakeQueryEmbedder{vector: []float32{0, 0}}, searchFixture(t), 20)

	hits, err := engine.Search("anything", SearchOptions{Role: RoleFilterAssistant, MaxResults: 5})
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected exactly 1 assistant hit, got %d", len(hits))
	}
	if hits[0].Record.MessageID != "m1" {
		t.Errorf("hit = %s, want m1", hits[0].Record.MessageID)
	}

	hits, err = engine.Search("anything", SearchOptions{Role: RoleFilterUser, MaxResults: 5})
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 user hits, got %d", len(hits))
	}
	// Filtering removes, never reorders.
	if hits[0].Record.MessageID != "m0" || hits[1].Record.MessageID != "m2" {
		t.Errorf("hits = [%s %s], want [m0 m2]", hits[0].Record.MessageID, hits[1].Record.MessageID)
	}
}

func TestSearchEngine_EmbeddingFailureAborts(t *testing.T) {
	embedder := &fakeQueryEmbedder{err: errors.New("rate limited")}
	engine := NewSearchEngine(embedder, searchFixture(t), 20)

	hits, err := engine.Search("a real query", SearchOptions{})
	if err == nil {
		t.Fatal("expected error when query embedding fails")
	}
	if hits != nil {
		t.Error("no partial results on embedding failure")
	}
}

func TestSearchEngine_ConversationHydration(t *testing.T) {
	engine := NewSearchEngine(&fakeQueryEmbedder{vector: []float32{0, 0}}, searchFixture(t), 20)

	hits, err := engine.Search("closest", SearchOptions{MaxResults: 1, IncludeConversation: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	conv := hits[0].Conversation
	if len(conv) != 3 {
		t.Fatalf("expected full 3-message thread, got %d", len(conv))
	}
	for i, want := range []string{"m0", "m1", "m2"} {
		if conv[i].MessageID != want {
			t.Errorf("thread[%d] = %s, want %s (timestamp order)", i, conv[i].MessageID, want)
		}
	}
}

func TestSearchEngine_Determinism(t *testing.T) {
	engine := NewSearchEngine(&fakeQueryEmbedder{vector: []float32{0.5, 0.5}}, searchFixture(t), 20)

	first, err := engine.Search("same query", SearchOptions{MaxResults: 3})
	if err != nil {
		t.Fatal(err)
	}
	second, err := engine.Search("same query", SearchOptions{MaxResults: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("result counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Handle != second[i].Handle || first[i].Distance != second[i].Distance {
			t.Errorf("position %d differs between runs", i)
		}
	}
}
