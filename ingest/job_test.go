package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"

	"credcheck/types"
)

type fakeJobStore struct {
	docs     map[string]string
	inserted []string
}

func newFakeJobStore() *fakeJobStore {
	return &fakeJobStore{docs: make(map[string]string)}
}

func (f *fakeJobStore) Has(id string) (bool, error) {
	_, ok := f.docs[id]
	return ok, nil
}

func (f *fakeJobStore) InsertIfAbsent(id, document string, embedding []float32) error {
	if _, ok := f.docs[id]; ok {
		return nil
	}
	f.docs[id] = document
	f.inserted = append(f.inserted, id)
	return nil
}

type countingEmbedder struct {
	calls int
}

func (e *countingEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	e.calls += len(texts)
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{0.1, 0.2, 0.3}
	}
	return out, nil
}

func (e *countingEmbedder) ModelName() string { return "fake-test-model" }

func fixedFetch(items []types.NewsRecord) FetchFunc {
	return func(feedURL string, maxCount int) ([]types.NewsRecord, error) {
		if maxCount > 0 && len(items) > maxCount {
			return items[:maxCount], nil
		}
		return items, nil
	}
}

func makeRecords(n int, prefix string) []types.NewsRecord {
	records := make([]types.NewsRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, types.NewsRecord{
			Title:   fmt.Sprintf("%s story %d", prefix, i),
			Link:    fmt.Sprintf("https://example.com/%s/%d", prefix, i),
			PubDate: "Mon, 02 Jun 2025 10:00:00 GMT",
			Source:  "Example",
		})
	}
	return records
}

func TestJobEmbedsAndInsertsAllItems(t *testing.T) {
	store := newFakeJobStore()
	embedder := &countingEmbedder{}

	job := NewJob(store, embedder)
	job.ArchivePath = filepath.Join(t.TempDir(), "archive.json")
	job.Fetch = fixedFetch(makeRecords(3, "run1"))

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(store.docs) != 3 {
		t.Fatalf("expected 3 stored documents, got %d", len(store.docs))
	}
	for i := 0; i < 3; i++ {
		id := fmt.Sprintf("id_%d", i)
		doc, ok := store.docs[id]
		if !ok {
			t.Fatalf("missing document %s", id)
		}
		var record types.NewsRecord
		if err := json.Unmarshal([]byte(doc), &record); err != nil {
			t.Fatalf("stored document %s is not valid JSON: %v", id, err)
		}
		if record.Link == "" {
			t.Fatalf("stored document %s lost its link", id)
		}
	}
	if embedder.calls != 3 {
		t.Fatalf("expected 3 embedding calls, got %d", embedder.calls)
	}
}

func TestJobSecondRunSkipsExistingIds(t *testing.T) {
	store := newFakeJobStore()
	embedder := &countingEmbedder{}
	archivePath := filepath.Join(t.TempDir(), "archive.json")

	first := NewJob(store, embedder)
	first.ArchivePath = archivePath
	first.Fetch = fixedFetch(makeRecords(2, "run1"))
	if err := first.Run(context.Background()); err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	second := NewJob(store, embedder)
	second.ArchivePath = archivePath
	second.Fetch = fixedFetch(makeRecords(2, "run2"))
	if err := second.Run(context.Background()); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	// Second run prepends 2 new items: archive holds 4, ids id_0..id_3.
	// id_0 and id_1 already exist so only the two fresh positions embed.
	if len(store.docs) != 4 {
		t.Fatalf("expected 4 stored documents, got %d", len(store.docs))
	}
	if embedder.calls != 4 {
		t.Fatalf("expected 4 total embedding calls, got %d", embedder.calls)
	}

	// Positional ids mean id_0 now logically belongs to a run2 item, but the
	// run1 document inserted first stays; insertion is idempotent per id.
	var record types.NewsRecord
	if err := json.Unmarshal([]byte(store.docs["id_0"]), &record); err != nil {
		t.Fatalf("failed to decode id_0: %v", err)
	}
	if record.Title != "run1 story 0" {
		t.Fatalf("id_0 must keep its first-inserted document, got %q", record.Title)
	}

	archived := LoadArchive(archivePath)
	if len(archived) != 4 {
		t.Fatalf("expected archive of 4 items, got %d", len(archived))
	}
	if archived[0].Title != "run2 story 0" {
		t.Fatalf("archive must be most-recent-first, got %q at head", archived[0].Title)
	}
}

func TestJobRespectsMaxItems(t *testing.T) {
	store := newFakeJobStore()
	embedder := &countingEmbedder{}

	job := NewJob(store, embedder)
	job.ArchivePath = filepath.Join(t.TempDir(), "archive.json")
	job.MaxItems = 2
	job.Fetch = fixedFetch(makeRecords(5, "run1"))

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(store.docs) != 2 {
		t.Fatalf("expected 2 stored documents, got %d", len(store.docs))
	}
}
