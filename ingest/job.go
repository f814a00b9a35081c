package ingest

import (
	"context"
	"fmt"
	"log"

	"credcheck/embeddings"
	"credcheck/types"
)

// EvidenceStore describes the store operations the ingestion job needs.
type EvidenceStore interface {
	Has(id string) (bool, error)
	InsertIfAbsent(id, document string, embedding []float32) error
}

// FetchFunc fetches a feed and returns its items in feed order.
type FetchFunc func(feedURL string, maxCount int) ([]types.NewsRecord, error)

// Job runs one feed ingestion cycle: fetch the feed, prepend new items to the
// archive, then embed and insert every archived item the store does not hold
// yet. Ids are `id_<n>` derived from archive position at embedding time, so an
// id already inserted is never re-embedded or overwritten.
type Job struct {
	Store       EvidenceStore
	Embedder    embeddings.Provider
	FeedURL     string
	MaxItems    int
	ArchivePath string
	// Bloom, when non-nil, lets the job skip embedding items whose
	// normalized link+title hash was seen recently. Advisory only.
	Bloom *RedisBloom
	// Fetch defaults to FetchFeed; tests substitute it.
	Fetch FetchFunc
}

// NewJob creates an ingestion job with default feed, archive path, and fetcher.
func NewJob(store EvidenceStore, embedder embeddings.Provider) *Job {
	return &Job{
		Store:       store,
		Embedder:    embedder,
		FeedURL:     ResolveFeedURL(DefaultFeedPreset),
		MaxItems:    DefaultCount,
		ArchivePath: DefaultArchivePath,
		Fetch:       FetchFeed,
	}
}

// Run executes a single ingestion cycle.
func (j *Job) Run(ctx context.Context) error {
	log.Printf("Fetching feed: %s", j.FeedURL)
	fetched, err := j.Fetch(j.FeedURL, j.MaxItems)
	if err != nil {
		return fmt.Errorf("failed to fetch feed: %w", err)
	}
	log.Printf("Fetched %d items from feed", len(fetched))

	existing := LoadArchive(j.ArchivePath)
	updated := Prepend(fetched, existing)
	if err := SaveArchive(j.ArchivePath, updated); err != nil {
		return err
	}
	log.Printf("Archive now holds %d items (%d new)", len(updated), len(fetched))

	added := 0
	skipped := 0
	for i, item := range updated {
		id := fmt.Sprintf("id_%d", i)

		present, err := j.Store.Has(id)
		if err != nil {
			return fmt.Errorf("failed to check store for %s: %w", id, err)
		}
		if present {
			skipped++
			continue
		}

		if j.Bloom != nil {
			hash := NormalizeAndHash(item)
			if seen, err := j.Bloom.Exists(hash); err != nil {
				log.Printf("Warning: bloom check failed: %v", err)
			} else if seen {
				log.Printf("Skipping %s - probable recent duplicate", id)
				skipped++
				continue
			}
		}

		document, err := item.Document()
		if err != nil {
			return err
		}

		vecs, err := j.Embedder.EmbedTexts(ctx, []string{item.EmbeddingText()})
		if err != nil {
			return fmt.Errorf("failed to embed %s: %w", id, err)
		}
		if len(vecs) == 0 || len(vecs[0]) == 0 {
			return fmt.Errorf("%w: empty embedding for %s", embeddings.ErrUnavailable, id)
		}

		if err := j.Store.InsertIfAbsent(id, document, vecs[0]); err != nil {
			return fmt.Errorf("failed to insert %s: %w", id, err)
		}

		if j.Bloom != nil {
			if err := j.Bloom.Add(NormalizeAndHash(item)); err != nil {
				log.Printf("Warning: failed to add %s to bloom filter: %v", id, err)
			}
		}
		added++
	}

	log.Printf("Ingestion complete: %d embedded, %d already present", added, skipped)
	return nil
}
