package retrieval

import (
	"context"
	"fmt"

	"credcheck/config"
	"credcheck/embeddings"
	"credcheck/vectorstore"
)

// EvidenceStore describes the minimal store functionality required by the
// retriever.
type EvidenceStore interface {
	Query(embedding []float32, topN int) ([]vectorstore.Entry, error)
}

// Retriever turns query text into a small set of relevant evidence documents.
// Implementations may legitimately return zero documents.
type Retriever interface {
	Retrieve(ctx context.Context, queryText string, topN int) ([]string, error)
}

// VectorRetriever retrieves evidence by embedding the query and filtering
// nearest neighbors by a similarity acceptance threshold. The threshold is a
// hard cutoff, not a soft rank: fewer than topN results may survive.
type VectorRetriever struct {
	store     EvidenceStore
	embedder  embeddings.Provider
	threshold float32
}

// NewVectorRetriever creates a retriever. A zero threshold selects the default
// acceptance threshold.
func NewVectorRetriever(store EvidenceStore, embedder embeddings.Provider, threshold float32) *VectorRetriever {
	if threshold == 0 {
		threshold = config.SimilarityThreshold
	}
	return &VectorRetriever{
		store:     store,
		embedder:  embedder,
		threshold: threshold,
	}
}

// Retrieve embeds queryText, queries the store for topN nearest entries, and
// returns the document strings whose similarity meets the acceptance
// threshold, in the order the store returned them.
func (r *VectorRetriever) Retrieve(ctx context.Context, queryText string, topN int) ([]string, error) {
	if topN <= 0 {
		topN = config.DefaultTopN
	}

	vecs, err := r.embedder.EmbedTexts(ctx, []string{queryText})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vecs) == 0 || len(vecs[0]) == 0 {
		return nil, fmt.Errorf("%w: empty query embedding", embeddings.ErrUnavailable)
	}

	entries, err := r.store.Query(vecs[0], topN)
	if err != nil {
		return nil, fmt.Errorf("failed to query evidence store: %w", err)
	}

	docs := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Similarity < r.threshold {
			continue
		}
		docs = append(docs, entry.Document)
	}
	return docs, nil
}

// NoopRetriever always returns no evidence. It backs the direct, non-grounded
// credibility check where the model scores the raw article text.
type NoopRetriever struct{}

// Retrieve implements Retriever and never returns documents.
func (NoopRetriever) Retrieve(ctx context.Context, queryText string, topN int) ([]string, error) {
	return nil, nil
}
