package types

import (
	"encoding/json"
	"fmt"
)

// NewsRecord represents a single ingested feed item. PubDate keeps the
// feed-native timestamp string and is never reparsed.
type NewsRecord struct {
	Title   string `json:"title"`
	Link    string `json:"link,omitempty"`
	PubDate string `json:"pubDate"`
	Source  string `json:"source"`
}

// Document serializes the record as a self-contained JSON string. The stored
// document must round-trip back to the original fields so reference links can
// be recovered later.
func (n NewsRecord) Document() (string, error) {
	b, err := json.Marshal(n)
	if err != nil {
		return "", fmt.Errorf("failed to serialize news record: %w", err)
	}
	return string(b), nil
}

// EmbeddingText returns the canonical textual rendering used for embedding.
func (n NewsRecord) EmbeddingText() string {
	return fmt.Sprintf("Title: %s. Source: %s. Published: %s", n.Title, n.Source, n.PubDate)
}

// CredibilityResult is one response to one credibility check. It is built
// fresh per request and never persisted.
type CredibilityResult struct {
	Article   string   `json:"article"`
	Snippets  string   `json:"snippets"`
	Score     *int     `json:"score"`
	Reason    string   `json:"reason"`
	URL       string   `json:"url"`
	Documents []string `json:"documents"`
	Links     []string `json:"links,omitempty"`
}
