package types

import (
	"encoding/json"
	"testing"
)

func TestEmbeddingTextCanonicalForm(t *testing.T) {
	record := NewsRecord{
		Title:   "Major event reported",
		Link:    "https://example.com/event",
		PubDate: "Mon, 02 Jun 2025 10:00:00 GMT",
		Source:  "Example News",
	}

	want := "Title: Major event reported. Source: Example News. Published: Mon, 02 Jun 2025 10:00:00 GMT"
	if got := record.EmbeddingText(); got != want {
		t.Fatalf("EmbeddingText() = %q; want %q", got, want)
	}
}

func TestDocumentRoundTripPreservesLink(t *testing.T) {
	record := NewsRecord{
		Title:   "Story",
		Link:    "https://example.com/story",
		PubDate: "Mon, 02 Jun 2025 10:00:00 GMT",
		Source:  "Example",
	}

	doc, err := record.Document()
	if err != nil {
		t.Fatalf("document failed: %v", err)
	}

	var decoded NewsRecord
	if err := json.Unmarshal([]byte(doc), &decoded); err != nil {
		t.Fatalf("stored document must be valid JSON: %v", err)
	}
	if decoded != record {
		t.Fatalf("round trip changed the record: %+v", decoded)
	}
}

func TestDocumentOmitsEmptyLink(t *testing.T) {
	record := NewsRecord{Title: "No link", PubDate: "x", Source: "y"}
	doc, err := record.Document()
	if err != nil {
		t.Fatalf("document failed: %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(doc), &raw); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, present := raw["link"]; present {
		t.Fatal("empty link must be omitted from the document")
	}
}
