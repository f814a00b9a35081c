package ingest

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"credcheck/types"
)

// DefaultArchivePath is the durable feed item archive, a single JSON document
// rewritten in full on every run.
const DefaultArchivePath = "newsarchive.json"

// LoadArchive reads the persisted item list. A missing or unreadable archive
// yields an empty list rather than an error so a fresh deployment starts
// clean.
func LoadArchive(path string) []types.NewsRecord {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var items []types.NewsRecord
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("Warning: archive %s is corrupt, starting fresh: %v", path, err)
		return nil
	}
	return items
}

// SaveArchive rewrites the archive document with the full item list.
func SaveArchive(path string, items []types.NewsRecord) error {
	data, err := json.MarshalIndent(items, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode archive: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}
	return nil
}

// Prepend places freshly fetched items ahead of the existing archive,
// most-recent-first. Items are not content-deduplicated here; identity is the
// position-derived id assigned at embedding time.
func Prepend(fetched, existing []types.NewsRecord) []types.NewsRecord {
	updated := make([]types.NewsRecord, 0, len(fetched)+len(existing))
	updated = append(updated, fetched...)
	updated = append(updated, existing...)
	return updated
}
