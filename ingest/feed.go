package ingest

import (
	"fmt"
	"strings"

	"credcheck/types"

	"github.com/mmcdole/gofeed"
)

// Default configuration values
const (
	DefaultFeedPreset = "gn"
	DefaultCount      = 50
)

// FeedPresets maps friendly names to RSS feed URLs
var FeedPresets = map[string]string{
	"gn":  "https://news.google.com/rss",
	"cna": "https://www.channelnewsasia.com/api/v1/rss-outbound-feed?_format=xml",
	"st":  "https://www.straitstimes.com/news/singapore/rss.xml",
	"hn":  "https://hnrss.org/newest",
}

// ResolveFeedURL resolves a feed identifier to a URL
// If the input is a preset name, returns the corresponding URL
// Otherwise, returns the input as-is (assuming it's a direct URL)
func ResolveFeedURL(feedInput string) string {
	if url, exists := FeedPresets[feedInput]; exists {
		return url
	}
	return feedInput
}

// FetchFeed retrieves and parses an RSS/Atom feed, returning news records in
// feed order. The pubDate string is kept exactly as the feed delivered it.
func FetchFeed(feedURL string, maxCount int) ([]types.NewsRecord, error) {
	parser := gofeed.NewParser()
	feed, err := parser.ParseURL(feedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	count := len(feed.Items)
	if maxCount > 0 && count > maxCount {
		count = maxCount
	}

	records := make([]types.NewsRecord, 0, count)
	for i := 0; i < count; i++ {
		item := feed.Items[i]
		records = append(records, types.NewsRecord{
			Title:   item.Title,
			Link:    item.Link,
			PubDate: item.Published,
			Source:  itemSource(item, feed.Title),
		})
	}
	return records, nil
}

// itemSource resolves the publisher name for a feed item. Google News titles
// carry the publisher as a " - Publisher" suffix; other feeds fall back to the
// feed title.
func itemSource(item *gofeed.Item, feedTitle string) string {
	if custom, ok := item.Custom["source"]; ok && custom != "" {
		return custom
	}
	if idx := strings.LastIndex(item.Title, " - "); idx > 0 {
		return strings.TrimSpace(item.Title[idx+3:])
	}
	return feedTitle
}
