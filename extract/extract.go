package extract

import (
	"errors"
	"fmt"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
)

// ErrExtractionFailed indicates that no usable article text could be produced
// for a URL, either because the fetch failed or the page had no readable body.
var ErrExtractionFailed = errors.New("article extraction failed")

const fetchTimeout = 30 * time.Second

// Extractor resolves a URL into cleaned article text.
type Extractor interface {
	Extract(url string) (string, error)
}

// ReadabilityExtractor extracts article text using go-readability.
type ReadabilityExtractor struct {
	Timeout time.Duration
}

// NewReadabilityExtractor creates an extractor with the default fetch timeout.
func NewReadabilityExtractor() *ReadabilityExtractor {
	return &ReadabilityExtractor{Timeout: fetchTimeout}
}

// Extract fetches the URL and returns the trimmed readable text content.
func (e *ReadabilityExtractor) Extract(url string) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", fmt.Errorf("%w: empty URL", ErrExtractionFailed)
	}

	article, err := readability.FromURL(url, e.Timeout)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return "", fmt.Errorf("%w: no readable content at %s", ErrExtractionFailed, url)
	}
	return text, nil
}
