package retrieval

import (
	"encoding/json"
	"regexp"
	"strings"
)

var urlPattern = regexp.MustCompile(`https?://[^\s"'<>\)\]\}]+`)

// linkFields are checked in order when a document parses as JSON.
var linkFields = []string{"link", "url", "source"}

// ReferenceLink extracts a reference URL from one evidence document string.
// Structured documents are preferred: a link/url/source field whose value
// starts with http wins. Otherwise the raw text is scanned for the first URL,
// with trailing punctuation stripped. An empty result is expected for many
// documents and is not an error.
func ReferenceLink(document string) string {
	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(document), &parsed); err == nil {
		for _, field := range linkFields {
			value, ok := parsed[field].(string)
			if ok && strings.HasPrefix(value, "http") {
				return value
			}
		}
	}

	match := urlPattern.FindString(document)
	if match == "" {
		return ""
	}
	return strings.TrimRight(match, ".,;)")
}
