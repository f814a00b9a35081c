package config

import (
	"os"
	"strconv"
	"time"
)

// Retrieval constants
const (
	// SimilarityThreshold is the cosine-similarity acceptance cutoff for
	// evidence retrieval. Entries scoring below it are discarded outright
	// rather than soft-ranked. The value is empirically chosen; treat it as
	// a tunable constant, do not re-derive it.
	SimilarityThreshold float32 = 0.57

	// DefaultTopN is the number of nearest entries requested from the
	// evidence store when the caller does not specify one.
	DefaultTopN = 3
)

// Response shaping constants
const (
	// PreviewLimit bounds the article and snippet text included in API
	// responses. Scoring always uses the full text.
	PreviewLimit = 1000
)

// Outbound request constants
const (
	// RequestTimeout bounds every call to the embedding and LLM APIs.
	RequestTimeout = 60 * time.Second
)

// GetEnvOrDefault returns the value of an environment variable or a default value.
func GetEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// GetEnvIntOrDefault returns an integer environment variable or a default value.
func GetEnvIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}
