package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// CheckResult mirrors the credibility API's check response.
type CheckResult struct {
	Article   string   `json:"article"`
	Snippets  string   `json:"snippets"`
	Score     *int     `json:"score"`
	Reason    string   `json:"reason"`
	URL       string   `json:"url"`
	Documents []string `json:"documents"`
	Links     []string `json:"links,omitempty"`
}

// APIClient is a thin HTTP client for the credibility API
type APIClient struct {
	baseURL string
	client  *http.Client
}

// NewAPIClient creates a new credibility API client. Checks can take a while
// (extraction plus a model round trip), so the timeout is generous.
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 90 * time.Second,
		},
	}
}

// Check submits a URL for a credibility check
func (c *APIClient) Check(url string) (*CheckResult, error) {
	payload, err := json.Marshal(map[string]string{"url": url})
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Post(c.baseURL+"/api/check", "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to reach server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		var msg struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &msg) == nil && msg.Message != "" {
			return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, msg.Message)
		}
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	var result CheckResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

// EvidenceCount fetches the number of documents in the evidence store
func (c *APIClient) EvidenceCount() (int, error) {
	resp, err := c.client.Get(c.baseURL + "/api/evidence/count")
	if err != nil {
		return 0, fmt.Errorf("failed to get evidence count: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}

	return result.Count, nil
}
