package vectorstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
)

// ErrStore indicates an underlying persistence failure. Callers surface it
// without retrying.
var ErrStore = errors.New("evidence store failure")

// Chroma wraps the Chroma vector database v2 REST API as the evidence store.
// The collection is created with cosine distance so similarity can be derived
// as 1 - distance; callers never compute distances ad hoc.
type Chroma struct {
	baseURL        string
	tenant         string
	database       string
	collectionName string
	collectionID   string
	httpClient     *http.Client
}

// Config holds configuration for the Chroma connection.
type Config struct {
	Host           string
	Port           int
	CollectionName string
}

// QueryResults represents the response from a similarity query. Indices are
// nested per query embedding, matching the Chroma wire shape.
type QueryResults struct {
	IDs       [][]string  `json:"ids"`
	Distances [][]float32 `json:"distances"`
	Documents [][]string  `json:"documents"`
}

// Entry pairs a stored document with its similarity to the query embedding.
type Entry struct {
	ID         string
	Document   string
	Similarity float32
}

// GetResults represents the response from a get request.
type GetResults struct {
	IDs       []string `json:"ids"`
	Documents []string `json:"documents"`
}

// New creates a Chroma wrapper and resolves (or creates) the collection.
func New(cfg Config) (*Chroma, error) {
	baseURL := fmt.Sprintf("http://%s:%d/api/v2", cfg.Host, cfg.Port)

	store := &Chroma{
		baseURL:        baseURL,
		tenant:         "default_tenant",
		database:       "default_database",
		collectionName: cfg.CollectionName,
		httpClient:     &http.Client{},
	}

	collectionID, err := store.getOrCreateCollection(cfg.CollectionName)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get or create collection: %v", ErrStore, err)
	}

	store.collectionID = collectionID
	return store, nil
}

// getOrCreateCollection gets an existing collection or creates a new one
// configured for cosine distance.
func (c *Chroma) getOrCreateCollection(name string) (string, error) {
	url := fmt.Sprintf("%s/tenants/%s/databases/%s/collections/%s", c.baseURL, c.tenant, c.database, name)
	resp, err := c.httpClient.Get(url)

	if err == nil && resp.StatusCode == http.StatusOK {
		defer resp.Body.Close()
		var result map[string]interface{}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return "", err
		}
		id, ok := result["id"].(string)
		if !ok {
			return "", fmt.Errorf("collection response missing id")
		}
		log.Printf("Using existing collection: %s", name)
		return id, nil
	}
	if resp != nil {
		resp.Body.Close()
	}

	log.Printf("Creating new collection: %s", name)
	createURL := fmt.Sprintf("%s/tenants/%s/databases/%s/collections", c.baseURL, c.tenant, c.database)
	payload := map[string]interface{}{
		"name": name,
		"metadata": map[string]interface{}{
			"hnsw:space": "cosine",
		},
		"get_or_create": true,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	resp, err = c.httpClient.Post(createURL, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create collection: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("failed to create collection (status %d): %s", resp.StatusCode, string(body))
	}

	var result map[string]interface{}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w, body: %s", err, string(body))
	}

	id, ok := result["id"].(string)
	if !ok {
		return "", fmt.Errorf("create collection response missing id")
	}
	return id, nil
}

// collectionURL returns the base URL for collection operations.
func (c *Chroma) collectionURL() string {
	return fmt.Sprintf("%s/tenants/%s/databases/%s/collections/%s", c.baseURL, c.tenant, c.database, c.collectionID)
}

// Has reports whether an entry with the given id is already present.
func (c *Chroma) Has(id string) (bool, error) {
	res, err := c.get([]string{id})
	if err != nil {
		return false, err
	}
	return len(res.IDs) > 0, nil
}

// InsertIfAbsent persists (id, document, embedding) unless the id is already
// present, in which case it is a no-op. Existing entries are never overwritten,
// so repeated runs against the same persisted collection stay idempotent.
func (c *Chroma) InsertIfAbsent(id, document string, embedding []float32) error {
	present, err := c.Has(id)
	if err != nil {
		return err
	}
	if present {
		return nil
	}

	url := fmt.Sprintf("%s/add", c.collectionURL())
	payload := map[string]interface{}{
		"ids":        []string{id},
		"documents":  []string{document},
		"embeddings": [][]float32{embedding},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("%w: failed to add document: %v", ErrStore, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: failed to add document: %s", ErrStore, string(body))
	}

	log.Printf("Added evidence entry with ID: %s", id)
	return nil
}

// Query returns up to topN nearest entries for the embedding, each with its
// cosine similarity (1 - distance). A topN below 1 is clamped to 1.
func (c *Chroma) Query(embedding []float32, topN int) ([]Entry, error) {
	if topN < 1 {
		topN = 1
	}

	url := fmt.Sprintf("%s/query", c.collectionURL())
	payload := map[string]interface{}{
		"query_embeddings": [][]float32{embedding},
		"n_results":        topN,
		"include":          []string{"documents", "distances"},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query collection: %v", ErrStore, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: failed to query collection: %s", ErrStore, string(body))
	}

	var result QueryResults
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	if len(result.IDs) == 0 {
		return nil, nil
	}

	n := len(result.IDs[0])
	if len(result.Documents) > 0 && len(result.Documents[0]) < n {
		n = len(result.Documents[0])
	}
	if len(result.Distances) > 0 && len(result.Distances[0]) < n {
		n = len(result.Distances[0])
	}

	entries := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, Entry{
			ID:         result.IDs[0][i],
			Document:   result.Documents[0][i],
			Similarity: 1 - result.Distances[0][i],
		})
	}
	return entries, nil
}

// get retrieves entries by id.
func (c *Chroma) get(ids []string) (*GetResults, error) {
	url := fmt.Sprintf("%s/get", c.collectionURL())
	payload := map[string]interface{}{
		"ids": ids,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get documents: %v", ErrStore, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: failed to get documents: %s", ErrStore, string(body))
	}

	var result GetResults
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return &result, nil
}

// List returns stored documents with optional pagination. A limit of 0 means
// no limit.
func (c *Chroma) List(limit, offset int) (*GetResults, error) {
	url := fmt.Sprintf("%s/get", c.collectionURL())
	payload := map[string]interface{}{
		"include": []string{"documents"},
	}
	if limit > 0 {
		payload["limit"] = limit
	}
	if offset > 0 {
		payload["offset"] = offset
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list documents: %v", ErrStore, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: failed to list documents: %s", ErrStore, string(body))
	}

	var result GetResults
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return &result, nil
}

// Count returns the number of entries in the collection.
func (c *Chroma) Count() (int, error) {
	url := fmt.Sprintf("%s/count", c.collectionURL())

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to count documents: %v", ErrStore, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("%w: failed to count documents: %s", ErrStore, string(body))
	}

	var count int
	if err := json.NewDecoder(resp.Body).Decode(&count); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return count, nil
}

// Close cleans up the wrapper. The REST client holds no persistent resources;
// this is here for interface compatibility.
func (c *Chroma) Close() error {
	return nil
}
