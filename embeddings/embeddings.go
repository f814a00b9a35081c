package embeddings

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"

	"credcheck/config"
)

// ErrUnavailable indicates the embedding backend could not produce a vector:
// missing credential, network failure, non-success status, or an empty result.
var ErrUnavailable = errors.New("embedding service unavailable")

// Provider abstracts a text->embedding generator.
// Implementations must return one embedding vector per input text.
type Provider interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
	ModelName() string
}

// NewDefaultProvider returns an embeddings provider selected from the
// environment: Cohere when COHERE_API_KEY is set, an OpenAI-compatible HTTP
// endpoint when OPENAI_API_KEY is set, the local Ollama daemon when
// OLLAMA_HOST is set. The returned error names the recognized variables so a
// missing credential fails fast with a configuration message instead of a
// downstream HTTP error.
func NewDefaultProvider(preferredModel string) (Provider, error) {
	if cohereKey := os.Getenv("COHERE_API_KEY"); cohereKey != "" {
		model := preferredModel
		if model == "" || !strings.HasPrefix(model, "embed-") {
			model = "embed-english-v3.0"
		}
		// Force HTTP/1.1 to avoid HTTP/2 protocol errors seen with the Cohere API.
		httpClient := &http.Client{
			Timeout: config.RequestTimeout,
			Transport: &http.Transport{
				TLSNextProto:      make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
				ForceAttemptHTTP2: false,
			},
		}
		client := cohereclient.NewClient(
			cohereclient.WithToken(cohereKey),
			cohereclient.WithHTTPClient(httpClient),
		)
		return &CohereProvider{client: client, model: model}, nil
	}

	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		model := preferredModel
		if model == "" {
			model = "text-embedding-3-small"
		}
		return &OpenAIProvider{
			apiKey:   apiKey,
			model:    model,
			endpoint: os.Getenv("EMBEDDINGS_API_URL"),
		}, nil
	}

	if host := os.Getenv("OLLAMA_HOST"); host != "" {
		model := preferredModel
		if model == "" {
			model = "nomic-embed-text"
		}
		return &OllamaProvider{host: host, model: model}, nil
	}

	return nil, fmt.Errorf("%w: no embeddings provider configured; set COHERE_API_KEY, OPENAI_API_KEY or OLLAMA_HOST (and optionally EMBEDDING_MODEL)", ErrUnavailable)
}

// CohereProvider implements Provider using the Cohere Embed API (v2).
// SDK: github.com/cohere-ai/cohere-go/v2
type CohereProvider struct {
	client *cohereclient.Client
	model  string
}

func (c *CohereProvider) ModelName() string { return c.model }

func (c *CohereProvider) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, config.RequestTimeout)
	defer cancel()

	resp, err := c.client.V2.Embed(
		ctx,
		&cohere.V2EmbedRequest{
			Texts:          texts,
			Model:          c.model,
			InputType:      cohere.EmbedInputTypeSearchDocument,
			EmbeddingTypes: []cohere.EmbeddingType{cohere.EmbeddingTypeFloat},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: cohere embed: %v", ErrUnavailable, err)
	}
	if resp == nil || resp.Embeddings == nil || resp.Embeddings.Float == nil {
		return nil, fmt.Errorf("%w: cohere embed returned no float embeddings", ErrUnavailable)
	}

	floats := resp.Embeddings.Float
	if len(floats) != len(texts) {
		return nil, fmt.Errorf("%w: embedding count mismatch", ErrUnavailable)
	}

	out := make([][]float32, len(floats))
	for i, vec := range floats {
		fv := make([]float32, len(vec))
		for j, v := range vec {
			fv[j] = float32(v)
		}
		out[i] = fv
	}
	return out, nil
}

// OpenAIProvider implements Provider against any OpenAI-compatible embeddings
// endpoint (POST /v1/embeddings with {"input": [...], "model": "..."}).
type OpenAIProvider struct {
	apiKey   string
	model    string
	endpoint string
}

func (o *OpenAIProvider) ModelName() string { return o.model }

func (o *OpenAIProvider) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	endpoint := o.endpoint
	if endpoint == "" {
		endpoint = "https://api.openai.com/v1/embeddings"
	}

	payload := map[string]interface{}{
		"input": texts,
		"model": o.model,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, config.RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", o.apiKey))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var body map[string]interface{}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return nil, fmt.Errorf("%w: embeddings endpoint status %d: %v", ErrUnavailable, resp.StatusCode, body)
	}

	var parsed struct {
		Data []struct {
			Embedding []float64 `json:"embedding"`
			Index     int       `json:"index"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(parsed.Data) != len(texts) {
		return nil, fmt.Errorf("%w: embedding count mismatch", ErrUnavailable)
	}

	out := make([][]float32, len(parsed.Data))
	for i, d := range parsed.Data {
		vec := make([]float32, len(d.Embedding))
		for j, v := range d.Embedding {
			vec[j] = float32(v)
		}
		out[i] = vec
	}
	return out, nil
}

// OllamaProvider implements Provider against a local Ollama daemon
// (POST {host}/api/embed with {"model": "...", "input": [...]}).
type OllamaProvider struct {
	host  string
	model string
}

func (o *OllamaProvider) ModelName() string { return o.model }

func (o *OllamaProvider) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	payload := map[string]interface{}{
		"model": o.model,
		"input": texts,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, config.RequestTimeout)
	defer cancel()

	endpoint := strings.TrimRight(o.host, "/") + "/api/embed"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: ollama embed status %d", ErrUnavailable, resp.StatusCode)
	}

	var parsed struct {
		Embeddings [][]float32 `json:"embeddings"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(parsed.Embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: embedding count mismatch", ErrUnavailable)
	}
	return parsed.Embeddings, nil
}
