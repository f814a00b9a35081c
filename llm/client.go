package llm

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"

	"credcheck/config"
)

// ErrUnavailable indicates the language model API returned a non-success
// status or could not be reached.
var ErrUnavailable = errors.New("language model unavailable")

// Client abstracts a prompt-in, completion-out language model call.
type Client interface {
	Complete(ctx context.Context, prompt string, temperature float64) (string, error)
	ModelName() string
}

// NewDefaultClient returns a client selected from the environment: Mistral
// when MISTRAL_API_KEY is set, Cohere when COHERE_API_KEY is set, the local
// Ollama daemon when OLLAMA_HOST is set. A missing credential fails fast with
// a configuration message naming the recognized variables.
func NewDefaultClient() (Client, error) {
	if apiKey := os.Getenv("MISTRAL_API_KEY"); apiKey != "" {
		return &MistralClient{
			apiKey:   apiKey,
			model:    config.GetEnvOrDefault("MISTRAL_MODEL", "mistral-small-latest"),
			endpoint: os.Getenv("MISTRAL_API_URL"),
		}, nil
	}

	if apiKey := os.Getenv("COHERE_API_KEY"); apiKey != "" {
		// Force HTTP/1.1 to avoid HTTP/2 protocol errors seen with the Cohere API.
		httpClient := &http.Client{
			Timeout: config.RequestTimeout,
			Transport: &http.Transport{
				TLSNextProto:      make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
				ForceAttemptHTTP2: false,
			},
		}
		client := cohereclient.NewClient(
			cohereclient.WithToken(apiKey),
			cohereclient.WithHTTPClient(httpClient),
		)
		return &CohereClient{
			client: client,
			model:  config.GetEnvOrDefault("COHERE_CHAT_MODEL", "command-r"),
		}, nil
	}

	if host := os.Getenv("OLLAMA_HOST"); host != "" {
		return &OllamaClient{
			host:  host,
			model: config.GetEnvOrDefault("OLLAMA_MODEL", "llama3"),
		}, nil
	}

	return nil, fmt.Errorf("%w: no language model configured; set MISTRAL_API_KEY, COHERE_API_KEY or OLLAMA_HOST", ErrUnavailable)
}

// MistralClient calls the Mistral chat completions API (OpenAI-compatible
// request/response shape).
type MistralClient struct {
	apiKey   string
	model    string
	endpoint string
}

func (m *MistralClient) ModelName() string { return m.model }

func (m *MistralClient) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	endpoint := m.endpoint
	if endpoint == "" {
		endpoint = "https://api.mistral.ai/v1/chat/completions"
	}

	payload := map[string]interface{}{
		"model": m.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"temperature": temperature,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, config.RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", m.apiKey))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: response contained no choices", ErrUnavailable)
	}
	return parsed.Choices[0].Message.Content, nil
}

// CohereClient calls the Cohere Chat API.
// SDK: github.com/cohere-ai/cohere-go/v2
type CohereClient struct {
	client *cohereclient.Client
	model  string
}

func (c *CohereClient) ModelName() string { return c.model }

func (c *CohereClient) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, config.RequestTimeout)
	defer cancel()

	resp, err := c.client.Chat(ctx, &cohere.ChatRequest{
		Message:     prompt,
		Model:       &c.model,
		Temperature: &temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: cohere chat: %v", ErrUnavailable, err)
	}
	if resp == nil {
		return "", fmt.Errorf("%w: cohere chat returned empty response", ErrUnavailable)
	}
	return resp.Text, nil
}

// OllamaClient calls a local Ollama daemon (POST {host}/api/generate).
type OllamaClient struct {
	host  string
	model string
}

func (o *OllamaClient) ModelName() string { return o.model }

func (o *OllamaClient) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	payload := map[string]interface{}{
		"model":  o.model,
		"prompt": prompt,
		"stream": false,
		"options": map[string]interface{}{
			"temperature": temperature,
		},
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, config.RequestTimeout)
	defer cancel()

	endpoint := strings.TrimRight(o.host, "/") + "/api/generate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: ollama status %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}

	var parsed struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return parsed.Response, nil
}
