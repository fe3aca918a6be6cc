package providers

import (
	"context"
	"net/http"
	"os"
	"strings"
)

const defaultOllamaURL = "http://localhost:11434"

// Ollama talks to Ollama or LM Studio through their OpenAI-compatible API.
type Ollama struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewOllama creates a local-model backend. No key is required; OLLAMA_HOST
// selects the server and MENTOR_OLLAMA_API_KEY is sent when set.
func NewOllama(model string, client *http.Client) (*Ollama, error) {
	baseURL := os.Getenv("OLLAMA_HOST")
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}

	// Accept host, host/v1 and the full completions path.
	baseURL = strings.TrimRight(baseURL, "/")
	baseURL = strings.TrimSuffix(baseURL, "/v1/chat/completions")
	baseURL = strings.TrimSuffix(baseURL, "/v1")

	return &Ollama{
		apiKey:  os.Getenv("MENTOR_OLLAMA_API_KEY"),
		model:   model,
		baseURL: baseURL + "/v1/chat/completions",
		client:  client,
	}, nil
}

func (o *Ollama) Name() string { return "ollama" }

func (o *Ollama) Invoke(ctx context.Context, req Request) (Result, error) {
	var headers map[string]string
	if o.apiKey != "" {
		headers = map[string]string{"Authorization": "Bearer " + o.apiKey}
	}
	return chatCompletion(ctx, o.client, o.baseURL, headers, o.model, req)
}
