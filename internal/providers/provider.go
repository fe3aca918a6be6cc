package providers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Request is the prompt handed to a model.
type Request struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Result is the model's reply. Content is always non-empty on success.
type Result struct {
	Content    string
	TokensUsed int
}

// Model is a remote text-generation capability.
//
//go:generate mockgen -destination=../../mocks/mock_model.go -package=mocks . Model
type Model interface {
	Invoke(ctx context.Context, req Request) (Result, error)
	Name() string
}

// Options selects and configures a backend.
type Options struct {
	Provider string
	Model    string
	// Task and InferenceProvider only apply to huggingface. Empty values mean
	// text-generation and hf-inference.
	Task              string
	InferenceProvider string
	// TimeoutSeconds of 0 leaves the HTTP client without a timeout.
	TimeoutSeconds int
}

// defaultModels holds the model used when none is configured.
var defaultModels = map[string]string{
	"huggingface": defaultHuggingFaceModel,
	"anthropic":   "claude-sonnet-4-6",
	"openai":      "gpt-4.1-mini",
	"gemini":      "gemini-2.5-flash",
	"ollama":      "llama3.1",
}

// aliases maps accepted provider names onto their canonical form.
var aliases = map[string]string{
	"huggingface": "huggingface",
	"hf":          "huggingface",
	"anthropic":   "anthropic",
	"openai":      "openai",
	"gemini":      "gemini",
	"google":      "gemini",
	"ollama":      "ollama",
	"lmstudio":    "ollama",
}

// Canonical returns the canonical name for provider and whether it is known.
func Canonical(provider string) (string, bool) {
	name, ok := aliases[strings.ToLower(provider)]
	return name, ok
}

// Names lists the canonical provider names.
func Names() []string {
	return []string{"huggingface", "anthropic", "openai", "gemini", "ollama"}
}

// DefaultModel returns the model used for provider when none is configured,
// or "" for an unknown provider.
func DefaultModel(provider string) string {
	name, _ := Canonical(provider)
	return defaultModels[name]
}

// New creates a model backend by provider name. An empty model selects the
// provider's default.
func New(opts Options) (Model, error) {
	name, ok := Canonical(opts.Provider)
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", opts.Provider)
	}
	model := opts.Model
	if model == "" {
		model = defaultModels[name]
	}
	client := newHTTPClient(opts.TimeoutSeconds)

	switch name {
	case "huggingface":
		return NewHuggingFace(model, opts.Task, opts.InferenceProvider, client)
	case "anthropic":
		return NewAnthropic(model, client)
	case "openai":
		return NewOpenAI(model, client)
	case "gemini":
		return NewGemini(model, client)
	default:
		return NewOllama(model, client)
	}
}

func newHTTPClient(timeoutSeconds int) *http.Client {
	if timeoutSeconds <= 0 {
		return &http.Client{}
	}
	return &http.Client{Timeout: time.Duration(timeoutSeconds) * time.Second}
}

const defaultMaxTokens = 2048

func maxTokensOrDefault(n int) int {
	if n <= 0 {
		return defaultMaxTokens
	}
	return n
}
