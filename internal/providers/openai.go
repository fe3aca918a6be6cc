package providers

import (
	"context"
	"errors"
	"net/http"
	"os"
)

const defaultOpenAIURL = "https://api.openai.com/v1/chat/completions"

// OpenAI calls an OpenAI-compatible chat completions endpoint.
type OpenAI struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewOpenAI creates an OpenAI backend. OPENAI_API_KEY must be set;
// MENTOR_OPENAI_BASE_URL overrides the endpoint.
func NewOpenAI(model string, client *http.Client) (*OpenAI, error) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil, &authError{message: "OPENAI_API_KEY environment variable is not set"}
	}
	baseURL := os.Getenv("MENTOR_OPENAI_BASE_URL")
	if baseURL == "" {
		baseURL = defaultOpenAIURL
	}
	return &OpenAI{apiKey: key, model: model, baseURL: baseURL, client: client}, nil
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Invoke(ctx context.Context, req Request) (Result, error) {
	headers := map[string]string{"Authorization": "Bearer " + o.apiKey}
	return chatCompletion(ctx, o.client, o.baseURL, headers, o.model, req)
}

// chatCompletion is shared by every backend speaking the chat completions dialect.
func chatCompletion(ctx context.Context, client *http.Client, url string, headers map[string]string, model string, req Request) (Result, error) {
	body := openaiRequest{
		Model:     model,
		Messages:  []openaiMessage{{Role: "user", Content: req.Prompt}},
		MaxTokens: maxTokensOrDefault(req.MaxTokens),
	}
	if req.Temperature > 0 {
		body.Temperature = &req.Temperature
	}

	var result openaiResponse
	if err := postJSON(ctx, client, url, headers, body, &result); err != nil {
		return Result{}, err
	}

	if len(result.Choices) == 0 {
		return Result{}, errors.New("no choices in response")
	}
	if result.Choices[0].Message.Content == "" {
		return Result{}, errEmptyContent
	}

	return Result{
		Content:    result.Choices[0].Message.Content,
		TokensUsed: result.Usage.TotalTokens,
	}, nil
}

type openaiRequest struct {
	Model       string          `json:"model"`
	Messages    []openaiMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature *float64        `json:"temperature,omitempty"`
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiResponse struct {
	Choices []openaiChoice `json:"choices"`
	Usage   openaiUsage    `json:"usage"`
}

type openaiChoice struct {
	Message openaiMessage `json:"message"`
}

type openaiUsage struct {
	TotalTokens int `json:"total_tokens"`
}
