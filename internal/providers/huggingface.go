package providers

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/huggingface"
)

const (
	defaultHuggingFaceModel    = "meta-llama/Llama-3.1-8B-Instruct"
	defaultHuggingFaceProvider = "hf-inference"
	taskTextGeneration         = "text-generation"
)

// HuggingFace calls Hugging Face's chat-completions router through langchaingo.
type HuggingFace struct {
	llm      llms.Model
	model    string
	provider string
	client   *http.Client
}

// NewHuggingFace creates a Hugging Face backend. The token comes from
// HUGGINGFACEHUB_API_TOKEN or HF_TOKEN; MENTOR_HUGGINGFACE_URL overrides the
// endpoint. inferenceProvider picks the router backend and defaults to
// hf-inference. Only the text-generation task is supported.
func NewHuggingFace(model, task, inferenceProvider string, client *http.Client) (*HuggingFace, error) {
	if task != "" && task != taskTextGeneration {
		return nil, fmt.Errorf("unsupported huggingface task: %s", task)
	}
	if model == "" {
		model = defaultHuggingFaceModel
	}
	if inferenceProvider == "" {
		inferenceProvider = defaultHuggingFaceProvider
	}
	if client == nil {
		client = &http.Client{}
	}

	token := os.Getenv("HUGGINGFACEHUB_API_TOKEN")
	if token == "" {
		token = os.Getenv("HF_TOKEN")
	}
	if token == "" {
		return nil, &authError{message: "HUGGINGFACEHUB_API_TOKEN (or HF_TOKEN) environment variable is not set"}
	}

	opts := []huggingface.Option{
		huggingface.WithToken(token),
		huggingface.WithModel(model),
		huggingface.WithInferenceProvider(inferenceProvider),
		huggingface.WithHTTPClient(client),
	}
	if u := os.Getenv("MENTOR_HUGGINGFACE_URL"); u != "" {
		opts = append(opts, huggingface.WithURL(u))
	}

	llm, err := huggingface.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating huggingface client: %w", err)
	}
	return &HuggingFace{llm: llm, model: model, provider: inferenceProvider, client: client}, nil
}

func (h *HuggingFace) Name() string { return "huggingface" }

func (h *HuggingFace) Invoke(ctx context.Context, req Request) (Result, error) {
	callOpts := []llms.CallOption{
		llms.WithModel(h.model),
		llms.WithMaxTokens(maxTokensOrDefault(req.MaxTokens)),
	}
	if req.Temperature > 0 {
		callOpts = append(callOpts, llms.WithTemperature(req.Temperature))
	}

	content, err := llms.GenerateFromSinglePrompt(ctx, h.llm, req.Prompt, callOpts...)
	if err != nil {
		return Result{}, classifyInferenceError(err)
	}
	if strings.TrimSpace(content) == "" {
		return Result{}, errEmptyContent
	}
	return Result{Content: content}, nil
}

// statusPattern matches the status langchaingo appends to its
// unexpected-status error, e.g. "unexpected status code: 401".
var statusPattern = regexp.MustCompile(`unexpected status code: (\d{3})\b`)

// classifyInferenceError maps an HTTP status reported by langchaingo onto the
// package's typed errors. Errors without that status, transport failures
// included, are wrapped untouched.
func classifyInferenceError(err error) error {
	msg := err.Error()
	m := statusPattern.FindStringSubmatch(msg)
	if m == nil {
		return fmt.Errorf("huggingface inference: %w", err)
	}
	code, _ := strconv.Atoi(m[1])
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return &authError{message: msg}
	case code == http.StatusTooManyRequests:
		return &rateLimitError{body: msg}
	case code >= 500:
		return &serverError{statusCode: code, body: msg}
	default:
		return fmt.Errorf("huggingface inference: %w", err)
	}
}
