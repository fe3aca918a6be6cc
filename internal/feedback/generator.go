package feedback

import (
	"context"
	"text/template"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/mentor/internal/providers"
	"github.com/dshills/mentor/internal/redact"
)

// Generator turns raw review comments into mentoring feedback using a model.
type Generator struct {
	model       providers.Model
	tmpl        *template.Template
	logger      zerolog.Logger
	maxTokens   int
	temperature float64
	redact      bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for debug tracing of calls.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// WithMaxTokens caps the length of the model's reply.
func WithMaxTokens(n int) Option {
	return func(g *Generator) { g.maxTokens = n }
}

// WithTemperature sets the sampling temperature. Zero keeps the backend default.
func WithTemperature(t float64) Option {
	return func(g *Generator) { g.temperature = t }
}

// WithRedaction scrubs secret-looking values from inputs before they are
// placed in the prompt.
func WithRedaction(enabled bool) Option {
	return func(g *Generator) { g.redact = enabled }
}

// New creates a Generator around model.
func New(model providers.Model, opts ...Option) (*Generator, error) {
	tmpl, err := parseTemplate()
	if err != nil {
		return nil, err
	}
	g := &Generator{
		model:  model,
		tmpl:   tmpl,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// BuildPrompt substitutes the snippet and the already-joined comments into
// the feedback template.
func (g *Generator) BuildPrompt(codeSnippet, reviewComments string) (string, error) {
	if g.redact {
		var n, m int
		codeSnippet, n = redact.Secrets(codeSnippet)
		reviewComments, m = redact.Secrets(reviewComments)
		if n+m > 0 {
			g.logger.Warn().Int("redactions", n+m).Msg("redacted secrets from review input")
		}
	}
	return render(g.tmpl, promptData{
		CodeSnippet:    codeSnippet,
		ReviewComments: reviewComments,
	})
}

// GenerateFeedback builds the prompt and makes a single model call. The
// model's text is returned unmodified, and any model error is returned as is.
func (g *Generator) GenerateFeedback(ctx context.Context, codeSnippet, reviewComments string) (string, error) {
	prompt, err := g.BuildPrompt(codeSnippet, reviewComments)
	if err != nil {
		return "", err
	}

	g.logger.Debug().
		Str("provider", g.model.Name()).
		Int("prompt_bytes", len(prompt)).
		Msg("invoking model")

	start := time.Now()
	resp, err := g.model.Invoke(ctx, providers.Request{
		Prompt:      prompt,
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	})
	if err != nil {
		return "", err
	}

	g.logger.Debug().
		Dur("latency", time.Since(start)).
		Int("tokens", resp.TokensUsed).
		Int("response_bytes", len(resp.Content)).
		Msg("model responded")

	return resp.Content, nil
}
