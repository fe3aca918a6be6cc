package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dshills/mentor/internal/config"
	"github.com/dshills/mentor/internal/feedback"
	"github.com/dshills/mentor/internal/logger"
	"github.com/dshills/mentor/internal/output"
	"github.com/dshills/mentor/internal/providers"
)

// Review flags
var (
	flagFile     string
	flagSnippet  string
	flagComments []string
	flagDryRun   bool
)

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagProvider != "" {
		m["provider"] = flagProvider
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagLogLevel != "" {
		m["log.level"] = flagLogLevel
	}
	return m
}

// reviewInput assembles the input from --file, or from --snippet and --comment.
func reviewInput() (feedback.Input, error) {
	if flagFile != "" {
		if flagSnippet != "" || len(flagComments) > 0 {
			return feedback.Input{}, errors.New("--file cannot be combined with --snippet or --comment")
		}
		return feedback.LoadInput(flagFile)
	}
	if flagSnippet == "" {
		return feedback.Input{}, errors.New("either --file or --snippet is required")
	}

	var (
		data []byte
		err  error
	)
	if flagSnippet == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(flagSnippet)
	}
	if err != nil {
		return feedback.Input{}, fmt.Errorf("reading snippet: %w", err)
	}
	return feedback.Input{Code: string(data), Comments: flagComments}, nil
}

// modelOptions resolves the backend options for cfg, filling in the
// provider's default model when none is configured.
func modelOptions(cfg config.Config) providers.Options {
	model := cfg.Model
	if model == "" {
		model = providers.DefaultModel(cfg.Provider)
	}
	return providers.Options{
		Provider:          cfg.Provider,
		Model:             model,
		Task:              cfg.Task,
		InferenceProvider: cfg.HuggingFaceProvider,
		TimeoutSeconds:    cfg.TimeoutSeconds,
	}
}

// newGenerator builds the model backend and generator for cfg.
func newGenerator(cfg config.Config, log zerolog.Logger) (*feedback.Generator, error) {
	model, err := providers.New(modelOptions(cfg))
	if err != nil {
		return nil, err
	}
	return feedback.New(model,
		feedback.WithLogger(log),
		feedback.WithMaxTokens(cfg.MaxTokens),
		feedback.WithTemperature(cfg.Temperature),
		feedback.WithRedaction(cfg.Privacy.RedactSecrets),
	)
}

// runFeedback performs one feedback round trip and writes the formatted reply.
// Failures are reported on stderr and recorded in exitCode.
func runFeedback(ctx context.Context, code string, comments []string) {
	cfg, err := config.Load(buildOverrides())
	if err != nil {
		fail(err, ExitUsageError)
		return
	}
	log := logger.New(cfg.Log, os.Stderr)

	opts := modelOptions(cfg)
	formatter, err := output.GetFormatter(cfg.Format, output.Meta{
		Tool:     "mentor",
		Version:  version,
		Provider: opts.Provider,
		Model:    opts.Model,
		WordWrap: cfg.WordWrap,
		Style:    cfg.Style,
	})
	if err != nil {
		fail(err, ExitUsageError)
		return
	}

	gen, err := newGenerator(cfg, log)
	if err != nil {
		failModel(err)
		return
	}

	raw, err := gen.GenerateFeedback(ctx, code, feedback.JoinComments(comments))
	if err != nil {
		failModel(err)
		return
	}

	formatted, err := formatter.Format(raw)
	if err != nil {
		fail(err, ExitRuntimeError)
		return
	}

	if err := output.WriteTo(flagOut, formatted); err != nil {
		fail(fmt.Errorf("writing output: %w", err), ExitRuntimeError)
	}
}

// failModel maps a provider error to its exit code.
func failModel(err error) {
	if providers.IsAuthError(err) {
		fail(err, ExitAuthError)
		return
	}
	fail(err, ExitRuntimeError)
}

// runDryRun writes the assembled prompt without contacting a model.
func runDryRun(code string, comments []string) {
	cfg, err := config.Load(buildOverrides())
	if err != nil {
		fail(err, ExitUsageError)
		return
	}

	gen, err := feedback.New(nil,
		feedback.WithLogger(logger.New(cfg.Log, os.Stderr)),
		feedback.WithRedaction(cfg.Privacy.RedactSecrets),
	)
	if err != nil {
		fail(err, ExitRuntimeError)
		return
	}
	prompt, err := gen.BuildPrompt(code, feedback.JoinComments(comments))
	if err != nil {
		fail(err, ExitRuntimeError)
		return
	}
	if err := output.WriteTo(flagOut, prompt); err != nil {
		fail(fmt.Errorf("writing output: %w", err), ExitRuntimeError)
	}
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Generate mentoring feedback for a snippet and its review comments",
	Long: `Generate mentoring feedback for a code snippet and the review comments left on it.

Input comes either from a YAML file:

  code: |
    x = 1
  comments:
    - rename x

or from --snippet (a file path, or - for stdin) with one --comment per remark.`,
	Example: `  mentor review --file review.yaml
  mentor review --snippet main.py --comment "Variable 'u' is a bad name."
  cat main.py | mentor review --snippet - --comment "rename x" --format text
  mentor review --file review.yaml --dry-run`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := reviewInput()
		if err != nil {
			return err
		}
		if flagDryRun {
			runDryRun(in.Code, in.Comments)
			return nil
		}
		runFeedback(cmd.Context(), in.Code, in.Comments)
		return nil
	},
}

func init() {
	reviewCmd.Flags().StringVarP(&flagFile, "file", "f", "", "YAML input file with code and comments (- for stdin)")
	reviewCmd.Flags().StringVar(&flagSnippet, "snippet", "", "Code snippet file (- for stdin)")
	reviewCmd.Flags().StringArrayVarP(&flagComments, "comment", "c", nil, "Review comment (repeatable)")
	reviewCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print the prompt instead of calling the model")
}
