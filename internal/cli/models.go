package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dshills/mentor/internal/config"
	"github.com/dshills/mentor/internal/providers"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Provider and model management",
}

type modelInfo struct {
	Provider string
	Env      string
	Models   []string
}

var knownModels = []modelInfo{
	{
		Provider: "huggingface",
		Env:      "HUGGINGFACEHUB_API_TOKEN",
		Models: []string{
			"meta-llama/Llama-3.1-8B-Instruct",
			"mistralai/Mistral-7B-Instruct-v0.3",
			"Qwen/Qwen2.5-Coder-32B-Instruct",
			"HuggingFaceH4/zephyr-7b-beta",
		},
	},
	{
		Provider: "anthropic",
		Env:      "ANTHROPIC_API_KEY",
		Models: []string{
			"claude-sonnet-4-6",
			"claude-opus-4-6",
			"claude-haiku-4-5",
		},
	},
	{
		Provider: "openai",
		Env:      "OPENAI_API_KEY",
		Models: []string{
			"gpt-4.1-mini",
			"gpt-5.2",
			"o3-mini",
		},
	},
	{
		Provider: "gemini",
		Env:      "GEMINI_API_KEY",
		Models: []string{
			"gemini-2.5-flash",
			"gemini-2.5-pro",
		},
	},
	{
		Provider: "ollama",
		Env:      "OLLAMA_HOST",
		Models: []string{
			"llama3.1",
			"qwen2.5-coder",
			"codellama",
		},
	},
}

var (
	providerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51"))
	envStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	modelStyle    = lipgloss.NewStyle().PaddingLeft(2)

	okColor   = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
)

func printModels(w io.Writer, models []modelInfo) {
	for _, info := range models {
		fmt.Fprintf(w, "%s %s\n", providerStyle.Render(info.Provider+":"), envStyle.Render("("+info.Env+")"))
		defaultModel := providers.DefaultModel(info.Provider)
		for _, m := range info.Models {
			line := "- " + m
			if m == defaultModel {
				line += " " + envStyle.Render("(default)")
			}
			fmt.Fprintln(w, modelStyle.Render(line))
		}
		fmt.Fprintln(w)
	}
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known providers and models",
	Run: func(cmd *cobra.Command, args []string) {
		printModels(cmd.OutOrStdout(), knownModels)
	},
}

var modelsDoctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Validate provider credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}

		opts := modelOptions(cfg)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Checking %s (%s)...\n", opts.Provider, opts.Model)

		m, err := providers.New(opts)
		if err != nil {
			failColor.Fprint(cmd.ErrOrStderr(), "FAIL: ")
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			if providers.IsAuthError(err) {
				exitCode = ExitAuthError
			} else {
				exitCode = ExitRuntimeError
			}
			return nil
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		_, err = m.Invoke(ctx, providers.Request{
			Prompt:    "Respond with exactly: ok",
			MaxTokens: 10,
		})
		if err != nil {
			failColor.Fprint(cmd.ErrOrStderr(), "FAIL: ")
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			if providers.IsAuthError(err) {
				exitCode = ExitAuthError
			} else {
				exitCode = ExitRuntimeError
			}
			return nil
		}

		okColor.Fprint(out, "OK: ")
		fmt.Fprintf(out, "%s is configured and responding\n", m.Name())
		return nil
	},
}

func init() {
	modelsCmd.AddCommand(modelsListCmd)
	modelsCmd.AddCommand(modelsDoctorCmd)
}
