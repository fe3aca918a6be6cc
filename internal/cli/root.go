package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dshills/mentor/internal/config"
	"github.com/dshills/mentor/internal/feedback"
	"github.com/dshills/mentor/internal/output"
)

const version = "0.1.0"

// Exit codes
const (
	ExitSuccess      = 0
	ExitUsageError   = 2
	ExitAuthError    = 3
	ExitRuntimeError = 4
)

// Global flags
var (
	flagProvider string
	flagModel    string
	flagFormat   string
	flagOut      string
	flagLogLevel string
	flagEnvFile  string
)

var errorColor = color.New(color.FgRed)

var rootCmd = &cobra.Command{
	Use:   "mentor",
	Short: "Turn terse code review comments into mentoring feedback",
	Long: `Mentor sends a code snippet and its review comments to a language model and
prints an empathetic rephrasing of each comment, the principle behind it and a
suggested improvement.

Run without arguments to see the built-in example.`,
	Args:          cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadDotEnv(flagEnvFile)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ex := feedback.Example()
		runFeedback(cmd.Context(), ex.Code, ex.Comments)
		return nil
	},
}

// Run executes the root command and returns an exit code.
func Run() int {
	exitCode = ExitSuccess

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}

	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

// fail reports err on stderr and records the matching exit code.
func fail(err error, code int) {
	errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
	exitCode = code
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print mentor version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "mentor version %s\n", version)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagProvider, "provider", "", "LLM provider (huggingface, anthropic, openai, gemini, ollama)")
	pf.StringVar(&flagModel, "model", "", "Model name")
	pf.StringVar(&flagFormat, "format", "", "Output format ("+strings.Join(output.Formats(), ", ")+")")
	pf.StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&flagEnvFile, "env-file", ".env", "Dotenv file loaded before configuration")

	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(versionCmd)
}
