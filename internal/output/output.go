package output

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Formatter turns the raw model reply into its presentation form.
type Formatter interface {
	Format(raw string) (string, error)
}

// Meta carries run details some formatters embed or depend on.
type Meta struct {
	Tool     string
	Version  string
	Provider string
	Model    string
	WordWrap int
	// Style is a glamour style name; empty or "auto" detects the terminal.
	Style string
}

// Formats lists the accepted format names.
func Formats() []string {
	return []string{"markdown", "text", "json"}
}

// GetFormatter returns a formatter for the specified format.
func GetFormatter(format string, meta Meta) (Formatter, error) {
	switch strings.ToLower(format) {
	case "text":
		return TextFormatter{}, nil
	case "markdown", "md":
		return &MarkdownFormatter{WordWrap: meta.WordWrap, Style: meta.Style}, nil
	case "json":
		return &JSONFormatter{Meta: meta}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// Write writes s to w, adding a trailing newline when s lacks one.
func Write(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if !strings.HasSuffix(s, "\n") {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	return nil
}

// WriteTo writes s to the file at outPath, or to stdout when outPath is empty.
func WriteTo(outPath, s string) error {
	if outPath == "" {
		return Write(os.Stdout, s)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := Write(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
