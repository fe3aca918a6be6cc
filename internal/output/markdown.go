package output

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

const defaultWordWrap = 100

// MarkdownFormatter renders the reply's Markdown for a terminal.
type MarkdownFormatter struct {
	WordWrap int
	Style    string
}

func (m *MarkdownFormatter) Format(raw string) (string, error) {
	wrap := m.WordWrap
	if wrap <= 0 {
		wrap = defaultWordWrap
	}

	styleOpt := glamour.WithAutoStyle()
	if m.Style != "" && m.Style != "auto" {
		styleOpt = glamour.WithStandardStyle(m.Style)
	}

	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(wrap))
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(raw)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
