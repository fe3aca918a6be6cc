package feedback

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed prompts/feedback.prompt
var feedbackPrompt string

// promptData is the substitution set for the feedback template. Both
// fields are always present so no placeholder can survive rendering.
type promptData struct {
	CodeSnippet    string
	ReviewComments string
}

func parseTemplate() (*template.Template, error) {
	tmpl, err := template.New("feedback").Option("missingkey=error").Parse(feedbackPrompt)
	if err != nil {
		return nil, fmt.Errorf("parsing feedback template: %w", err)
	}
	return tmpl, nil
}

func render(tmpl *template.Template, data promptData) (string, error) {
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("rendering feedback template: %w", err)
	}
	return b.String(), nil
}

// JoinComments joins review comments into the single newline-separated block
// the template expects. An empty list yields an empty string.
func JoinComments(comments []string) string {
	return strings.Join(comments, "\n")
}
