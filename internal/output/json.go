package output

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Envelope is the JSON document emitted by the json format.
type Envelope struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	RunID     string `json:"runId"`
	Provider  string `json:"provider,omitempty"`
	Model     string `json:"model,omitempty"`
	CreatedAt string `json:"createdAt"`
	Feedback  string `json:"feedback"`
}

// JSONFormatter wraps the reply in an [Envelope].
type JSONFormatter struct {
	Meta Meta
	// now is swapped in tests.
	now func() time.Time
}

func (j *JSONFormatter) Format(raw string) (string, error) {
	now := time.Now
	if j.now != nil {
		now = j.now
	}

	tool := j.Meta.Tool
	if tool == "" {
		tool = "mentor"
	}

	env := Envelope{
		Tool:      tool,
		Version:   j.Meta.Version,
		RunID:     uuid.NewString(),
		Provider:  j.Meta.Provider,
		Model:     j.Meta.Model,
		CreatedAt: now().UTC().Format(time.RFC3339),
		Feedback:  raw,
	}

	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return string(data), nil
}
