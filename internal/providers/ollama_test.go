package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOllama_Invoke(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("Expected no Authorization header for keyless Ollama")
		}

		resp := openaiResponse{
			Choices: []openaiChoice{
				{Message: openaiMessage{Role: "assistant", Content: "local feedback"}},
			},
			Usage: openaiUsage{TotalTokens: 100},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	o := &Ollama{model: "llama3.1", baseURL: server.URL, client: server.Client()}

	resp, err := o.Invoke(context.Background(), Request{Prompt: "test", MaxTokens: 10})
	if err != nil {
		t.Fatalf("Invoke error: %v", err)
	}
	if resp.Content != "local feedback" {
		t.Errorf("Content = %q, want %q", resp.Content, "local feedback")
	}
	if resp.TokensUsed != 100 {
		t.Errorf("TokensUsed = %d, want 100", resp.TokensUsed)
	}
}

func TestOllama_InvokeWithAPIKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-ollama-key" {
			t.Error("Missing or wrong Authorization header")
		}
		json.NewEncoder(w).Encode(openaiResponse{
			Choices: []openaiChoice{{Message: openaiMessage{Role: "assistant", Content: "ok"}}},
		})
	}))
	defer server.Close()

	o := &Ollama{apiKey: "test-ollama-key", model: "llama3.1", baseURL: server.URL, client: server.Client()}

	if _, err := o.Invoke(context.Background(), Request{Prompt: "test"}); err != nil {
		t.Fatalf("Invoke error: %v", err)
	}
}

func TestOllama_ServerError(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(500)
		w.Write([]byte(`{"error":"internal server error"}`))
	}))
	defer server.Close()

	o := &Ollama{model: "llama3.1", baseURL: server.URL, client: server.Client()}

	if _, err := o.Invoke(context.Background(), Request{Prompt: "test"}); err == nil {
		t.Fatal("Expected error for server error response")
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", attempts)
	}
}

func TestOllama_Name(t *testing.T) {
	o := &Ollama{}
	if o.Name() != "ollama" {
		t.Errorf("Name() = %q, want %q", o.Name(), "ollama")
	}
}

func TestNewOllama_URLNormalization(t *testing.T) {
	tests := []struct {
		name    string
		host    string
		wantURL string
	}{
		{"default", "", "http://localhost:11434/v1/chat/completions"},
		{"trailing slash", "http://localhost:11434/", "http://localhost:11434/v1/chat/completions"},
		{"with v1", "http://localhost:11434/v1", "http://localhost:11434/v1/chat/completions"},
		{"with full path", "http://localhost:11434/v1/chat/completions", "http://localhost:11434/v1/chat/completions"},
		{"custom host", "http://192.168.1.100:11434", "http://192.168.1.100:11434/v1/chat/completions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OLLAMA_HOST", tt.host)
			t.Setenv("MENTOR_OLLAMA_API_KEY", "")

			o, err := NewOllama("llama3.1", &http.Client{})
			if err != nil {
				t.Fatalf("NewOllama error: %v", err)
			}
			if o.baseURL != tt.wantURL {
				t.Errorf("baseURL = %q, want %q", o.baseURL, tt.wantURL)
			}
		})
	}
}
