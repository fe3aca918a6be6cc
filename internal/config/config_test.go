package config

import (
	"os"
	"path/filepath"
	"testing"
)

// isolate points the config dir at a temp dir and clears MENTOR_* variables.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, env := range envBindings {
		t.Setenv(env, "")
		os.Unsetenv(env)
	}
	return dir
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Provider != "huggingface" {
		t.Errorf("Default provider = %q, want %q", cfg.Provider, "huggingface")
	}
	if cfg.Model != "" {
		t.Errorf("Default model = %q, want empty so the provider default applies", cfg.Model)
	}
	if cfg.HuggingFaceProvider != "hf-inference" {
		t.Errorf("Default huggingfaceProvider = %q, want %q", cfg.HuggingFaceProvider, "hf-inference")
	}
	if cfg.Style != "auto" {
		t.Errorf("Default style = %q, want %q", cfg.Style, "auto")
	}
	if cfg.Task != "text-generation" {
		t.Errorf("Default task = %q, want %q", cfg.Task, "text-generation")
	}
	if cfg.Format != "markdown" {
		t.Errorf("Default format = %q, want %q", cfg.Format, "markdown")
	}
	if cfg.TimeoutSeconds != 0 {
		t.Errorf("Default timeoutSeconds = %d, want 0", cfg.TimeoutSeconds)
	}
	if cfg.Privacy.RedactSecrets {
		t.Error("Default redactSecrets should be false")
	}
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	isolate(t)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load(nil) = %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoad_Env(t *testing.T) {
	isolate(t)
	t.Setenv("MENTOR_PROVIDER", "openai")
	t.Setenv("MENTOR_MODEL", "gpt-4.1-mini")
	t.Setenv("MENTOR_FORMAT", "json")
	t.Setenv("MENTOR_MAX_TOKENS", "512")
	t.Setenv("MENTOR_TEMPERATURE", "0.3")
	t.Setenv("MENTOR_LOG_LEVEL", "debug")
	t.Setenv("MENTOR_REDACT_SECRETS", "true")
	t.Setenv("MENTOR_STYLE", "dracula")
	t.Setenv("MENTOR_HUGGINGFACE_PROVIDER", "together")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Provider != "openai" {
		t.Errorf("Provider = %q, want %q", cfg.Provider, "openai")
	}
	if cfg.Model != "gpt-4.1-mini" {
		t.Errorf("Model = %q, want %q", cfg.Model, "gpt-4.1-mini")
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q, want %q", cfg.Format, "json")
	}
	if cfg.MaxTokens != 512 {
		t.Errorf("MaxTokens = %d, want 512", cfg.MaxTokens)
	}
	if cfg.Temperature != 0.3 {
		t.Errorf("Temperature = %v, want 0.3", cfg.Temperature)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
	if !cfg.Privacy.RedactSecrets {
		t.Error("RedactSecrets should be true from env")
	}
	if cfg.Style != "dracula" {
		t.Errorf("Style = %q, want %q", cfg.Style, "dracula")
	}
	if cfg.HuggingFaceProvider != "together" {
		t.Errorf("HuggingFaceProvider = %q, want %q", cfg.HuggingFaceProvider, "together")
	}
}

func TestLoad_InvalidEnvInt(t *testing.T) {
	isolate(t)
	t.Setenv("MENTOR_MAX_TOKENS", "notanumber")

	if _, err := Load(nil); err == nil {
		t.Error("Expected error for invalid MENTOR_MAX_TOKENS")
	}
}

func TestLoad_Precedence(t *testing.T) {
	isolate(t)

	fileCfg := Default()
	fileCfg.Provider = "anthropic"
	fileCfg.Model = "claude-sonnet-4-6"
	fileCfg.WordWrap = 80
	if err := Save(fileCfg); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	t.Setenv("MENTOR_PROVIDER", "gemini")

	cfg, err := Load(map[string]string{"model": "gemini-2.5-flash"})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Provider != "gemini" {
		t.Errorf("Provider = %q, want env value %q", cfg.Provider, "gemini")
	}
	if cfg.Model != "gemini-2.5-flash" {
		t.Errorf("Model = %q, want override %q", cfg.Model, "gemini-2.5-flash")
	}
	if cfg.WordWrap != 80 {
		t.Errorf("WordWrap = %d, want file value 80", cfg.WordWrap)
	}
	if cfg.MaxTokens != 2048 {
		t.Errorf("MaxTokens = %d, want default 2048", cfg.MaxTokens)
	}
}

func TestLoad_EmptyOverrideIgnored(t *testing.T) {
	isolate(t)

	cfg, err := Load(map[string]string{"provider": ""})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Provider != "huggingface" {
		t.Errorf("Provider = %q, empty override should be ignored", cfg.Provider)
	}
}

func TestLoad_UnknownOverride(t *testing.T) {
	isolate(t)

	if _, err := Load(map[string]string{"colour": "blue"}); err == nil {
		t.Error("Expected error for unknown override key")
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "mentor", "config.json")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(nil); err == nil {
		t.Error("Expected error for malformed config file")
	}
}

func TestSetField(t *testing.T) {
	cfg := Default()

	tests := []struct {
		key   string
		value string
	}{
		{"provider", "openai"},
		{"model", "gpt-4.1-mini"},
		{"task", "text-generation"},
		{"huggingfaceProvider", "novita"},
		{"format", "json"},
		{"style", "light"},
		{"maxTokens", "100"},
		{"temperature", "0.5"},
		{"timeoutSeconds", "60"},
		{"wordWrap", "72"},
		{"log.level", "DEBUG"},
		{"log.format", "json"},
		{"privacy.redactSecrets", "true"},
	}

	for _, tt := range tests {
		if err := SetField(&cfg, tt.key, tt.value); err != nil {
			t.Errorf("SetField(%q, %q) error: %v", tt.key, tt.value, err)
		}
	}

	if cfg.Provider != "openai" {
		t.Errorf("Provider = %q, want %q", cfg.Provider, "openai")
	}
	if cfg.MaxTokens != 100 {
		t.Errorf("MaxTokens = %d, want 100", cfg.MaxTokens)
	}
	if cfg.Style != "light" || cfg.HuggingFaceProvider != "novita" {
		t.Errorf("Style = %q, HuggingFaceProvider = %q", cfg.Style, cfg.HuggingFaceProvider)
	}
	if cfg.TimeoutSeconds != 60 {
		t.Errorf("TimeoutSeconds = %d, want 60", cfg.TimeoutSeconds)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want lower-cased %q", cfg.Log.Level, "debug")
	}
	if !cfg.Privacy.RedactSecrets {
		t.Error("RedactSecrets should be true")
	}
}

func TestSetField_CoversEveryKey(t *testing.T) {
	for _, key := range Keys() {
		if _, ok := envBindings[key]; !ok {
			t.Errorf("key %q has no env binding", key)
		}
	}
	if len(Keys()) != len(envBindings) {
		t.Errorf("Keys() has %d entries, envBindings has %d", len(Keys()), len(envBindings))
	}
}

func TestSetField_Errors(t *testing.T) {
	cfg := Default()
	if err := SetField(&cfg, "nonexistent", "value"); err == nil {
		t.Error("Expected error for unknown key")
	}
	if err := SetField(&cfg, "maxTokens", "notanumber"); err == nil {
		t.Error("Expected error for non-integer value")
	}
	if err := SetField(&cfg, "privacy.redactSecrets", "maybe"); err == nil {
		t.Error("Expected error for non-boolean value")
	}
}

func TestConfigPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/xdg-test/mentor" {
		t.Errorf("ConfigDir = %q, want %q", dir, "/tmp/xdg-test/mentor")
	}

	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath error: %v", err)
	}
	if path != "/tmp/xdg-test/mentor/config.json" {
		t.Errorf("ConfigPath = %q, want %q", path, "/tmp/xdg-test/mentor/config.json")
	}
}

func TestSaveAndLoadFile(t *testing.T) {
	isolate(t)

	cfg := Default()
	cfg.Provider = "ollama"
	cfg.Model = "llama3.1"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	loaded, err := LoadFile()
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if loaded != cfg {
		t.Errorf("LoadFile = %+v, want %+v", loaded, cfg)
	}
}

func TestLoadFile_NoFile(t *testing.T) {
	isolate(t)

	cfg, err := LoadFile()
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("LoadFile without file = %+v, want defaults", cfg)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("MENTOR_TEST_FROM_DOTENV=yes\nMENTOR_TEST_PRESET=fromfile\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MENTOR_TEST_FROM_DOTENV", "")
	os.Unsetenv("MENTOR_TEST_FROM_DOTENV")
	t.Setenv("MENTOR_TEST_PRESET", "fromenv")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv error: %v", err)
	}
	if got := os.Getenv("MENTOR_TEST_FROM_DOTENV"); got != "yes" {
		t.Errorf("MENTOR_TEST_FROM_DOTENV = %q, want %q", got, "yes")
	}
	if got := os.Getenv("MENTOR_TEST_PRESET"); got != "fromenv" {
		t.Errorf("existing variable overwritten: %q", got)
	}
}

func TestLoadDotEnv_Missing(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Errorf("missing .env should not be an error, got %v", err)
	}
}
