package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Config represents the mentor configuration.
type Config struct {
	Provider string `json:"provider" mapstructure:"provider"`
	Model    string `json:"model" mapstructure:"model"`
	Task     string `json:"task" mapstructure:"task"`
	// HuggingFaceProvider selects the inference provider behind the Hugging Face router.
	HuggingFaceProvider string `json:"huggingfaceProvider" mapstructure:"huggingfaceProvider"`
	Format              string `json:"format" mapstructure:"format"`
	// Style is the glamour style for markdown output; "auto" detects the terminal.
	Style          string        `json:"style" mapstructure:"style"`
	MaxTokens      int           `json:"maxTokens" mapstructure:"maxTokens"`
	Temperature    float64       `json:"temperature" mapstructure:"temperature"`
	TimeoutSeconds int           `json:"timeoutSeconds" mapstructure:"timeoutSeconds"`
	WordWrap       int           `json:"wordWrap" mapstructure:"wordWrap"`
	Log            LogConfig     `json:"log" mapstructure:"log"`
	Privacy        PrivacyConfig `json:"privacy" mapstructure:"privacy"`
}

// LogConfig controls diagnostic logging on stderr.
type LogConfig struct {
	Level  string `json:"level" mapstructure:"level"`
	Format string `json:"format" mapstructure:"format"`
}

// PrivacyConfig controls redaction of review input.
type PrivacyConfig struct {
	RedactSecrets bool `json:"redactSecrets" mapstructure:"redactSecrets"`
}

// Default returns a Config with all defaults applied. An empty Model means
// the selected provider's default model.
func Default() Config {
	return Config{
		Provider:            "huggingface",
		Task:                "text-generation",
		HuggingFaceProvider: "hf-inference",
		Format:              "markdown",
		Style:               "auto",
		MaxTokens:           2048,
		WordWrap:            100,
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// envBindings maps config keys to the environment variables that set them.
var envBindings = map[string]string{
	"provider":              "MENTOR_PROVIDER",
	"model":                 "MENTOR_MODEL",
	"task":                  "MENTOR_TASK",
	"huggingfaceProvider":   "MENTOR_HUGGINGFACE_PROVIDER",
	"format":                "MENTOR_FORMAT",
	"style":                 "MENTOR_STYLE",
	"maxTokens":             "MENTOR_MAX_TOKENS",
	"temperature":           "MENTOR_TEMPERATURE",
	"timeoutSeconds":        "MENTOR_TIMEOUT_SECONDS",
	"wordWrap":              "MENTOR_WORD_WRAP",
	"log.level":             "MENTOR_LOG_LEVEL",
	"log.format":            "MENTOR_LOG_FORMAT",
	"privacy.redactSecrets": "MENTOR_REDACT_SECRETS",
}

// ConfigDir returns the platform-appropriate config directory for mentor.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mentor"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "mentor"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "mentor"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "mentor"), nil
	default:
		return filepath.Join(home, ".config", "mentor"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadDotEnv exports variables from a dotenv file into the process
// environment. Variables that are already set are left alone, and a missing
// file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := gotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only non-empty values are applied).
func Load(overrides map[string]string) (Config, error) {
	v := newViper()

	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	if err := readFile(v, path); err != nil {
		return Config{}, err
	}

	for key, value := range overrides {
		if value == "" {
			continue
		}
		if _, ok := envBindings[key]; !ok {
			return Config{}, fmt.Errorf("unknown config key: %s", key)
		}
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	d := Default()
	v.SetDefault("provider", d.Provider)
	v.SetDefault("model", d.Model)
	v.SetDefault("task", d.Task)
	v.SetDefault("huggingfaceProvider", d.HuggingFaceProvider)
	v.SetDefault("format", d.Format)
	v.SetDefault("style", d.Style)
	v.SetDefault("maxTokens", d.MaxTokens)
	v.SetDefault("temperature", d.Temperature)
	v.SetDefault("timeoutSeconds", d.TimeoutSeconds)
	v.SetDefault("wordWrap", d.WordWrap)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("privacy.redactSecrets", d.Privacy.RedactSecrets)

	for key, env := range envBindings {
		// BindEnv only errors when called without a key.
		_ = v.BindEnv(key, env)
	}
	return v
}

func readFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	return nil
}

// LoadFile loads only the config file over defaults. A missing file yields Default().
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Keys lists every settable config key.
func Keys() []string {
	return []string{
		"provider", "model", "task", "huggingfaceProvider", "format", "style", "maxTokens", "temperature",
		"timeoutSeconds", "wordWrap", "log.level", "log.format", "privacy.redactSecrets",
	}
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "provider":
		cfg.Provider = value
	case "model":
		cfg.Model = value
	case "task":
		cfg.Task = value
	case "huggingfaceProvider":
		cfg.HuggingFaceProvider = value
	case "format":
		cfg.Format = value
	case "style":
		cfg.Style = value
	case "maxTokens":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("maxTokens must be an integer: %w", err)
		}
		cfg.MaxTokens = n
	case "temperature":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("temperature must be a number: %w", err)
		}
		cfg.Temperature = f
	case "timeoutSeconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("timeoutSeconds must be an integer: %w", err)
		}
		cfg.TimeoutSeconds = n
	case "wordWrap":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("wordWrap must be an integer: %w", err)
		}
		cfg.WordWrap = n
	case "log.level":
		cfg.Log.Level = strings.ToLower(value)
	case "log.format":
		cfg.Log.Format = value
	case "privacy.redactSecrets":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("privacy.redactSecrets must be a boolean: %w", err)
		}
		cfg.Privacy.RedactSecrets = b
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
