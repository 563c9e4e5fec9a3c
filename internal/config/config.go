package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port           string `yaml:"port"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
}

// EmbeddingConfig points at the Gemini embedContent endpoint.
type EmbeddingConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// InferenceConfig points at the OpenAI-compatible Gemini chat endpoint.
type InferenceConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

type SegmenterConfig struct {
	MaxCharacters      int `yaml:"max_characters"`
	NewAfterNChars     int `yaml:"new_after_n_chars"`
	CombineUnderNChars int `yaml:"combine_under_n_chars"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Inference InferenceConfig `yaml:"inference"`
	Segmenter SegmenterConfig `yaml:"segmenter"`

	// GeminiAPIKey is read from the environment only, never from the file.
	GeminiAPIKey string `yaml:"-"`
}

// Load reads the YAML config at path, falling back to defaults when the file
// does not exist, and overlays the credential from the environment.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	case os.IsNotExist(err):
		// run on defaults
	default:
		return nil, fmt.Errorf("read config file: %w", err)
	}

	applyDefaults(&cfg)
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.MaxUploadBytes <= 0 {
		cfg.Server.MaxUploadBytes = 50 << 20
	}
	if cfg.Embedding.BaseURL == "" {
		cfg.Embedding.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = "embedding-001"
	}
	if cfg.Inference.BaseURL == "" {
		cfg.Inference.BaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"
	}
	if cfg.Inference.Model == "" {
		cfg.Inference.Model = "gemini-1.5-pro-latest"
	}
	if cfg.Segmenter.MaxCharacters <= 0 {
		cfg.Segmenter.MaxCharacters = 500
	}
	if cfg.Segmenter.NewAfterNChars <= 0 {
		cfg.Segmenter.NewAfterNChars = 1500
	}
	if cfg.Segmenter.CombineUnderNChars <= 0 {
		cfg.Segmenter.CombineUnderNChars = 200
	}
}

// Validate reports startup-fatal configuration problems.
func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.Segmenter.MaxCharacters > c.Segmenter.NewAfterNChars {
		return fmt.Errorf("segmenter max_characters must not exceed new_after_n_chars")
	}
	return nil
}
