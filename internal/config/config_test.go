package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docchat/internal/config"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "secret")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "embedding-001", cfg.Embedding.Model)
	assert.Equal(t, "gemini-1.5-pro-latest", cfg.Inference.Model)
	assert.Equal(t, 500, cfg.Segmenter.MaxCharacters)
	assert.Equal(t, 1500, cfg.Segmenter.NewAfterNChars)
	assert.Equal(t, 200, cfg.Segmenter.CombineUnderNChars)
	assert.Equal(t, "secret", cfg.GeminiAPIKey)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "secret")

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  port: "9090"

embedding:
  model: embedding-002

segmenter:
  max_characters: 400
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "embedding-002", cfg.Embedding.Model)
	assert.Equal(t, 400, cfg.Segmenter.MaxCharacters)
	// untouched values still default
	assert.Equal(t, 1500, cfg.Segmenter.NewAfterNChars)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n  - ["), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestValidateRequiresCredential(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestValidatePassesWithCredential(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "secret")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())
}
