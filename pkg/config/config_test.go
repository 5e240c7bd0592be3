package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Validation.Interpretation.MinWords)
	assert.Equal(t, 600, cfg.Validation.Interpretation.MaxWords)
	assert.Equal(t, 0.5, cfg.Validation.Interpretation.QualityThreshold)
	assert.Equal(t, 20, cfg.Validation.Passage.MinWords)
	assert.Equal(t, 0.6, cfg.Validation.Passage.QualityThreshold)
	assert.Equal(t, "eng", cfg.Validation.Language)
	assert.Equal(t, 1.5, cfg.Anomaly.IQRMultiplier)
	assert.Equal(t, 2.5, cfg.Anomaly.ZScoreThreshold)
	assert.Equal(t, 0.85, cfg.Anomaly.SimilarityThreshold)
	assert.Equal(t, 8, cfg.Identity.HashLength)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.Cleaning.RemoveURLs)
	assert.True(t, cfg.Cleaning.FixEncoding)
	assert.True(t, cfg.Cleaning.NormalizeWhitespace)
}

func TestLoadConfigFromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
validation:
  interpretation:
    min_words: 5
    max_words: 300
    min_chars: 20
    max_chars: 2000
    quality_threshold: 0.4
  passage:
    min_words: 20
    max_words: 1000
    min_chars: 100
    max_chars: 6000
    quality_threshold: 0.6
  language: eng
lookup:
  base_url: http://localhost:9999/books
  timeout: 2s
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Validation.Interpretation.MinWords)
	assert.Equal(t, 0.4, cfg.Validation.Interpretation.QualityThreshold)
	assert.Equal(t, "http://localhost:9999/books", cfg.Lookup.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Lookup.Timeout.Std())
	assert.Equal(t, "debug", cfg.LogLevel)

	// Untouched sections keep their defaults.
	assert.Equal(t, 1.5, cfg.Anomaly.IQRMultiplier)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("OUTPUT_DIR", "/tmp/out")
	t.Setenv("ID_HASH_LENGTH", "12")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "/tmp/out", cfg.Paths.OutputDir)
	assert.Equal(t, 12, cfg.Identity.HashLength)
}

func TestValidateRejectsBadThresholds(t *testing.T) {
	cfg := defaultConfig()
	cfg.Validation.Interpretation.MaxWords = cfg.Validation.Interpretation.MinWords
	assert.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.Validation.Passage.QualityThreshold = 1.5
	assert.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.Anomaly.SimilarityThreshold = 0
	assert.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.Identity.HashLength = 100
	assert.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.Paths.OutputDir = ""
	assert.Error(t, cfg.Validate())
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_STR", "value")
	assert.Equal(t, "value", getEnv("TEST_STR", "default"))
	assert.Equal(t, "default", getEnv("TEST_STR_MISSING", "default"))

	t.Setenv("TEST_INT", "42")
	assert.Equal(t, 42, getEnvAsInt("TEST_INT", 7))
	t.Setenv("TEST_INT_BAD", "not a number")
	assert.Equal(t, 7, getEnvAsInt("TEST_INT_BAD", 7))
}
