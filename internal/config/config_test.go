package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "huggingface", cfg.AIProvider)
	assert.Equal(t, 4, cfg.EnrichConcurrency)
}

func TestLoadConfigReadsEnrichmentSettings(t *testing.T) {
	t.Setenv("AI_PROVIDER", "openai")
	t.Setenv("ENRICH_CONCURRENCY", "8")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.AIProvider)
	assert.Equal(t, 8, cfg.EnrichConcurrency)
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("SOME_COUNT", "7")
	assert.Equal(t, 7, GetEnvInt("SOME_COUNT", 4))

	t.Setenv("SOME_COUNT", "not-a-number")
	assert.Equal(t, 4, GetEnvInt("SOME_COUNT", 4))

	t.Setenv("SOME_COUNT", "-2")
	assert.Equal(t, 4, GetEnvInt("SOME_COUNT", 4))

	assert.Equal(t, 4, GetEnvInt("SOME_COUNT_UNSET", 4))
}

func TestValidateRequiresCredentials(t *testing.T) {
	cfg := &Config{
		GoogleClientID:     "id",
		GoogleClientSecret: "secret",
		SessionSecret:      "session",
		AIKey:              "key",
	}
	assert.NoError(t, cfg.Validate())

	cfg.AIKey = ""
	assert.Error(t, cfg.Validate())

	cfg.AIKey = "key"
	cfg.GoogleClientID = ""
	assert.Error(t, cfg.Validate())
}
