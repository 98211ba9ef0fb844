package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://localhost:11434/v1", cfg.CompletionHost)
}

func TestNewConfig_Options(t *testing.T) {
	cfg := NewConfig(
		WithHost("http://localhost:8080"),
		WithRerankHost("http://localhost:9300/"),
		WithEmbeddingModel("text-embedding-3-small"),
		WithCompletionModel("gpt-4o-mini"),
		WithRerankModel("rerank-v1"),
		WithToken("secret"),
	)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "http://localhost:8080/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://localhost:8080/v1", cfg.CompletionHost)
	assert.Equal(t, "http://localhost:9300", cfg.RerankHost)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
	assert.Equal(t, "gpt-4o-mini", cfg.CompletionModel)
	assert.Equal(t, "rerank-v1", cfg.RerankModel)
	assert.Equal(t, "secret", cfg.Token)
}

func TestConfigNormalize_AddsV1Suffix(t *testing.T) {
	cfg := NewConfig(WithHost("http://localhost:11434/"))
	cfg.Normalize()
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)

	// Already normalized hosts are left alone.
	cfg.Normalize()
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
}

func TestConfigValidate_MissingFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing embedding host", func(c *Config) { c.EmbeddingHost = "" }},
		{"missing completion host", func(c *Config) { c.CompletionHost = "" }},
		{"missing rerank host", func(c *Config) { c.RerankHost = "" }},
		{"missing embedding model", func(c *Config) { c.EmbeddingModel = "" }},
		{"missing completion model", func(c *Config) { c.CompletionModel = "" }},
		{"missing rerank model", func(c *Config) { c.RerankModel = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
