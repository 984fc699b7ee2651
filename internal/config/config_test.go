package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosterscan/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "local-engine", cfg.OCR.Backend)
	assert.Equal(t, 2, cfg.OCR.MaxRetries)
	assert.Equal(t, 30*time.Second, cfg.OCR.Timeout())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.False(t, cfg.AI.Enabled)
	assert.Empty(t, cfg.AI.ProviderChain())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ROSTERSCAN_OCR_BACKEND", "cloud-vision")
	t.Setenv("ROSTERSCAN_OCR_TIMEOUT_SECS", "5")
	t.Setenv("ROSTERSCAN_SERVER_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("ROSTERSCAN_QUEUE_CONCURRENCY", "8")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "cloud-vision", cfg.OCR.Backend)
	assert.Equal(t, 5*time.Second, cfg.OCR.Timeout())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 8, cfg.Queue.Concurrency)
}

func TestLoad_PortFallback(t *testing.T) {
	t.Setenv("PORT", "9090")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)

	t.Setenv("ROSTERSCAN_SERVER_PORT", ":7000")
	cfg, err = config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Port)
}

func TestAIConfig_ProviderChain(t *testing.T) {
	legacy := config.AIConfig{Provider: "claude", APIKey: "k"}
	chain := legacy.ProviderChain()
	require.Len(t, chain, 1)
	assert.Equal(t, "claude", chain[0].Provider)

	multi := config.AIConfig{
		Primary:   config.AIProviderConfig{Provider: "gemini"},
		Secondary: config.AIProviderConfig{Provider: "openai"},
		Tertiary:  config.AIProviderConfig{Provider: "claude"},
	}
	var names []string
	for _, p := range multi.ProviderChain() {
		names = append(names, p.Provider)
	}
	assert.Equal(t, []string{"gemini", "openai", "claude"}, names)
}
