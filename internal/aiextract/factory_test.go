package aiextract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosterscan/internal/aiextract"
	"rosterscan/internal/config"
	"rosterscan/internal/port"
	"rosterscan/mocks"
)

func registerFake(name string) {
	aiextract.RegisterProvider(name, func(*config.AIProviderConfig) (port.RecordExtractor, error) {
		return new(mocks.MockRecordExtractor), nil
	})
}

func TestNewExtractor_UnknownProvider(t *testing.T) {
	_, err := aiextract.NewExtractor(&config.AIProviderConfig{Provider: "nope"})
	assert.Error(t, err)
}

func TestNewFromConfig(t *testing.T) {
	registerFake("fake-a")
	registerFake("fake-b")

	t.Run("disabled", func(t *testing.T) {
		ext, err := aiextract.NewFromConfig(&config.AIConfig{Provider: "fake-a"}, nil)
		require.NoError(t, err)
		assert.Nil(t, ext)
	})

	t.Run("enabled without provider", func(t *testing.T) {
		ext, err := aiextract.NewFromConfig(&config.AIConfig{Enabled: true}, nil)
		require.NoError(t, err)
		assert.Nil(t, ext)
	})

	t.Run("legacy single provider", func(t *testing.T) {
		ext, err := aiextract.NewFromConfig(&config.AIConfig{Enabled: true, Provider: "fake-a"}, nil)
		require.NoError(t, err)
		assert.IsType(t, &mocks.MockRecordExtractor{}, ext)
	})

	t.Run("chain", func(t *testing.T) {
		ext, err := aiextract.NewFromConfig(&config.AIConfig{
			Enabled:   true,
			Primary:   config.AIProviderConfig{Provider: "fake-a"},
			Secondary: config.AIProviderConfig{Provider: "fake-b"},
		}, nil)
		require.NoError(t, err)
		assert.IsType(t, &aiextract.FallbackExtractor{}, ext)
	})

	t.Run("unknown provider in chain", func(t *testing.T) {
		_, err := aiextract.NewFromConfig(&config.AIConfig{
			Enabled: true,
			Primary: config.AIProviderConfig{Provider: "missing"},
		}, nil)
		assert.Error(t, err)
	})
}

func TestParseRetryAfterHeader(t *testing.T) {
	assert.Equal(t, 0, aiextract.ParseRetryAfterHeader(""))
	assert.Equal(t, 0, aiextract.ParseRetryAfterHeader("soon"))
	assert.Equal(t, 30, aiextract.ParseRetryAfterHeader("30"))
	assert.Equal(t, float64(60), aiextract.NewRateLimitError("x", nil, 0).RetryAfter.Seconds())
}
