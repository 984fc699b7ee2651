package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosterscan/internal/config"
	"rosterscan/internal/logging"
)

func TestNew_ConsoleAndJSON(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		logger, err := logging.New(&config.LogConfig{Level: "info", Format: format})
		require.NoError(t, err, format)
		assert.NotNil(t, logger)
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := logging.New(&config.LogConfig{Level: "loud", Format: "console"})
	assert.Error(t, err)
}

