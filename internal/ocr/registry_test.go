package ocr_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosterscan/internal/config"
	"rosterscan/internal/domain"
	"rosterscan/internal/ocr"
	"rosterscan/internal/port"
)

type staticExtractor string

func (s staticExtractor) ExtractText(context.Context, string) (string, error) {
	return string(s), nil
}

func TestRegistry_Get(t *testing.T) {
	r := ocr.NewRegistry()
	r.Register(domain.OCRBackendLocal, staticExtractor("local"))

	ext, err := r.Get(domain.OCRBackendLocal)
	require.NoError(t, err)
	text, _ := ext.ExtractText(context.Background(), "x")
	assert.Equal(t, "local", text)

	_, err = r.Get(domain.OCRBackendCloudVision)
	assert.ErrorIs(t, err, domain.ErrUnknownBackend)
}

func TestBuildRegistry(t *testing.T) {
	ocr.RegisterBackend(domain.OCRBackendLocal, func(*config.OCRConfig) (port.TextExtractor, error) {
		return staticExtractor("local"), nil
	})
	ocr.RegisterBackend(domain.OCRBackendCloudVision, func(*config.OCRConfig) (port.TextExtractor, error) {
		return nil, errors.New("no api key")
	})

	r, failed := ocr.BuildRegistry(&config.OCRConfig{})

	assert.Contains(t, r.Backends(), domain.OCRBackendLocal)
	assert.NotContains(t, r.Backends(), domain.OCRBackendCloudVision)
	assert.Contains(t, failed, domain.OCRBackendCloudVision)

	_, err := ocr.NewExtractor("bogus", &config.OCRConfig{})
	assert.ErrorIs(t, err, domain.ErrUnknownBackend)
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("pass failed: %w",
		ocr.NewExtractError(domain.OCRBackendTextDetect, ocr.KindUnsupportedInput, errors.New("bad document")))

	assert.Equal(t, ocr.KindUnsupportedInput, ocr.KindOf(wrapped))
	assert.Equal(t, ocr.KindTimeout, ocr.KindOf(context.DeadlineExceeded))
	assert.Equal(t, ocr.KindBackendUnavailable, ocr.KindOf(errors.New("boom")))
	assert.Equal(t, ocr.KindTimeout,
		ocr.NewExtractError(domain.OCRBackendLocal, ocr.KindBackendUnavailable, context.DeadlineExceeded).Kind)
	assert.Equal(t, ocr.KindCanceled, ocr.KindOf(context.Canceled))
	assert.Equal(t, ocr.KindCanceled,
		ocr.NewExtractError(domain.OCRBackendLocal, ocr.KindTimeout, context.Canceled).Kind)
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, ocr.IsRetryable(nil))
	assert.True(t, ocr.IsRetryable(ocr.NewExtractError(domain.OCRBackendLocal, ocr.KindBackendUnavailable, errors.New("down"))))
	assert.False(t, ocr.IsRetryable(ocr.NewExtractError(domain.OCRBackendLocal, ocr.KindTimeout, errors.New("slow"))))
	assert.False(t, ocr.IsRetryable(ocr.NewExtractError(domain.OCRBackendLocal, ocr.KindUnsupportedInput, errors.New("bad"))))
	assert.False(t, ocr.IsRetryable(ocr.NewExtractError(domain.OCRBackendLocal, ocr.KindBackendUnavailable, context.Canceled)))
}
