package vision_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosterscan/internal/config"
	"rosterscan/internal/ocr"
	"rosterscan/internal/ocr/vision"
)

func writeImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg-bytes"), 0o600))
	return path
}

func TestVision_ExtractText_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		requests := reqBody["requests"].([]interface{})
		require.Len(t, requests, 1)
		first := requests[0].(map[string]interface{})
		image := first["image"].(map[string]interface{})
		assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("jpeg-bytes")), image["content"])
		features := first["features"].([]interface{})
		assert.Equal(t, "TEXT_DETECTION", features[0].(map[string]interface{})["type"])

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"responses":[{"fullTextAnnotation":{"text":"12 QB John Smith 85\n"}}]}`))
	}))
	defer server.Close()

	text, err := vision.NewExtractorWithEndpoint("test-key", server.URL).ExtractText(context.Background(), writeImage(t))

	require.NoError(t, err)
	assert.Equal(t, "12 QB John Smith 85\n", text)
}

func TestVision_ExtractText_TextAnnotationsFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"responses":[{"textAnnotations":[{"description":"14 WR Tim Ray 80"},{"description":"14"}]}]}`))
	}))
	defer server.Close()

	text, err := vision.NewExtractorWithEndpoint("k", server.URL).ExtractText(context.Background(), writeImage(t))

	require.NoError(t, err)
	assert.Equal(t, "14 WR Tim Ray 80", text)
}

func TestVision_ExtractText_ErrorKinds(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   ocr.Kind
	}{
		{"bad request", http.StatusBadRequest, `{"error":{"message":"bad image"}}`, ocr.KindUnsupportedInput},
		{"forbidden", http.StatusForbidden, `{"error":{"message":"key invalid"}}`, ocr.KindBackendUnavailable},
		{"server error", http.StatusInternalServerError, `oops`, ocr.KindBackendUnavailable},
		{"per image invalid", http.StatusOK, `{"responses":[{"error":{"code":3,"message":"Bad image data."}}]}`, ocr.KindUnsupportedInput},
		{"per image internal", http.StatusOK, `{"responses":[{"error":{"code":13,"message":"internal"}}]}`, ocr.KindBackendUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := vision.NewExtractorWithEndpoint("k", server.URL).ExtractText(context.Background(), writeImage(t))

			assert.Equal(t, tt.want, ocr.KindOf(err))
		})
	}
}

func TestVision_ExtractText_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := vision.NewExtractorWithEndpoint("k", server.URL).ExtractText(ctx, writeImage(t))

	assert.Equal(t, ocr.KindTimeout, ocr.KindOf(err))
}

func TestVision_New_RequiresKey(t *testing.T) {
	_, err := vision.New(&config.OCRConfig{})
	assert.Error(t, err)

	ext, err := vision.New(&config.OCRConfig{VisionAPIKey: "k"})
	require.NoError(t, err)
	assert.NotNil(t, ext)
}
