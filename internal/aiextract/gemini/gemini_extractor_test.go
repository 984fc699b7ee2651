package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosterscan/internal/aiextract"
	gemini "rosterscan/internal/aiextract/gemini"
	"rosterscan/internal/config"
	"rosterscan/internal/domain"
	"rosterscan/internal/port"
)

func newTestExtractor(serverURL string) *gemini.Extractor {
	return gemini.NewExtractorWithEndpoint(&config.AIProviderConfig{
		Provider: "gemini",
		APIKey:   "test-gemini-key",
	}, serverURL)
}

func candidateResponse(text, finish string) map[string]interface{} {
	return map[string]interface{}{
		"candidates": []map[string]interface{}{{
			"content":      map[string]interface{}{"parts": []map[string]interface{}{{"text": text}}},
			"finishReason": finish,
		}},
	}
}

func TestGeminiExtractor_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-gemini-key", r.Header.Get("x-goog-api-key"))

		var reqBody map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		genCfg := reqBody["generationConfig"].(map[string]interface{})
		assert.Equal(t, "application/json", genCfg["responseMimeType"])

		_ = json.NewEncoder(w).Encode(candidateResponse(
			`{"records":[{"position":"QB","first_name":"Cai","last_name":"WOODS","jersey":16,"overall":84}]}`, "STOP"))
	}))
	defer server.Close()

	out, err := newTestExtractor(server.URL).ExtractRecords(context.Background(), port.ExtractInput{
		Text:       "Cai WOODS\nPosition QB (R) #16\n84 OVR",
		ScreenType: domain.ScreenDetail,
	})

	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", out.ModelUsed)
	require.Len(t, out.Records, 1)
	assert.Equal(t, 16, out.Records[0].Jersey)
}

func TestGeminiExtractor_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestExtractor(server.URL).ExtractRecords(context.Background(), port.ExtractInput{Text: "x"})

	var rlErr *aiextract.RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, "gemini", rlErr.Provider)
}

func TestGeminiExtractor_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	_, err := newTestExtractor(server.URL).ExtractRecords(context.Background(), port.ExtractInput{Text: "x"})
	assert.Error(t, err)
}
