// Package vision implements the cloud-vision OCR backend on the Google Cloud
// Vision images:annotate REST API.
package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"rosterscan/internal/config"
	"rosterscan/internal/domain"
	"rosterscan/internal/ocr"
	"rosterscan/internal/port"
)

const apiURL = "https://vision.googleapis.com/v1/images:annotate"

// Extractor implements port.TextExtractor using Cloud Vision TEXT_DETECTION.
type Extractor struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// New creates a Cloud Vision extractor from the OCR config.
func New(cfg *config.OCRConfig) (port.TextExtractor, error) {
	if cfg.VisionAPIKey == "" {
		return nil, errors.New("vision api key is not configured")
	}
	endpoint := cfg.VisionEndpoint
	if endpoint == "" {
		endpoint = apiURL
	}
	return newExtractor(cfg.VisionAPIKey, endpoint), nil
}

// NewExtractorWithEndpoint creates an extractor pointing at a custom API endpoint (for testing).
func NewExtractorWithEndpoint(apiKey, endpoint string) *Extractor {
	return newExtractor(apiKey, endpoint)
}

func newExtractor(apiKey, endpoint string) *Extractor {
	return &Extractor{
		apiKey:   apiKey,
		endpoint: endpoint,
		client:   &http.Client{},
	}
}

type annotateRequest struct {
	Requests []imageRequest `json:"requests"`
}

type imageRequest struct {
	Image    imageContent `json:"image"`
	Features []feature    `json:"features"`
}

type imageContent struct {
	Content string `json:"content"`
}

type feature struct {
	Type string `json:"type"`
}

type annotateResponse struct {
	Responses []struct {
		FullTextAnnotation *struct {
			Text string `json:"text"`
		} `json:"fullTextAnnotation"`
		TextAnnotations []struct {
			Description string `json:"description"`
		} `json:"textAnnotations"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	} `json:"responses"`
}

// grpcInvalidArgument is the status code Vision reports for unusable images.
const grpcInvalidArgument = 3

func (e *Extractor) ExtractText(ctx context.Context, imagePath string) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", e.fail(ocr.KindUnsupportedInput, err)
	}

	reqBody := annotateRequest{Requests: []imageRequest{{
		Image:    imageContent{Content: base64.StdEncoding.EncodeToString(data)},
		Features: []feature{{Type: "TEXT_DETECTION"}},
	}}}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", e.fail(ocr.KindUnsupportedInput, fmt.Errorf("marshaling request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint+"?key="+e.apiKey, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", e.fail(ocr.KindBackendUnavailable, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", e.fail(ocr.KindBackendUnavailable, fmt.Errorf("sending request: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", e.fail(ocr.KindBackendUnavailable, fmt.Errorf("reading response: %w", err))
	}

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		return "", e.fail(ocr.KindUnsupportedInput, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(respBody)))
	case resp.StatusCode != http.StatusOK:
		return "", e.fail(ocr.KindBackendUnavailable, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(respBody)))
	}

	var out annotateResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", e.fail(ocr.KindBackendUnavailable, fmt.Errorf("unmarshaling response: %w", err))
	}
	if len(out.Responses) == 0 {
		return "", nil
	}

	r := out.Responses[0]
	if r.Error != nil {
		kind := ocr.KindBackendUnavailable
		if r.Error.Code == grpcInvalidArgument {
			kind = ocr.KindUnsupportedInput
		}
		return "", e.fail(kind, fmt.Errorf("vision error %d: %s", r.Error.Code, r.Error.Message))
	}
	if r.FullTextAnnotation != nil {
		return r.FullTextAnnotation.Text, nil
	}
	// The first text annotation is the whole detected block.
	if len(r.TextAnnotations) > 0 {
		return r.TextAnnotations[0].Description, nil
	}
	return "", nil
}

func (e *Extractor) fail(kind ocr.Kind, err error) error {
	return ocr.NewExtractError(domain.OCRBackendCloudVision, kind, err)
}
