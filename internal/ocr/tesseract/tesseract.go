// Package tesseract implements the local-engine OCR backend on libtesseract.
package tesseract

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/otiai10/gosseract/v2"

	"rosterscan/internal/config"
	"rosterscan/internal/domain"
	"rosterscan/internal/ocr"
	"rosterscan/internal/port"
)

const defaultLanguage = "eng"

// RecognizeFunc runs OCR over one image file.
type RecognizeFunc func(path string) (string, error)

// errUnreadableImage marks failures to load the image into the engine.
var errUnreadableImage = errors.New("image could not be loaded")

// Extractor implements port.TextExtractor with Tesseract.
type Extractor struct {
	recognize RecognizeFunc
}

// New creates a Tesseract extractor from the OCR config.
func New(cfg *config.OCRConfig) (port.TextExtractor, error) {
	lang := cfg.TesseractLanguage
	if lang == "" {
		lang = defaultLanguage
	}
	return NewWithRecognizer(func(path string) (string, error) {
		client := gosseract.NewClient()
		defer client.Close()

		if cfg.TessdataPrefix != "" {
			if err := client.SetTessdataPrefix(cfg.TessdataPrefix); err != nil {
				return "", fmt.Errorf("setting tessdata prefix: %w", err)
			}
		}
		if err := client.SetLanguage(lang); err != nil {
			return "", fmt.Errorf("setting language: %w", err)
		}
		if cfg.TesseractPSM > 0 {
			if err := client.SetPageSegMode(gosseract.PageSegMode(cfg.TesseractPSM)); err != nil {
				return "", fmt.Errorf("setting page segmentation mode: %w", err)
			}
		}
		if err := client.SetImage(path); err != nil {
			return "", fmt.Errorf("%w: %v", errUnreadableImage, err)
		}
		return client.Text()
	}), nil
}

// NewWithRecognizer creates an extractor around a custom recognizer (for testing).
func NewWithRecognizer(fn RecognizeFunc) *Extractor {
	return &Extractor{recognize: fn}
}

type result struct {
	text string
	err  error
}

// ExtractText runs the engine in its own goroutine so the caller's deadline
// is honoured even though the engine call itself cannot be interrupted.
func (e *Extractor) ExtractText(ctx context.Context, imagePath string) (string, error) {
	if _, err := os.Stat(imagePath); err != nil {
		return "", ocr.NewExtractError(domain.OCRBackendLocal, ocr.KindUnsupportedInput, err)
	}

	done := make(chan result, 1)
	go func() {
		text, err := e.recognize(imagePath)
		done <- result{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ocr.NewExtractError(domain.OCRBackendLocal, ocr.KindOf(ctx.Err()), ctx.Err())
	case r := <-done:
		if r.err == nil {
			return r.text, nil
		}
		kind := ocr.KindBackendUnavailable
		if errors.Is(r.err, errUnreadableImage) {
			kind = ocr.KindUnsupportedInput
		}
		return "", ocr.NewExtractError(domain.OCRBackendLocal, kind, r.err)
	}
}
