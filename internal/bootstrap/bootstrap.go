// Package bootstrap wires text-extraction backends, language-model providers
// and the extraction pipeline from configuration. It is shared by the server
// and the command-line scanner.
package bootstrap

import (
	"time"

	"go.uber.org/zap"

	"rosterscan/internal/aiextract"
	"rosterscan/internal/aiextract/claude"
	"rosterscan/internal/aiextract/gemini"
	"rosterscan/internal/aiextract/openai"
	"rosterscan/internal/config"
	"rosterscan/internal/domain"
	"rosterscan/internal/ocr"
	"rosterscan/internal/ocr/tesseract"
	"rosterscan/internal/ocr/textract"
	"rosterscan/internal/ocr/vision"
	"rosterscan/internal/pipeline"
	"rosterscan/internal/port"
)

func init() {
	ocr.RegisterBackend(domain.OCRBackendLocal, tesseract.New)
	ocr.RegisterBackend(domain.OCRBackendTextDetect, textract.New)
	ocr.RegisterBackend(domain.OCRBackendCloudVision, vision.New)

	aiextract.RegisterProvider("claude", claude.Factory)
	aiextract.RegisterProvider("gemini", gemini.Factory)
	aiextract.RegisterProvider("openai", openai.Factory)
}

// Backends builds the registry of every backend that could be constructed.
// Backends that fail are logged and left out; jobs selecting them are
// rejected as invalid input.
func Backends(cfg *config.OCRConfig, logger *zap.Logger) *ocr.Registry {
	reg, failed := ocr.BuildRegistry(cfg)
	for name, err := range failed {
		logger.Warn("bootstrap: ocr backend unavailable", zap.String("backend", string(name)), zap.Error(err))
	}
	logger.Info("bootstrap: ocr backends ready", zap.Any("backends", reg.Backends()))
	return reg
}

// Pipeline builds the extraction pipeline. players may be nil.
func Pipeline(cfg *config.Config, players port.PlayerRepository, logger *zap.Logger) (*pipeline.Pipeline, error) {
	ai, err := aiextract.NewFromConfig(&cfg.AI, logger)
	if err != nil {
		return nil, err
	}
	if ai == nil {
		logger.Info("bootstrap: ai extraction disabled, using deterministic parser only")
	}

	opts := pipeline.Options{
		OCRTimeout: cfg.OCR.Timeout(),
		MaxRetries: cfg.OCR.MaxRetries,
		WorkDir:    cfg.OCR.WorkDir,
	}
	if cfg.AI.TimeoutSecs > 0 {
		opts.AITimeout = time.Duration(cfg.AI.TimeoutSecs) * time.Second
	}
	return pipeline.New(Backends(&cfg.OCR, logger), ai, players, opts, logger), nil
}
