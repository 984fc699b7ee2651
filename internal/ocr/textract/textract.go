// Package textract implements the cloud-text-detect OCR backend on AWS Textract.
package textract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"

	"rosterscan/internal/config"
	"rosterscan/internal/domain"
	"rosterscan/internal/ocr"
	"rosterscan/internal/port"
)

// maxDocumentBytes is the synchronous DetectDocumentText payload limit.
const maxDocumentBytes = 10 << 20

// API is the subset of the Textract client the backend calls.
type API interface {
	DetectDocumentText(ctx context.Context, params *textract.DetectDocumentTextInput, optFns ...func(*textract.Options)) (*textract.DetectDocumentTextOutput, error)
}

// Extractor implements port.TextExtractor with Textract DetectDocumentText.
type Extractor struct {
	api API
}

// New creates a Textract extractor from the OCR config. Static credentials
// are used when both keys are set, otherwise the default AWS chain.
func New(cfg *config.OCRConfig) (port.TextExtractor, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.TextractRegion != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.TextractRegion))
	}
	if cfg.TextractAccessKey != "" && cfg.TextractSecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.TextractAccessKey, cfg.TextractSecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	var clientOpts []func(*textract.Options)
	if cfg.TextractEndpoint != "" {
		clientOpts = append(clientOpts, func(o *textract.Options) {
			o.BaseEndpoint = aws.String(cfg.TextractEndpoint)
		})
	}
	return NewWithAPI(textract.NewFromConfig(awsCfg, clientOpts...)), nil
}

// NewWithAPI creates an extractor around an existing client (for testing).
func NewWithAPI(api API) *Extractor {
	return &Extractor{api: api}
}

func (e *Extractor) ExtractText(ctx context.Context, imagePath string) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", ocr.NewExtractError(domain.OCRBackendTextDetect, ocr.KindUnsupportedInput, err)
	}
	if len(data) > maxDocumentBytes {
		return "", ocr.NewExtractError(domain.OCRBackendTextDetect, ocr.KindUnsupportedInput,
			fmt.Errorf("image is %d bytes, limit is %d", len(data), maxDocumentBytes))
	}

	out, err := e.api.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
		Document: &types.Document{Bytes: data},
	})
	if err != nil {
		return "", ocr.NewExtractError(domain.OCRBackendTextDetect, classify(err), err)
	}

	var lines []string
	for _, b := range out.Blocks {
		if b.BlockType == types.BlockTypeLine && b.Text != nil {
			lines = append(lines, *b.Text)
		}
	}
	return strings.Join(lines, "\n"), nil
}

func classify(err error) ocr.Kind {
	var (
		unsupported *types.UnsupportedDocumentException
		bad         *types.BadDocumentException
		tooLarge    *types.DocumentTooLargeException
		invalid     *types.InvalidParameterException
	)
	switch {
	case errors.As(err, &unsupported), errors.As(err, &bad),
		errors.As(err, &tooLarge), errors.As(err, &invalid):
		return ocr.KindUnsupportedInput
	case errors.Is(err, context.DeadlineExceeded):
		return ocr.KindTimeout
	default:
		return ocr.KindBackendUnavailable
	}
}
