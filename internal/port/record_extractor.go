package port

import (
	"context"

	"rosterscan/internal/domain"
)

// ExtractInput carries cleaned screen text for AI-assisted extraction.
type ExtractInput struct {
	Text       string
	ScreenType domain.ScreenType
}

// ExtractOutput contains the records a language model recovered.
type ExtractOutput struct {
	Records   []domain.RawCandidate
	ModelUsed string
}

// RecordExtractor abstracts LLM-based player record extraction.
type RecordExtractor interface {
	ExtractRecords(ctx context.Context, input ExtractInput) (*ExtractOutput, error)
}
