package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"rosterscan/internal/domain"
	"rosterscan/internal/ocr"
	"rosterscan/internal/port"
	"rosterscan/internal/roster"
	"rosterscan/internal/textnorm"
)

const (
	sourceAI            = "ai"
	sourceDeterministic = "deterministic"
)

// extractText calls the backend with a per-call timeout. Only
// BackendUnavailable failures are retried, with exponential backoff.
func (p *Pipeline) extractText(ctx context.Context, ext port.TextExtractor, path string, log *zap.Logger) (string, error) {
	var text string
	op := func() error {
		callCtx, cancel := context.WithTimeout(ctx, p.opts.OCRTimeout)
		defer cancel()

		t, err := ext.ExtractText(callCtx, path)
		if err != nil {
			if !ocr.IsRetryable(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		text = t
		return nil
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = p.opts.RetryInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(p.opts.MaxRetries)), ctx)

	notify := func(err error, wait time.Duration) {
		log.Info("pipeline.extractText: retrying", zap.Error(err), zap.Duration("wait", wait))
	}
	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		return "", err
	}
	return text, nil
}

// extractCandidates cleans the raw text, classifies it and recovers records.
// The AI step runs first when configured; when it fails, times out or finds
// nothing, the deterministic parser runs on the same lines.
func (p *Pipeline) extractCandidates(ctx context.Context, raw string, log *zap.Logger) ([]domain.RawCandidate, domain.ScreenType, string) {
	lines := textnorm.Normalize(raw)
	screen := roster.Classify(lines)
	text := strings.TrimSpace(strings.Join(lines, "\n"))
	if text == "" {
		return nil, screen, sourceDeterministic
	}

	if records, ok := p.extractWithAI(ctx, text, screen, log); ok {
		return records, screen, sourceAI
	}
	return roster.ParseAs(lines, screen), screen, sourceDeterministic
}

func (p *Pipeline) extractWithAI(ctx context.Context, text string, screen domain.ScreenType, log *zap.Logger) ([]domain.RawCandidate, bool) {
	if p.ai == nil {
		return nil, false
	}
	aiCtx, cancel := context.WithTimeout(ctx, p.opts.AITimeout)
	defer cancel()

	out, err := p.ai.ExtractRecords(aiCtx, port.ExtractInput{Text: text, ScreenType: screen})
	switch {
	case err != nil:
		log.Warn("pipeline.extractWithAI: AI extraction failed, using parser", zap.Error(err))
		return nil, false
	case out == nil || len(out.Records) == 0:
		log.Info("pipeline.extractWithAI: AI returned no records, using parser")
		return nil, false
	}
	log.Debug("pipeline.extractWithAI: AI extraction succeeded",
		zap.String("model", out.ModelUsed), zap.Int("records", len(out.Records)))
	return out.Records, true
}
