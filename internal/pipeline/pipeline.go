// Package pipeline runs one extraction job end to end: preprocessing, text
// extraction over every image variant, parsing, merging, validation and
// reconciliation against the stored roster.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"rosterscan/internal/domain"
	"rosterscan/internal/imageprep"
	"rosterscan/internal/merge"
	"rosterscan/internal/port"
	"rosterscan/internal/reconcile"
	"rosterscan/internal/validator"
)

const (
	defaultOCRTimeout    = 60 * time.Second
	defaultAITimeout     = 90 * time.Second
	defaultRetryInterval = 500 * time.Millisecond
)

// Backends resolves the text extractor for a backend selector.
type Backends interface {
	Get(name domain.OCRBackend) (port.TextExtractor, error)
}

// Input is one extraction job.
type Input struct {
	Images   []string
	Backend  domain.OCRBackend
	RosterID uuid.UUID
}

// Outcome is the result of a job. Status is completed, requires_validation
// or failed.
type Outcome struct {
	Status     domain.JobStatus            `json:"status"`
	Inserted   []domain.Player             `json:"inserted,omitempty"`
	Updated    []domain.Player             `json:"updated,omitempty"`
	Candidates []domain.RawCandidate       `json:"candidates,omitempty"`
	Errors     []validator.ValidationError `json:"validation_errors,omitempty"`
	Reason     string                      `json:"reason,omitempty"`
	Passes     []domain.ExtractionPass     `json:"passes"`
}

// Options tunes timeouts and retries. Zero values fall back to defaults.
type Options struct {
	OCRTimeout    time.Duration
	AITimeout     time.Duration
	MaxRetries    int
	RetryInterval time.Duration
	WorkDir       string
}

// Pipeline wires the extraction stages together. The AI extractor and the
// player repository are optional.
type Pipeline struct {
	backends Backends
	ai       port.RecordExtractor
	players  port.PlayerRepository
	prep     *imageprep.Preprocessor
	opts     Options
	logger   *zap.Logger
}

// New creates a Pipeline. A nil ai disables AI-assisted extraction. A nil
// players repository reconciles against an empty roster and writes nothing.
func New(backends Backends, ai port.RecordExtractor, players port.PlayerRepository, opts Options, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.OCRTimeout <= 0 {
		opts.OCRTimeout = defaultOCRTimeout
	}
	if opts.AITimeout <= 0 {
		opts.AITimeout = defaultAITimeout
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = defaultRetryInterval
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	return &Pipeline{
		backends: backends,
		ai:       ai,
		players:  players,
		prep:     imageprep.NewPreprocessor(opts.WorkDir, logger),
		opts:     opts,
		logger:   logger,
	}
}

// passResult is what one (image, variant) pass produced.
type passResult struct {
	pass       domain.ExtractionPass
	candidates []domain.RawCandidate
}

// Run executes the job. Malformed input is reported as an error wrapping
// domain.ErrInvalidJobInput before any stage runs. Storage errors during
// reconciliation and context cancellation are returned as errors; every
// other failure is expressed in the Outcome.
func (p *Pipeline) Run(ctx context.Context, in Input) (*Outcome, error) {
	extractor, err := p.checkInput(in)
	if err != nil {
		return nil, err
	}
	log := p.logger.With(zap.String("roster_id", in.RosterID.String()), zap.String("backend", string(in.Backend)))

	variants, err := p.prepare(ctx, in.Images)
	defer func() {
		for _, v := range variants {
			if cerr := v.Cleanup(); cerr != nil {
				log.Warn("pipeline.Run: cleanup failed", zap.Error(cerr))
			}
		}
	}()
	if err != nil {
		return nil, err
	}

	results := p.runPasses(ctx, extractor, in.Backend, variants)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pipeline.Run: %w", err)
	}

	out := &Outcome{}
	perPass := make([][]domain.RawCandidate, 0, len(results))
	for _, r := range results {
		out.Passes = append(out.Passes, r.pass)
		perPass = append(perPass, r.candidates)
	}

	merged := merge.Merge(perPass)
	if len(merged) == 0 {
		log.Info("pipeline.Run: no records recovered", zap.Int("passes", len(results)))
		out.Status = domain.JobStatusFailed
		out.Reason = domain.ErrNoRecords.Error()
		return out, nil
	}

	res := validator.Validate(merged)
	if !res.OK() {
		log.Info("pipeline.Run: candidates need review",
			zap.Int("candidates", len(merged)), zap.Int("errors", len(res.Errors)))
		out.Status = domain.JobStatusRequiresValidation
		out.Candidates = merged
		out.Errors = res.Errors
		return out, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pipeline.Run: %w", err)
	}

	rec, err := p.reconcile(ctx, res.Valid, in.RosterID)
	if err != nil {
		return nil, err
	}
	out.Status = domain.JobStatusCompleted
	out.Inserted = rec.Inserted
	out.Updated = rec.Updated
	log.Info("pipeline.Run: completed",
		zap.Int("inserted", len(rec.Inserted)), zap.Int("updated", len(rec.Updated)))
	return out, nil
}

func (p *Pipeline) checkInput(in Input) (port.TextExtractor, error) {
	if len(in.Images) == 0 {
		return nil, fmt.Errorf("pipeline.Run: %w: no images", domain.ErrInvalidJobInput)
	}
	if in.RosterID == uuid.Nil {
		return nil, fmt.Errorf("pipeline.Run: %w: missing roster id", domain.ErrInvalidJobInput)
	}
	if _, ok := domain.ParseOCRBackend(string(in.Backend)); !ok {
		return nil, fmt.Errorf("pipeline.Run: %w: %w %q", domain.ErrInvalidJobInput, domain.ErrUnknownBackend, in.Backend)
	}
	ext, err := p.backends.Get(in.Backend)
	if err != nil {
		return nil, fmt.Errorf("pipeline.Run: %w: %w", domain.ErrInvalidJobInput, err)
	}
	return ext, nil
}

// prepare renders the variants of every image. Variants prepared before a
// failure are returned so the caller can clean them up.
func (p *Pipeline) prepare(ctx context.Context, images []string) ([]*imageprep.Variants, error) {
	variants := make([]*imageprep.Variants, 0, len(images))
	for _, path := range images {
		v, err := p.prep.Prepare(ctx, path)
		if err != nil {
			return variants, fmt.Errorf("pipeline.prepare: %w", err)
		}
		variants = append(variants, v)
	}
	return variants, nil
}

// runPasses runs every (image, variant) pass concurrently. A failing pass is
// recorded on its ExtractionPass and never cancels the others. Results are
// in image order, normal variant before inverted.
func (p *Pipeline) runPasses(ctx context.Context, ext port.TextExtractor, backend domain.OCRBackend, variants []*imageprep.Variants) []passResult {
	type job struct {
		image   int
		variant imageprep.Variant
	}
	var jobs []job
	for i, v := range variants {
		for _, vv := range v.List() {
			jobs = append(jobs, job{image: i, variant: vv})
		}
	}

	// Each goroutine writes only its own slot.
	results := make([]passResult, len(jobs))
	g, gCtx := errgroup.WithContext(ctx)
	for idx, j := range jobs {
		g.Go(func() error {
			results[idx] = p.runPass(gCtx, ext, backend, j.image, j.variant)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (p *Pipeline) runPass(ctx context.Context, ext port.TextExtractor, backend domain.OCRBackend, image int, v imageprep.Variant) passResult {
	pass := domain.ExtractionPass{Image: image, Variant: v.Kind, Backend: backend}
	log := p.logger.With(zap.Int("image", image), zap.String("variant", string(v.Kind)), zap.String("backend", string(backend)))

	text, err := p.extractText(ctx, ext, v.Path, log)
	if err != nil {
		log.Warn("pipeline.runPass: text extraction failed", zap.Error(err))
		pass.Err = err.Error()
		return passResult{pass: pass}
	}

	candidates, screen, source := p.extractCandidates(ctx, text, log)
	pass.ScreenType = screen
	pass.Source = source
	pass.Candidates = len(candidates)
	log.Debug("pipeline.runPass: pass done",
		zap.String("screen", string(screen)), zap.String("source", source), zap.Int("candidates", len(candidates)))
	return passResult{pass: pass, candidates: candidates}
}

func (p *Pipeline) reconcile(ctx context.Context, valid []validator.Record, rosterID uuid.UUID) (reconcile.Result, error) {
	var existing []domain.Player
	if p.players != nil {
		var err error
		existing, err = p.players.ListByRoster(ctx, rosterID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return reconcile.Result{}, fmt.Errorf("pipeline.reconcile: listing players: %w", err)
		}
	}

	res := reconcile.Reconcile(valid, existing, rosterID)

	if p.players != nil && (len(res.Inserted) > 0 || len(res.Updated) > 0) {
		if err := p.players.ApplyBatch(ctx, res.Inserted, res.Updated); err != nil {
			return reconcile.Result{}, fmt.Errorf("pipeline.reconcile: applying batch: %w", err)
		}
	}
	return res, nil
}
