// Package ocr holds the failure taxonomy and backend registry shared by the
// text-extraction backends.
package ocr

import (
	"context"
	"errors"
	"fmt"

	"rosterscan/internal/domain"
)

// Kind classifies why a backend could not return text.
type Kind string

const (
	KindBackendUnavailable Kind = "backend_unavailable"
	KindUnsupportedInput   Kind = "unsupported_input"
	KindTimeout            Kind = "timeout"
	KindCanceled           Kind = "canceled"
)

// ExtractError is returned by every backend when extraction fails.
type ExtractError struct {
	Backend domain.OCRBackend
	Kind    Kind
	Err     error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Backend, e.Kind, e.Err)
}

func (e *ExtractError) Unwrap() error {
	return e.Err
}

// NewExtractError creates an ExtractError. A context deadline always maps
// to KindTimeout and a cancellation to KindCanceled, regardless of the kind
// requested.
func NewExtractError(backend domain.OCRBackend, kind Kind, err error) *ExtractError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = KindTimeout
	case errors.Is(err, context.Canceled):
		kind = KindCanceled
	}
	return &ExtractError{Backend: backend, Kind: kind, Err: err}
}

// KindOf returns the failure kind of err. Errors that are not ExtractErrors
// are treated as an unavailable backend, except context errors.
func KindOf(err error) Kind {
	var ee *ExtractError
	if errors.As(err, &ee) {
		return ee.Kind
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, context.Canceled):
		return KindCanceled
	}
	return KindBackendUnavailable
}

// IsRetryable reports whether the caller may retry the extraction.
// Only transient backend outages qualify.
func IsRetryable(err error) bool {
	return err != nil && KindOf(err) == KindBackendUnavailable
}
