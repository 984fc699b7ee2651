package ocr

import (
	"fmt"
	"sort"

	"rosterscan/internal/config"
	"rosterscan/internal/domain"
	"rosterscan/internal/port"
)

// BackendFactory creates a TextExtractor from the OCR config.
type BackendFactory func(cfg *config.OCRConfig) (port.TextExtractor, error)

// factories of OCR backends, populated explicitly via RegisterBackend at startup.
var factories = map[domain.OCRBackend]BackendFactory{}

// RegisterBackend registers a backend factory by name.
func RegisterBackend(name domain.OCRBackend, factory BackendFactory) {
	factories[name] = factory
}

// NewExtractor creates the named backend using its registered factory.
func NewExtractor(name domain.OCRBackend, cfg *config.OCRConfig) (port.TextExtractor, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownBackend, name)
	}
	return factory(cfg)
}

// Registry resolves a job's backend selector to a ready extractor.
type Registry struct {
	extractors map[domain.OCRBackend]port.TextExtractor
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{extractors: map[domain.OCRBackend]port.TextExtractor{}}
}

// BuildRegistry instantiates every registered backend. Backends whose
// factory fails are left out and reported in the returned map.
func BuildRegistry(cfg *config.OCRConfig) (*Registry, map[domain.OCRBackend]error) {
	r := NewRegistry()
	failed := map[domain.OCRBackend]error{}
	for name, factory := range factories {
		ext, err := factory(cfg)
		if err != nil {
			failed[name] = err
			continue
		}
		r.Register(name, ext)
	}
	return r, failed
}

// Register adds or replaces the extractor for a backend.
func (r *Registry) Register(name domain.OCRBackend, ext port.TextExtractor) {
	r.extractors[name] = ext
}

// Get returns the extractor for name or domain.ErrUnknownBackend.
func (r *Registry) Get(name domain.OCRBackend) (port.TextExtractor, error) {
	ext, ok := r.extractors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownBackend, name)
	}
	return ext, nil
}

// Backends lists the available backend names in sorted order.
func (r *Registry) Backends() []domain.OCRBackend {
	out := make([]domain.OCRBackend, 0, len(r.extractors))
	for name := range r.extractors {
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
