// Package aiextract sends cleaned screen text to a language model and turns
// its schema-checked JSON answer into candidate player records.
package aiextract

import (
	"fmt"

	"go.uber.org/zap"

	"rosterscan/internal/config"
	"rosterscan/internal/port"
)

// ProviderFactory is a function that creates a RecordExtractor from a provider config.
type ProviderFactory func(cfg *config.AIProviderConfig) (port.RecordExtractor, error)

// registry of provider factories, populated explicitly via RegisterProvider at startup.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewExtractor creates a RecordExtractor from a provider config using the registered factory.
func NewExtractor(cfg *config.AIProviderConfig) (port.RecordExtractor, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown AI provider: %s", cfg.Provider)
	}
	return factory(cfg)
}

// NewFromConfig builds the configured provider chain. It returns nil when AI
// extraction is disabled or no provider is configured. Several providers are
// wrapped in a FallbackExtractor in configuration order.
func NewFromConfig(cfg *config.AIConfig, logger *zap.Logger) (port.RecordExtractor, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	chain := cfg.ProviderChain()
	if len(chain) == 0 {
		return nil, nil
	}

	extractors := make([]port.RecordExtractor, 0, len(chain))
	names := make([]string, 0, len(chain))
	for _, pc := range chain {
		ext, err := NewExtractor(pc)
		if err != nil {
			return nil, fmt.Errorf("creating %s extractor: %w", pc.Provider, err)
		}
		extractors = append(extractors, ext)
		names = append(names, pc.Provider)
	}
	if len(extractors) == 1 {
		return extractors[0], nil
	}
	return NewFallbackExtractor(extractors, names, logger), nil
}
