package aiextract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"rosterscan/internal/domain"
)

// suffixKey is the attribute-map key a model may use for a generational suffix.
const suffixKey = "suffix"

// RecordsSchema returns the JSON Schema every model answer must satisfy. It is
// embedded in the prompt and used to validate the response locally.
func RecordsSchema() map[string]any {
	record := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"jersey":     map[string]any{"type": "integer"},
			"position":   map[string]any{"type": "string", "minLength": 1},
			"first_name": map[string]any{"type": "string"},
			"last_name":  map[string]any{"type": "string", "minLength": 1},
			"suffix":     map[string]any{"type": "string"},
			"overall":    map[string]any{"type": "integer"},
			"attributes": map[string]any{
				"type": "object",
				"properties": map[string]any{
					suffixKey: map[string]any{"type": "string"},
				},
				"additionalProperties": map[string]any{"type": "integer"},
			},
		},
		"required": []string{"position", "last_name", "overall"},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"records": map[string]any{"type": "array", "items": record},
		},
		"required": []string{"records"},
	}
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func recordsSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		b, err := json.Marshal(RecordsSchema())
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("records.json", bytes.NewReader(b)); err != nil {
			compileErr = fmt.Errorf("add schema: %w", err)
			return
		}
		compiledSchema, compileErr = compiler.Compile("records.json")
	})
	return compiledSchema, compileErr
}

// ValidateRecordsJSON checks data against RecordsSchema.
func ValidateRecordsJSON(data []byte) error {
	schema, err := recordsSchema()
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	return nil
}

type wireRecord struct {
	Jersey     *int                       `json:"jersey"`
	Position   string                     `json:"position"`
	FirstName  string                     `json:"first_name"`
	LastName   string                     `json:"last_name"`
	Suffix     string                     `json:"suffix"`
	Overall    int                        `json:"overall"`
	Attributes map[string]json.RawMessage `json:"attributes"`
}

// DecodeRecords validates a model's text answer and converts it into
// candidates. Markdown code fences around the JSON are tolerated.
func DecodeRecords(text string) ([]domain.RawCandidate, error) {
	data := []byte(stripCodeFence(text))
	if err := ValidateRecordsJSON(data); err != nil {
		return nil, fmt.Errorf("%w (raw: %s)", err, truncate(text, 500))
	}

	var payload struct {
		Records []wireRecord `json:"records"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decoding records: %w", err)
	}

	out := make([]domain.RawCandidate, 0, len(payload.Records))
	for _, r := range payload.Records {
		c := domain.RawCandidate{
			Position:   strings.ToUpper(strings.TrimSpace(r.Position)),
			FirstName:  strings.TrimSpace(r.FirstName),
			LastName:   strings.TrimSpace(r.LastName),
			Suffix:     strings.TrimSpace(r.Suffix),
			Attributes: domain.Attributes{},
		}
		if r.Jersey != nil {
			c.Jersey, c.HasJersey = *r.Jersey, true
		}
		for k, raw := range r.Attributes {
			if k == suffixKey {
				var s string
				if err := json.Unmarshal(raw, &s); err == nil && c.Suffix == "" {
					c.Suffix = strings.TrimSpace(s)
				}
				continue
			}
			var n int
			if err := json.Unmarshal(raw, &n); err == nil {
				c.Attributes[strings.ToUpper(k)] = n
			}
		}
		c.SetOverall(r.Overall)
		out = append(out, c)
	}
	return out, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
