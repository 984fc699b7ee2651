// Package validator checks merged candidates against the invariants every
// persisted player record must hold.
package validator

import "rosterscan/internal/domain"

// Rule is a single check against one field of a candidate.
type Rule interface {
	RuleKey() string
	Field() string
	// Check returns the offending value and a reason when the candidate fails.
	Check(c *domain.RawCandidate) (value, reason string, ok bool)
}

// ValidationError describes one failed rule on the candidate at Index.
type ValidationError struct {
	Index  int    `json:"index"`
	Rule   string `json:"rule"`
	Field  string `json:"field"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

// Result holds the candidates that passed every rule and the errors of those
// that did not. Every input candidate is accounted for in exactly one of them.
type Result struct {
	Valid  []Record
	Errors []ValidationError
}

// OK reports whether no candidate failed validation.
func (r *Result) OK() bool {
	return len(r.Errors) == 0
}

// Validator runs the rules of a registry in order.
type Validator struct {
	registry *Registry
}

// New creates a validator over the given registry.
func New(registry *Registry) *Validator {
	return &Validator{registry: registry}
}

// Validate checks every candidate with the built-in rules.
func Validate(candidates []domain.RawCandidate) Result {
	return New(DefaultRegistry()).Validate(candidates)
}

// Validate checks every candidate. A candidate failing several rules gets one
// error per rule.
func (v *Validator) Validate(candidates []domain.RawCandidate) Result {
	var res Result
	for i := range candidates {
		c := &candidates[i]
		failed := false
		for _, rule := range v.registry.All() {
			value, reason, ok := rule.Check(c)
			if ok {
				continue
			}
			failed = true
			res.Errors = append(res.Errors, ValidationError{
				Index:  i,
				Rule:   rule.RuleKey(),
				Field:  rule.Field(),
				Value:  value,
				Reason: reason,
			})
		}
		if !failed {
			res.Valid = append(res.Valid, newRecord(c))
		}
	}
	return res
}
