package validator

import (
	"fmt"
	"strconv"
	"strings"

	"rosterscan/internal/domain"
)

const (
	MinOverall = 40
	MaxOverall = 99
	MinJersey  = 0
	MaxJersey  = 99
)

// requiredFieldRule checks that a string field is not blank.
type requiredFieldRule struct {
	ruleKey string
	field   string
	extract func(*domain.RawCandidate) string
}

func (r *requiredFieldRule) RuleKey() string { return r.ruleKey }
func (r *requiredFieldRule) Field() string   { return r.field }

func (r *requiredFieldRule) Check(c *domain.RawCandidate) (string, string, bool) {
	val := r.extract(c)
	if strings.TrimSpace(val) == "" {
		return val, fmt.Sprintf("%s is missing or empty", r.field), false
	}
	return val, "", true
}

// rangeRule checks that an integer field lies within [min, max].
type rangeRule struct {
	ruleKey  string
	field    string
	min, max int
	extract  func(*domain.RawCandidate) int
}

func (r *rangeRule) RuleKey() string { return r.ruleKey }
func (r *rangeRule) Field() string   { return r.field }

func (r *rangeRule) Check(c *domain.RawCandidate) (string, string, bool) {
	val := r.extract(c)
	if val < r.min || val > r.max {
		return strconv.Itoa(val), fmt.Sprintf("%s must be between %d and %d", r.field, r.min, r.max), false
	}
	return strconv.Itoa(val), "", true
}

// knownPositionRule checks the position against the known position set.
type knownPositionRule struct{}

func (knownPositionRule) RuleKey() string { return "position.known" }
func (knownPositionRule) Field() string   { return "position" }

func (knownPositionRule) Check(c *domain.RawCandidate) (string, string, bool) {
	if !domain.IsKnownPosition(c.Position) {
		return c.Position, fmt.Sprintf("position %q is not a known position", c.Position), false
	}
	return c.Position, "", true
}

// BuiltinRules returns the rules every record must pass, in check order.
func BuiltinRules() []Rule {
	return []Rule{
		&requiredFieldRule{
			ruleKey: "last_name.required",
			field:   "last_name",
			extract: func(c *domain.RawCandidate) string { return c.LastName },
		},
		knownPositionRule{},
		&rangeRule{
			ruleKey: "overall.range",
			field:   "overall",
			min:     MinOverall,
			max:     MaxOverall,
			extract: func(c *domain.RawCandidate) int { return c.Overall },
		},
		&rangeRule{
			ruleKey: "jersey.range",
			field:   "jersey",
			min:     MinJersey,
			max:     MaxJersey,
			extract: func(c *domain.RawCandidate) int { return c.Jersey },
		},
	}
}
