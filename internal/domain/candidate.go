package domain

import "strings"

// OverallKey is the attribute code the overall rating is stored under.
const OverallKey = "OVR"

// Profile holds the biographical fields only a player detail screen shows.
type Profile struct {
	ClassYear    string `json:"class_year,omitempty"`
	Redshirt     bool   `json:"redshirt,omitempty"`
	HeightInches int    `json:"height_inches,omitempty"`
	WeightLbs    int    `json:"weight_lbs,omitempty"`
	DevTrait     string `json:"dev_trait,omitempty"`
}

// IsZero reports whether no profile field was recovered.
func (p Profile) IsZero() bool {
	return p == Profile{}
}

// RawCandidate is one player record as recovered from screen text, before
// validation. Jersey is meaningful only when HasJersey is set; layouts without
// a jersey column leave it at 0.
type RawCandidate struct {
	Jersey     int        `json:"jersey"`
	HasJersey  bool       `json:"has_jersey"`
	Position   string     `json:"position"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Suffix     string     `json:"suffix,omitempty"`
	Overall    int        `json:"overall"`
	Attributes Attributes `json:"attributes"`
	Profile    Profile    `json:"profile,omitempty"`
}

// IdentityKey returns the deduplication key of the candidate.
func (c *RawCandidate) IdentityKey() string {
	return IdentityKey(c.FirstName, c.LastName, c.Position)
}

// Clone returns a deep copy of the candidate.
func (c RawCandidate) Clone() RawCandidate {
	c.Attributes = c.Attributes.Clone()
	return c
}

// SetOverall records the overall rating on the scalar field and under OverallKey.
func (c *RawCandidate) SetOverall(overall int) {
	c.Overall = overall
	if c.Attributes == nil {
		c.Attributes = Attributes{}
	}
	c.Attributes[OverallKey] = overall
}

// IdentityKey builds the first_last_position key used to match players.
// Empty name parts are valid key components.
func IdentityKey(firstName, lastName, position string) string {
	return strings.ToLower(strings.TrimSpace(firstName)) + "_" +
		strings.ToLower(strings.TrimSpace(lastName)) + "_" +
		strings.ToUpper(strings.TrimSpace(position))
}

// ExtractionPass describes one (image, variant, backend) execution and what it produced.
type ExtractionPass struct {
	Image      int          `json:"image"`
	Variant    ImageVariant `json:"variant"`
	Backend    OCRBackend   `json:"backend"`
	ScreenType ScreenType   `json:"screen_type,omitempty"`
	Source     string       `json:"source,omitempty"`
	Candidates int          `json:"candidates"`
	Err        string       `json:"error,omitempty"`
}
