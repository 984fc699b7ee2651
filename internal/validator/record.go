package validator

import (
	"strings"

	"rosterscan/internal/domain"
)

// Record is a candidate that passed validation. It can only be built by
// Validate and cannot be changed afterwards.
type Record struct {
	jersey     int
	hasJersey  bool
	position   string
	firstName  string
	lastName   string
	suffix     string
	overall    int
	attributes domain.Attributes
	profile    domain.Profile
}

func newRecord(c *domain.RawCandidate) Record {
	attrs := c.Attributes.Clone()
	attrs[domain.OverallKey] = c.Overall
	return Record{
		jersey:     c.Jersey,
		hasJersey:  c.HasJersey,
		position:   c.Position,
		firstName:  strings.TrimSpace(c.FirstName),
		lastName:   strings.TrimSpace(c.LastName),
		suffix:     strings.TrimSpace(c.Suffix),
		overall:    c.Overall,
		attributes: attrs,
		profile:    c.Profile,
	}
}

func (r Record) Jersey() int             { return r.jersey }
func (r Record) HasJersey() bool         { return r.hasJersey }
func (r Record) Position() string        { return r.position }
func (r Record) FirstName() string       { return r.firstName }
func (r Record) LastName() string        { return r.lastName }
func (r Record) Suffix() string          { return r.suffix }
func (r Record) Overall() int            { return r.overall }
func (r Record) Profile() domain.Profile { return r.profile }

// Attributes returns a copy of the attribute map.
func (r Record) Attributes() domain.Attributes {
	return r.attributes.Clone()
}

// IdentityKey returns the deduplication key of the record.
func (r Record) IdentityKey() string {
	return domain.IdentityKey(r.firstName, r.lastName, r.position)
}

// Candidate converts the record back into its raw form.
func (r Record) Candidate() domain.RawCandidate {
	return domain.RawCandidate{
		Jersey:     r.jersey,
		HasJersey:  r.hasJersey,
		Position:   r.position,
		FirstName:  r.firstName,
		LastName:   r.lastName,
		Suffix:     r.suffix,
		Overall:    r.overall,
		Attributes: r.Attributes(),
		Profile:    r.profile,
	}
}
