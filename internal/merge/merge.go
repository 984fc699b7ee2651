// Package merge folds the candidate lists of several extraction passes into
// one list with a single record per player identity.
package merge

import "rosterscan/internal/domain"

// Merge reduces the per-pass candidate lists, in pass order, into one list
// keyed by identity. Output order is first-seen order. Inputs are not modified.
//
// When a key repeats, the record with strictly more attributes wins and keeps
// any stored attribute keys it lacks. Equal counts union the attribute maps
// with the newer pass winning conflicts, and newer scalar fields replace
// stored ones when they are present. A poorer record only contributes
// attribute keys the stored one does not have.
func Merge(passes [][]domain.RawCandidate) []domain.RawCandidate {
	index := map[string]int{}
	var out []domain.RawCandidate

	for _, pass := range passes {
		for _, c := range pass {
			key := c.IdentityKey()
			i, seen := index[key]
			if !seen {
				index[key] = len(out)
				out = append(out, withAttributes(c.Clone()))
				continue
			}
			out[i] = combine(out[i], c)
		}
	}
	return out
}

func withAttributes(c domain.RawCandidate) domain.RawCandidate {
	if c.Attributes == nil {
		c.Attributes = domain.Attributes{}
	}
	return c
}

func combine(stored, incoming domain.RawCandidate) domain.RawCandidate {
	incoming = withAttributes(incoming.Clone())
	switch {
	case len(incoming.Attributes) > len(stored.Attributes):
		fillMissing(incoming.Attributes, stored.Attributes)
		return incoming
	case len(incoming.Attributes) == len(stored.Attributes):
		for k, v := range incoming.Attributes {
			stored.Attributes[k] = v
		}
		return preferScalars(stored, incoming)
	default:
		fillMissing(stored.Attributes, incoming.Attributes)
		return stored
	}
}

// fillMissing copies keys of src that dst lacks.
func fillMissing(dst, src domain.Attributes) {
	for k, v := range src {
		if _, ok := dst[k]; !ok {
			dst[k] = v
		}
	}
}

// preferScalars keeps the newer value of each scalar field when present.
func preferScalars(stored, incoming domain.RawCandidate) domain.RawCandidate {
	if incoming.HasJersey {
		stored.Jersey, stored.HasJersey = incoming.Jersey, true
	}
	if incoming.FirstName != "" {
		stored.FirstName = incoming.FirstName
	}
	if incoming.LastName != "" {
		stored.LastName = incoming.LastName
	}
	if incoming.Suffix != "" {
		stored.Suffix = incoming.Suffix
	}
	if incoming.Position != "" {
		stored.Position = incoming.Position
	}
	if incoming.Overall != 0 {
		stored.Overall = incoming.Overall
		stored.Attributes[domain.OverallKey] = incoming.Overall
	}
	if !incoming.Profile.IsZero() {
		stored.Profile = mergeProfile(stored.Profile, incoming.Profile)
	}
	return stored
}

func mergeProfile(stored, incoming domain.Profile) domain.Profile {
	if incoming.ClassYear != "" {
		stored.ClassYear = incoming.ClassYear
	}
	stored.Redshirt = stored.Redshirt || incoming.Redshirt
	if incoming.HeightInches != 0 {
		stored.HeightInches = incoming.HeightInches
	}
	if incoming.WeightLbs != 0 {
		stored.WeightLbs = incoming.WeightLbs
	}
	if incoming.DevTrait != "" {
		stored.DevTrait = incoming.DevTrait
	}
	return stored
}
