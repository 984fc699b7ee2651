package roster

import (
	"strings"

	"rosterscan/internal/domain"
)

// minHeaderCodes is how many attribute codes make a line a column header.
const minHeaderCodes = 3

// headerColumns returns the attribute columns that follow the overall column
// when tokens form a header row. Column order is assumed to match the numeric
// cells of every following row; unusual layouts can misalign.
func headerColumns(tokens []string) ([]string, bool) {
	var codes []string
	for _, tok := range tokens {
		if isAttributeCode(tok) {
			codes = append(codes, tok)
		}
	}
	if len(codes) < minHeaderCodes {
		return nil, false
	}
	for i, code := range codes {
		if code == domain.OverallKey {
			return codes[i+1:], true
		}
	}
	return codes, true
}

// ParseList applies the roster-list grammars to cleaned lines. Lines no
// grammar accepts are skipped.
func ParseList(lines []string) []domain.RawCandidate {
	var (
		columns []string
		out     []domain.RawCandidate
	)
	for _, line := range lines {
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}
		if cols, ok := headerColumns(tokens); ok {
			columns = cols
			continue
		}
		m, _, ok := matchRow(tokens)
		if !ok {
			continue
		}
		out = append(out, m.candidate(columns))
	}
	return out
}

func (m lineMatch) candidate(columns []string) domain.RawCandidate {
	first, last, suffix := splitName(m.names)
	c := domain.RawCandidate{
		Jersey:     m.jersey,
		HasJersey:  m.hasJersey,
		Position:   m.position,
		FirstName:  first,
		LastName:   last,
		Suffix:     suffix,
		Attributes: domain.Attributes{},
		Profile:    m.profile,
	}
	for i, tok := range m.trailing {
		if i >= len(columns) {
			break
		}
		v, ok := parseRating(tok)
		if !ok || v > maxRating {
			continue
		}
		c.Attributes[columns[i]] = v
	}
	c.SetOverall(m.overall)
	return c
}
