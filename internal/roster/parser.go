// Package roster turns cleaned screen text into candidate player records.
// Roster tables are matched line by line against an ordered list of row
// grammars; single-player detail screens are read field by field.
package roster

import "rosterscan/internal/domain"

// Parse tries the roster-list grammars first and falls back to the detail
// grammar when the list yields nothing.
func Parse(lines []string) []domain.RawCandidate {
	if out := ParseList(lines); len(out) > 0 {
		return out
	}
	return ParseDetail(lines)
}

// ParseAs tries the grammar for the classified screen first and the other
// one second, since classification is only a hint.
func ParseAs(lines []string, screen domain.ScreenType) []domain.RawCandidate {
	if screen != domain.ScreenDetail {
		return Parse(lines)
	}
	if out := ParseDetail(lines); len(out) > 0 {
		return out
	}
	return ParseList(lines)
}
