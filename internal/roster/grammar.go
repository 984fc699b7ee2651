package roster

import "rosterscan/internal/domain"

// lineMatch is what a list grammar captured from one row.
type lineMatch struct {
	jersey    int
	hasJersey bool
	position  string
	names     []string
	overall   int
	trailing  []string
	profile   domain.Profile
}

// lineGrammar is one row shape. Grammars are tried in order and the first
// match wins, so the most distinctive anchors come first.
type lineGrammar struct {
	name  string
	match func(tokens []string) (lineMatch, bool)
}

var listGrammars = []lineGrammar{
	{name: "jersey_position_name_overall", match: matchJerseyPositionName},
	{name: "position_jersey_name_overall", match: matchPositionJerseyName},
	{name: "name_position_jersey_overall", match: matchNamePositionJersey},
	{name: "name_year_position_overall", match: matchNameYearPosition},
}

// matchRow runs the grammars over tokens and returns the first match.
func matchRow(tokens []string) (lineMatch, string, bool) {
	for _, g := range listGrammars {
		if m, ok := g.match(tokens); ok {
			return m, g.name, true
		}
	}
	return lineMatch{}, "", false
}

// nameRun returns the index just past the run of name tokens starting at from.
func nameRun(tokens []string, from int) int {
	i := from
	for i < len(tokens) && isNameToken(tokens[i]) {
		i++
	}
	return i
}

// <jersey> <position> <name...> <overall> [attr...]
func matchJerseyPositionName(tokens []string) (lineMatch, bool) {
	if len(tokens) < 4 {
		return lineMatch{}, false
	}
	jersey, ok := parseJersey(tokens[0])
	if !ok {
		return lineMatch{}, false
	}
	pos, ok := positionToken(tokens[1])
	if !ok {
		return lineMatch{}, false
	}
	end := nameRun(tokens, 2)
	if end == 2 || end >= len(tokens) {
		return lineMatch{}, false
	}
	overall, ok := parseOverall(tokens[end])
	if !ok {
		return lineMatch{}, false
	}
	return lineMatch{
		jersey:    jersey,
		hasJersey: true,
		position:  pos,
		names:     tokens[2:end],
		overall:   overall,
		trailing:  tokens[end+1:],
	}, true
}

// <position> <jersey> <name...> <overall> [attr...]
func matchPositionJerseyName(tokens []string) (lineMatch, bool) {
	if len(tokens) < 4 {
		return lineMatch{}, false
	}
	pos, ok := positionToken(tokens[0])
	if !ok {
		return lineMatch{}, false
	}
	jersey, ok := parseJersey(tokens[1])
	if !ok {
		return lineMatch{}, false
	}
	end := nameRun(tokens, 2)
	if end == 2 || end >= len(tokens) {
		return lineMatch{}, false
	}
	overall, ok := parseOverall(tokens[end])
	if !ok {
		return lineMatch{}, false
	}
	return lineMatch{
		jersey:    jersey,
		hasJersey: true,
		position:  pos,
		names:     tokens[2:end],
		overall:   overall,
		trailing:  tokens[end+1:],
	}, true
}

// <name...> <position> <jersey> <overall> [attr...]
func matchNamePositionJersey(tokens []string) (lineMatch, bool) {
	end := nameRun(tokens, 0)
	// The position code is itself a name-shaped token, so try each split point.
	for i := 1; i <= end && i+2 < len(tokens); i++ {
		pos, ok := positionToken(tokens[i])
		if !ok {
			continue
		}
		jersey, ok := parseJersey(tokens[i+1])
		if !ok {
			continue
		}
		overall, ok := parseOverall(tokens[i+2])
		if !ok {
			continue
		}
		return lineMatch{
			jersey:    jersey,
			hasJersey: true,
			position:  pos,
			names:     tokens[:i],
			overall:   overall,
			trailing:  tokens[i+3:],
		}, true
	}
	return lineMatch{}, false
}

// <name> <year-code> [(RS)|(R)] <position> <overall[+]>; no jersey column.
func matchNameYearPosition(tokens []string) (lineMatch, bool) {
	end := nameRun(tokens, 0)
	for y := 1; y <= end && y+2 < len(tokens); y++ {
		year, ok := yearCode(tokens[y])
		if !ok {
			continue
		}
		next := y + 1
		redshirt := false
		if redshirtMarker(tokens[next]) {
			redshirt = true
			next++
		}
		if next+1 >= len(tokens) {
			continue
		}
		pos, ok := positionToken(tokens[next])
		if !ok {
			continue
		}
		overall, ok := parseOverall(tokens[next+1])
		if !ok {
			continue
		}
		return lineMatch{
			position: pos,
			names:    tokens[:y],
			overall:  overall,
			trailing: tokens[next+2:],
			profile:  domain.Profile{ClassYear: year, Redshirt: redshirt},
		}, true
	}
	return lineMatch{}, false
}
