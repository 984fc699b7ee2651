package roster

import (
	"strings"

	"rosterscan/internal/domain"
)

// detailKeywords are tab and section labels only single-player screens show.
var detailKeywords = []string{
	"ATTRIBUTES", "ABILITIES", "DEV TRAIT", "PIPELINE", "HOMETOWN",
	"ARCHETYPE", "POTENTIAL", "PHYSICALS", "MENTALS", "BIO",
}

// Classify decides whether cleaned lines come from a roster list or a player
// detail screen. The answer is a hint; ParseAs still tries both grammars.
func Classify(lines []string) domain.ScreenType {
	keywords := map[string]bool{}
	labels := map[string]bool{}
	badge := false

	for _, line := range lines {
		if line == "" {
			continue
		}
		padded := " " + strings.ToUpper(line) + " "
		for _, kw := range detailKeywords {
			if strings.Contains(padded, " "+kw+" ") {
				keywords[kw] = true
			}
		}
		tokens := strings.Fields(line)
		if label, ok := labeledField(tokens); ok {
			labels[label] = true
		}
		if _, ok := overallBadge(tokens); ok {
			badge = true
		}
	}

	switch {
	case len(keywords) >= 2, len(labels) >= 2, badge && len(labels) >= 1:
		return domain.ScreenDetail
	default:
		return domain.ScreenList
	}
}

// labeledField recognises "Position <code>", "Class <year>", "Height <digits>"
// and "Weight <digits>" at the start of a line.
func labeledField(tokens []string) (string, bool) {
	if len(tokens) < 2 {
		return "", false
	}
	label := strings.ToUpper(strings.TrimSuffix(tokens[0], ":"))
	value := tokens[1]
	switch label {
	case "POSITION", "POS":
		if _, ok := positionToken(strings.ToUpper(value)); ok {
			return "position", true
		}
	case "CLASS", "YEAR":
		if _, ok := classYear(value); ok {
			return "class", true
		}
	case "HEIGHT", "HT":
		if startsWithDigit(value) {
			return "height", true
		}
	case "WEIGHT", "WT":
		if startsWithDigit(value) {
			return "weight", true
		}
	}
	return "", false
}

// overallBadge finds "84 OVR" or "OVR 84" in a line.
func overallBadge(tokens []string) (int, bool) {
	for i, tok := range tokens {
		if strings.ToUpper(tok) != domain.OverallKey {
			continue
		}
		if i > 0 {
			if n, ok := parseRating(tokens[i-1]); ok {
				return n, true
			}
		}
		if i+1 < len(tokens) {
			if n, ok := parseRating(tokens[i+1]); ok {
				return n, true
			}
		}
	}
	return 0, false
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}
