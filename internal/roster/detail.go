package roster

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"rosterscan/internal/domain"
)

const (
	minWeight = 150
	maxWeight = 400
)

var devTraits = map[string]string{
	"NORMAL": "Normal",
	"IMPACT": "Impact",
	"STAR":   "Star",
	"ELITE":  "Elite",
}

// labelWords never form part of a player's name on a detail screen.
var labelWords = map[string]bool{
	"POSITION": true, "POS": true, "CLASS": true, "YEAR": true, "HEIGHT": true,
	"HT": true, "WEIGHT": true, "WT": true, "DEV": true, "TRAIT": true,
	"OVR": true, "OVERALL": true, "NUMBER": true, "JERSEY": true,
	"ATTRIBUTES": true, "ABILITIES": true, "PIPELINE": true, "HOMETOWN": true,
	"ARCHETYPE": true, "POTENTIAL": true, "PHYSICALS": true, "MENTALS": true,
	"BIO": true, "PLAYER": true, "INFO": true, "ROSTER": true, "RATINGS": true,
}

// ParseDetail extracts a single player from a detail screen. Fields are found
// independently of line order. It returns nil unless a last name, a position
// and an overall of at least 40 were all recovered.
func ParseDetail(lines []string) []domain.RawCandidate {
	c := domain.RawCandidate{Attributes: domain.Attributes{}}
	var (
		haveName, havePos, haveBadge bool
		overall                      int
	)

	for _, line := range lines {
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}
		if !haveBadge {
			if n, ok := overallBadge(tokens); ok {
				overall, haveBadge = n, true
			}
		}
		if !havePos {
			if pos, jersey, hasJersey, redshirt, ok := positionLine(tokens); ok {
				c.Position, havePos = pos, true
				c.Jersey, c.HasJersey = jersey, hasJersey
				c.Profile.Redshirt = c.Profile.Redshirt || redshirt
			}
		}
		if !haveName {
			if first, last, suffix, ok := nameLine(tokens); ok {
				c.FirstName, c.LastName, c.Suffix = first, last, suffix
				haveName = true
			}
		}
		detailProfile(tokens, &c.Profile)
		detailAttributes(tokens, c.Attributes)
	}

	if !haveName || !havePos || !haveBadge || overall < minOverall || overall > maxOverall {
		return nil
	}
	c.SetOverall(overall)
	return []domain.RawCandidate{c}
}

// positionLine matches "Position <code> ... #<digits>".
func positionLine(tokens []string) (pos string, jersey int, hasJersey, redshirt, ok bool) {
	if len(tokens) < 2 {
		return "", 0, false, false, false
	}
	switch strings.ToUpper(strings.TrimSuffix(tokens[0], ":")) {
	case "POSITION", "POS":
	default:
		return "", 0, false, false, false
	}
	pos, ok = positionToken(strings.ToUpper(tokens[1]))
	if !ok {
		return "", 0, false, false, false
	}
	for _, tok := range tokens[2:] {
		if redshirtMarker(tok) {
			redshirt = true
			continue
		}
		if strings.HasPrefix(tok, "#") && !hasJersey {
			jersey, hasJersey = parseJersey(tok)
		}
	}
	return pos, jersey, hasJersey, redshirt, true
}

// nameLine matches a two-word capitalised name, optionally followed by a
// generational suffix.
func nameLine(tokens []string) (first, last, suffix string, ok bool) {
	n := len(tokens)
	if n == 3 && generationalSuffixes[strings.ToUpper(tokens[2])] {
		n = 2
	}
	if n != 2 {
		return "", "", "", false
	}
	for _, tok := range tokens[:n] {
		up := strings.ToUpper(strings.TrimSuffix(tok, ":"))
		if !isNameToken(tok) || !startsUpper(tok) || labelWords[up] ||
			isAttributeCode(up) || domain.IsKnownPosition(up) || isDevTrait(up) {
			return "", "", "", false
		}
		if _, year := classYear(up); year {
			return "", "", "", false
		}
	}
	first, last, suffix = splitName(tokens)
	return first, last, suffix, last != ""
}

func startsUpper(tok string) bool {
	r, _ := utf8.DecodeRuneInString(tok)
	return unicode.IsUpper(r)
}

func isDevTrait(up string) bool {
	_, ok := devTraits[up]
	return ok
}

// detailProfile fills class, height, weight and dev trait from labelled lines.
func detailProfile(tokens []string, p *domain.Profile) {
	if len(tokens) < 2 {
		return
	}
	label := strings.ToUpper(strings.TrimSuffix(tokens[0], ":"))
	rest := tokens[1:]
	switch label {
	case "CLASS", "YEAR":
		for _, tok := range rest {
			if y, ok := classYear(tok); ok && p.ClassYear == "" {
				p.ClassYear = y
			}
			if redshirtMarker(tok) || strings.EqualFold(tok, "redshirt") {
				p.Redshirt = true
			}
		}
	case "HEIGHT", "HT":
		if p.HeightInches == 0 {
			p.HeightInches = parseHeight(strings.Join(rest, ""))
		}
	case "WEIGHT", "WT":
		if p.WeightLbs != 0 {
			return
		}
		w, err := strconv.Atoi(strings.TrimSuffix(strings.ToLower(rest[0]), "lbs"))
		if err == nil && w >= minWeight && w <= maxWeight {
			p.WeightLbs = w
		}
	case "DEV":
		for _, tok := range rest {
			if trait, ok := devTraits[strings.ToUpper(tok)]; ok {
				p.DevTrait = trait
				return
			}
		}
	}
}

// parseHeight reads 6'2", 6'2, 6-2 or a plain inch count.
func parseHeight(s string) int {
	s = strings.TrimRight(s, "\"”″")
	for _, sep := range []string{"'", "’", "′", "-"} {
		feet, inches, found := strings.Cut(s, sep)
		if !found {
			continue
		}
		f, err1 := strconv.Atoi(feet)
		in, err2 := strconv.Atoi(inches)
		if err1 != nil || err2 != nil || f < 4 || f > 7 || in > 11 {
			return 0
		}
		return f*12 + in
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 48 || n > 95 {
		return 0
	}
	return n
}

// detailAttributes collects "CODE value" pairs for known attribute codes.
func detailAttributes(tokens []string, attrs domain.Attributes) {
	for i := 0; i+1 < len(tokens); i++ {
		code := strings.ToUpper(tokens[i])
		if code == domain.OverallKey || !isAttributeCode(code) {
			continue
		}
		v, ok := parseRating(tokens[i+1])
		if !ok || v > maxRating {
			continue
		}
		if _, seen := attrs[code]; !seen {
			attrs[code] = v
		}
		i++
	}
}
