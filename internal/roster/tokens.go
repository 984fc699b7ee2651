package roster

import (
	"strconv"
	"strings"
	"unicode"

	"rosterscan/internal/domain"
)

const (
	minOverall = 40
	maxOverall = 99
	maxJersey  = 99
	maxRating  = 99
)

// parseNumber accepts a plain 1–3 digit token.
func parseNumber(tok string) (int, bool) {
	if tok == "" || len(tok) > 3 {
		return 0, false
	}
	for _, r := range tok {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseRating accepts a number with an optional trailing "+" (progression marker).
func parseRating(tok string) (int, bool) {
	return parseNumber(strings.TrimSuffix(tok, "+"))
}

func parseJersey(tok string) (int, bool) {
	n, ok := parseNumber(strings.TrimPrefix(tok, "#"))
	if !ok || n > maxJersey {
		return 0, false
	}
	return n, true
}

func parseOverall(tok string) (int, bool) {
	n, ok := parseRating(tok)
	if !ok || n < minOverall || n > maxOverall {
		return 0, false
	}
	return n, true
}

// positionToken reports whether tok looks like an on-screen position code and
// returns its corrected form. Mixed-case words ("Will") are names, not codes.
func positionToken(tok string) (string, bool) {
	if tok == "" || len(tok) > 4 {
		return "", false
	}
	hasLetter := false
	for _, r := range tok {
		switch {
		case r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= '0' && r <= '9':
		default:
			return "", false
		}
	}
	if !hasLetter {
		return "", false
	}
	return domain.CorrectPosition(tok)
}

// isNameToken accepts words made of letters plus the punctuation names carry.
func isNameToken(tok string) bool {
	hasLetter := false
	for _, r := range tok {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case r == '.' || r == '\'' || r == '-' || r == '’':
		default:
			return false
		}
	}
	return hasLetter
}

func allNameTokens(toks []string) bool {
	if len(toks) == 0 {
		return false
	}
	for _, t := range toks {
		if !isNameToken(t) {
			return false
		}
	}
	return true
}

// redshirtMarker matches the "(RS)" / "(R)" annotation.
func redshirtMarker(tok string) bool {
	switch strings.ToUpper(tok) {
	case "(RS)", "(R)":
		return true
	}
	return false
}

var classYears = map[string]string{
	"FR": "FR", "FR.": "FR", "FRESHMAN": "FR",
	"SO": "SO", "SO.": "SO", "SOPHOMORE": "SO",
	"JR": "JR", "JR.": "JR", "JUNIOR": "JR",
	"SR": "SR", "SR.": "SR", "SENIOR": "SR",
}

// yearCode matches the short class-year column of list layouts.
func yearCode(tok string) (string, bool) {
	switch strings.ToUpper(tok) {
	case "FR", "SO", "JR", "SR":
		return strings.ToUpper(tok), true
	}
	return "", false
}

// classYear matches a year word on a detail screen's class line.
func classYear(tok string) (string, bool) {
	y, ok := classYears[strings.ToUpper(tok)]
	return y, ok
}

func isAttributeCode(tok string) bool {
	return domain.AttributeCodes[tok]
}
