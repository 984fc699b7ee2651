// Package textnorm cleans raw OCR output before it reaches the roster grammars.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// bracketConfusions maps bracket glyphs OCR substitutes for parentheses.
var bracketConfusions = strings.NewReplacer(
	"[", "(",
	"{", "(",
	"]", ")",
	"}", ")",
)

// digitConfusions maps letters read in place of digits inside numeric tokens.
var digitConfusions = map[rune]rune{
	'O': '0',
	'o': '0',
	'l': '1',
	'I': '1',
	'|': '1',
}

// maxNumericToken bounds the tokens treated as numbers (ratings, jerseys).
const maxNumericToken = 3

// Normalize splits raw OCR text into lines and cleans each one. The result has
// exactly one entry per physical input line; lines that clean to nothing are
// kept as empty strings.
func Normalize(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	lines := strings.Split(raw, "\n")
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = NormalizeLine(line)
	}
	return out
}

// NormalizeLine cleans a single line. Applying it to its own output is a no-op.
func NormalizeLine(line string) string {
	line = norm.NFKC.String(line)
	line = bracketConfusions.Replace(line)
	line = stripDecorations(line)

	var tokens []string
	for _, tok := range strings.Fields(line) {
		if strings.Trim(tok, "|") == "" {
			continue
		}
		tokens = append(tokens, fixNumericToken(tok))
	}
	// Bullets are stripped after token cleanup so "-|" or ">|" go in one pass.
	for len(tokens) > 0 && isBullet(tokens[0]) {
		tokens = tokens[1:]
	}
	fixIsolatedDigits(tokens)
	return strings.Join(tokens, " ")
}

// stripDecorations replaces highlight and drawing glyphs with spaces.
func stripDecorations(s string) string {
	return strings.Map(func(r rune) rune {
		if isDecoration(r) {
			return ' '
		}
		if unicode.IsControl(r) && r != '\t' {
			return ' '
		}
		return r
	}, s)
}

func isDecoration(r rune) bool {
	switch {
	case r >= 0x2500 && r <= 0x259F: // box drawing, block elements
		return true
	case r >= 0x25A0 && r <= 0x25FF: // geometric shapes (row markers)
		return true
	case r >= 0x2190 && r <= 0x21FF: // arrows
		return true
	case r >= 0x2600 && r <= 0x2606: // stars
		return true
	}
	switch r {
	case '»', '«', '•', '·', '➡', '➤', '❯', '›', '‹':
		return true
	}
	return false
}

func isBullet(tok string) bool {
	switch tok {
	case ">", ">>", "-", "--", "*", "~", "=":
		return true
	}
	return false
}

// fixNumericToken rewrites letter confusions in a short token that already
// contains at least one real digit, e.g. "8O" -> "80", "l2" -> "12", "9I+" -> "91+".
// Pipes OCR inserts inside other tokens are dropped.
func fixNumericToken(tok string) string {
	if fixed, ok := numericFix(tok); ok {
		return fixed
	}
	tok = strings.ReplaceAll(tok, "|", "")
	if fixed, ok := numericFix(tok); ok {
		return fixed
	}
	return tok
}

func numericFix(tok string) (string, bool) {
	body, plus := strings.CutSuffix(tok, "+")
	if body == "" || len(body) > maxNumericToken {
		return "", false
	}
	hasDigit := false
	for _, r := range body {
		if r >= '0' && r <= '9' {
			hasDigit = true
			continue
		}
		if _, ok := digitConfusions[r]; !ok {
			return "", false
		}
	}
	if !hasDigit {
		return "", false
	}
	fixed := strings.Map(func(r rune) rune {
		if d, ok := digitConfusions[r]; ok {
			return d
		}
		return r
	}, body)
	if plus {
		fixed += "+"
	}
	return fixed, true
}

// fixIsolatedDigits rewrites lone "O"/"o"/"l" tokens that sit next to a
// numeric token. It repeats until nothing changes so a second run finds
// nothing left to fix.
func fixIsolatedDigits(tokens []string) {
	for changed := true; changed; {
		changed = false
		for i, tok := range tokens {
			if tok != "O" && tok != "o" && tok != "l" {
				continue
			}
			if (i > 0 && isDigits(tokens[i-1])) || (i+1 < len(tokens) && isDigits(tokens[i+1])) {
				tokens[i] = string(digitConfusions[rune(tok[0])])
				changed = true
			}
		}
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
