package roster

import "strings"

var generationalSuffixes = map[string]bool{
	"JR": true, "JR.": true, "SR": true, "SR.": true,
	"II": true, "III": true, "IV": true, "V": true,
}

// splitName turns name tokens into first, last and suffix. A trailing
// generational suffix is removed first; the last remaining token is the last
// name and everything before it the first name.
func splitName(tokens []string) (first, last, suffix string) {
	tokens = expandInitials(tokens)
	if n := len(tokens); n > 1 && generationalSuffixes[strings.ToUpper(tokens[n-1])] {
		suffix = tokens[n-1]
		tokens = tokens[:n-1]
	}
	if len(tokens) == 0 {
		return "", "", suffix
	}
	last = tokens[len(tokens)-1]
	first = strings.Join(tokens[:len(tokens)-1], " ")
	return first, last, suffix
}

// expandInitials splits run-together abbreviations like "J.Smith" into "J." "Smith".
func expandInitials(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		i := strings.LastIndex(tok, ".")
		if i <= 0 || i == len(tok)-1 {
			out = append(out, tok)
			continue
		}
		out = append(out, tok[:i+1], tok[i+1:])
	}
	return out
}
