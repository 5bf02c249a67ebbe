// Package substitution applies an ordered pattern set to text.
package substitution

import "github.com/eugenenazirov/regex-filter/internal/patterns"

// Apply runs every pattern of set over text in order. Each step replaces all
// non-overlapping matches and feeds its output into the next step, so later
// patterns can match text produced by earlier replacements.
func Apply(text string, set *patterns.Set) string {
	out, _ := ApplyCount(text, set)
	return out
}

// ApplyCount behaves like Apply and also reports how many matches were replaced.
func ApplyCount(text string, set *patterns.Set) (string, int) {
	total := 0
	for _, p := range set.Patterns() {
		re := p.Regexp()
		matches := len(re.FindAllStringIndex(text, -1))
		if matches == 0 {
			continue
		}
		total += matches
		text = re.ReplaceAllString(text, p.Replacement)
	}
	return text, total
}
