package errz

import (
	"fmt"
	"sort"
	"strings"
)

// maxSuggestions is the maximum number of suggestions returned by Suggest.
const maxSuggestions = 3

// Suggest returns the candidates closest to name, nearest first. Matching is
// case insensitive. Candidates further away than a distance scaled to the
// length of name are ignored.
func Suggest(name string, candidates []string) []string {
	if name == "" || len(candidates) == 0 {
		return nil
	}
	target := strings.ToLower(name)
	limit := 3
	switch {
	case len(target) <= 3:
		limit = 1
	case len(target) <= 5:
		limit = 2
	}

	type match struct {
		value    string
		distance int
	}
	var matches []match
	for _, candidate := range candidates {
		if candidate == "" || candidate == name {
			continue
		}
		if d := editDistance(target, strings.ToLower(candidate)); d <= limit {
			matches = append(matches, match{candidate, d})
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].distance != matches[j].distance {
			return matches[i].distance < matches[j].distance
		}
		return matches[i].value < matches[j].value
	})
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}
	values := make([]string, len(matches))
	for i, m := range matches {
		values[i] = m.value
	}
	return values
}

// DidYouMean formats suggestions as a hint. It returns an empty string when
// there is nothing to suggest.
func DidYouMean(suggestions []string) string {
	switch len(suggestions) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("did you mean %q?", suggestions[0])
	}
	quoted := make([]string, len(suggestions))
	for i, s := range suggestions {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return "did you mean one of " + strings.Join(quoted, ", ") + "?"
}

// editDistance is the Levenshtein distance between a and b, computed with
// two rows.
func editDistance(a, b string) int {
	ar, br := []rune(a), []rune(b)
	if len(ar) > len(br) {
		ar, br = br, ar
	}
	if len(ar) == 0 {
		return len(br)
	}
	prev := make([]int, len(ar)+1)
	curr := make([]int, len(ar)+1)
	for i := range prev {
		prev[i] = i
	}
	for j := 1; j <= len(br); j++ {
		curr[0] = j
		for i := 1; i <= len(ar); i++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(ar)]
}
