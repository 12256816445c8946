package extraction

import (
	"strings"

	"github.com/jonathan/cv-ranker/internal/types"
)

// Matches reports whether any keyword occurs in sentence, ignoring case.
// Matching is plain substring containment, not word-boundary aware:
// "JavaScript" matches "Java" and "PhDcandidate" matches "PhD".
func Matches(sentence string, keywords types.KeywordSet) bool {
	return matchesLower(strings.ToLower(sentence), keywords)
}

func matchesLower(lower string, keywords types.KeywordSet) bool {
	for i := 0; i < keywords.Len(); i++ {
		if strings.Contains(lower, keywords.LowerTerm(i)) {
			return true
		}
	}
	return false
}
