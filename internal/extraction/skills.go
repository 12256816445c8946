package extraction

import (
	"strings"

	"github.com/jonathan/cv-ranker/internal/types"
)

// ExtractSkills returns the skills that occur anywhere in text, ignoring case.
// The result follows the order and spelling of the skill set, and each skill
// appears at most once however often the text mentions it.
func ExtractSkills(text string, skills types.KeywordSet) []string {
	return extractSkillsLower(strings.ToLower(text), skills)
}

func extractSkillsLower(lower string, skills types.KeywordSet) []string {
	found := make([]string, 0)
	for i := 0; i < skills.Len(); i++ {
		if strings.Contains(lower, skills.LowerTerm(i)) {
			found = append(found, skills.Term(i))
		}
	}
	return found
}
