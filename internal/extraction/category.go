package extraction

import (
	"strings"

	"github.com/jonathan/cv-ranker/internal/types"
)

// ExtractCategory returns, in document order, the text of every sentence that
// matches keywords.
func ExtractCategory(text string, keywords types.KeywordSet) []string {
	return collect(SegmentSentences(text), keywords)
}

func collect(sentences []types.Sentence, keywords types.KeywordSet) []string {
	matched := make([]string, 0)
	for _, s := range sentences {
		if Matches(s.Text, keywords) {
			matched = append(matched, s.Text)
		}
	}
	return matched
}

// Extractor runs skill and category extraction with a fixed set of keyword sets.
// It holds no mutable state and is safe for concurrent use.
type Extractor struct {
	skills     types.KeywordSet
	experience types.KeywordSet
	education  types.KeywordSet
}

// NewExtractor creates an Extractor for the given keyword sets.
func NewExtractor(skills, experience, education types.KeywordSet) *Extractor {
	return &Extractor{
		skills:     skills,
		experience: experience,
		education:  education,
	}
}

// Extract finds the signals in doc. The document is segmented once and each
// sentence is classified against the experience and education sets
// independently, so a sentence may appear in both lists.
func (e *Extractor) Extract(doc types.Document) types.ExtractionResult {
	return e.ExtractText(doc.Text)
}

// ExtractText is Extract for bare text.
func (e *Extractor) ExtractText(text string) types.ExtractionResult {
	result := types.NewExtractionResult()
	result.Skills = extractSkillsLower(strings.ToLower(text), e.skills)

	for _, s := range SegmentSentences(text) {
		lower := strings.ToLower(s.Text)
		if matchesLower(lower, e.experience) {
			result.ExperienceSentences = append(result.ExperienceSentences, s.Text)
		}
		if matchesLower(lower, e.education) {
			result.EducationSentences = append(result.EducationSentences, s.Text)
		}
	}

	return result
}

// Skills returns the skill set the extractor matches against.
func (e *Extractor) Skills() types.KeywordSet {
	return e.skills
}
