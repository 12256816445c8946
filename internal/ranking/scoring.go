// Package ranking scores extraction results and ranks batches of documents.
package ranking

import (
	"github.com/jonathan/cv-ranker/internal/types"
)

// Default weights for scoring components
const (
	DefaultSkillWeight      = 0.5
	DefaultExperienceWeight = 0.3
	DefaultEducationWeight  = 0.2
)

// Weights are the multipliers applied to each category count.
type Weights struct {
	Skill      float64
	Experience float64
	Education  float64
}

// DefaultWeights returns the built-in 0.5/0.3/0.2 weighting.
func DefaultWeights() Weights {
	return Weights{
		Skill:      DefaultSkillWeight,
		Experience: DefaultExperienceWeight,
		Education:  DefaultEducationWeight,
	}
}

// Score computes the weighted sum of the three category counts.
func (w Weights) Score(skills, experience, education int) float64 {
	return float64(skills)*w.Skill +
		float64(experience)*w.Experience +
		float64(education)*w.Education
}

// Score computes the score of an extraction result. Sentence lists count every
// entry, duplicates included.
func Score(result types.ExtractionResult, w Weights) float64 {
	return w.Score(len(result.Skills), len(result.ExperienceSentences), len(result.EducationSentences))
}

// ScoreDocument pairs a result with its score.
func ScoreDocument(name string, result types.ExtractionResult, w Weights) types.ScoredDocument {
	return types.ScoredDocument{
		Document: name,
		Result:   result,
		Score:    Score(result, w),
	}
}
