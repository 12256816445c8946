// Package types provides type definitions for structured data used throughout the cv-ranker system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ExtractionResult holds the signals found in one document.
// Skills follow the configured skill order; the sentence lists follow document order
// and may repeat text when the document repeats a sentence.
type ExtractionResult struct {
	Skills              []string `json:"skills"`
	ExperienceSentences []string `json:"experience_sentences"`
	EducationSentences  []string `json:"education_sentences"`
}

// NewExtractionResult returns a result with empty, non-nil lists.
func NewExtractionResult() ExtractionResult {
	return ExtractionResult{
		Skills:              []string{},
		ExperienceSentences: []string{},
		EducationSentences:  []string{},
	}
}

// ScoredDocument is a document's extraction result and its weighted score.
type ScoredDocument struct {
	Document string           `json:"document"`
	Result   ExtractionResult `json:"result"`
	Score    float64          `json:"score"`
}

// SkillCount is one row of a cross-document skill frequency table.
type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// HistogramBucket is one equal-width score bucket.
type HistogramBucket struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// RankingReport is the serialized output of a ranking run.
type RankingReport struct {
	RunID          string            `json:"run_id,omitempty"`
	GeneratedAt    string            `json:"generated_at"` // RFC3339 format
	DocumentCount  int               `json:"document_count"`
	Ranked         []ScoredDocument  `json:"ranked"`
	SkillFrequency []SkillCount      `json:"skill_frequency"`
	Histogram      []HistogramBucket `json:"histogram"`
}
