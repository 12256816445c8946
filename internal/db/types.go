package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/cv-ranker/internal/types"
)

// Run status values
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// Run represents a ranking run record
type Run struct {
	ID            uuid.UUID  `json:"id"`
	Label         string     `json:"label"`
	Status        string     `json:"status"`
	DocumentCount int        `json:"document_count"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// RunDocument is a scored document stored under a run, with its position in the ranking
type RunDocument struct {
	ID                  uuid.UUID `json:"id"`
	RunID               uuid.UUID `json:"run_id"`
	Rank                int       `json:"rank"`
	Name                string    `json:"name"`
	Score               float64   `json:"score"`
	Skills              []string  `json:"skills"`
	ExperienceSentences []string  `json:"experience_sentences"`
	EducationSentences  []string  `json:"education_sentences"`
	CreatedAt           time.Time `json:"created_at"`
}

// ToScoredDocument converts the record back to the in-memory form.
func (d RunDocument) ToScoredDocument() types.ScoredDocument {
	result := types.NewExtractionResult()
	result.Skills = append(result.Skills, d.Skills...)
	result.ExperienceSentences = append(result.ExperienceSentences, d.ExperienceSentences...)
	result.EducationSentences = append(result.EducationSentences, d.EducationSentences...)

	return types.ScoredDocument{
		Document: d.Name,
		Result:   result,
		Score:    d.Score,
	}
}

// nonNil keeps TEXT[] NOT NULL columns from receiving NULL
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
