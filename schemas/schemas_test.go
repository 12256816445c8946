package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-ranker/internal/schemas"
)

var schemaFiles = []string{
	"ranking_report.schema.json",
}

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err, "should be able to read schema file")

			var schemaObj map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &schemaObj), "schema file should be valid JSON: %s", schemaFile)

			assert.Equal(t, "http://json-schema.org/draft-07/schema#", schemaObj["$schema"])
			assert.Equal(t, "object", schemaObj["type"])
		})
	}
}

func TestRankingReport_EmptyRunIsValid(t *testing.T) {
	doc := `{
		"generated_at": "2024-01-01T00:00:00Z",
		"document_count": 0,
		"ranked": [],
		"skill_frequency": [],
		"histogram": []
	}`

	assert.NoError(t, schemas.ValidateJSONBytes("ranking_report.schema.json", []byte(doc)))
}

func TestRankingReport_RejectsDuplicateSkills(t *testing.T) {
	doc := `{
		"generated_at": "2024-01-01T00:00:00Z",
		"document_count": 1,
		"ranked": [{
			"document": "alice.txt",
			"result": {"skills": ["SQL", "SQL"], "experience_sentences": [], "education_sentences": []},
			"score": 1.0
		}],
		"skill_frequency": [{"skill": "SQL", "count": 1}],
		"histogram": [{"lower": 1.0, "upper": 1.0, "count": 1}]
	}`

	err := schemas.ValidateJSONBytes("ranking_report.schema.json", []byte(doc))
	require.Error(t, err)
	_, ok := err.(*schemas.ValidationError)
	assert.True(t, ok)
}

func TestRankingReport_RejectsNegativeScore(t *testing.T) {
	doc := `{
		"generated_at": "2024-01-01T00:00:00Z",
		"document_count": 1,
		"ranked": [{
			"document": "alice.txt",
			"result": {"skills": [], "experience_sentences": [], "education_sentences": []},
			"score": -0.5
		}],
		"skill_frequency": [],
		"histogram": []
	}`

	assert.Error(t, schemas.ValidateJSONBytes("ranking_report.schema.json", []byte(doc)))
}
