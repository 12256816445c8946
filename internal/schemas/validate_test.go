package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"},
		"score": {"type": "number"}
	}
}`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateJSON_Valid(t *testing.T) {
	schemaPath := writeTemp(t, "schema.json", personSchema)
	jsonPath := writeTemp(t, "doc.json", `{"name": "alice.txt", "score": 1.8}`)

	assert.NoError(t, ValidateJSON(schemaPath, jsonPath))
}

func TestValidateJSON_MissingField(t *testing.T) {
	schemaPath := writeTemp(t, "schema.json", personSchema)
	jsonPath := writeTemp(t, "doc.json", `{"score": 1.8}`)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.NotEmpty(t, validationErr.Errors)
}

func TestValidateJSON_WrongType(t *testing.T) {
	schemaPath := writeTemp(t, "schema.json", personSchema)
	jsonPath := writeTemp(t, "doc.json", `{"name": "alice.txt", "score": "high"}`)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Equal(t, "score", validationErr.Errors[0].Field)
}

func TestValidateJSON_NonExistentFiles(t *testing.T) {
	schemaPath := writeTemp(t, "schema.json", personSchema)

	err := ValidateJSON("testdata/nonexistent_schema.json", schemaPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema file not found")

	err = ValidateJSON(schemaPath, "testdata/nonexistent_json.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON file not found")
}

func TestValidateJSON_MalformedSchema(t *testing.T) {
	schemaPath := writeTemp(t, "schema.json", "{ not a schema")
	jsonPath := writeTemp(t, "doc.json", `{"name": "x"}`)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	_, ok := err.(*SchemaLoadError)
	assert.True(t, ok, "error should be SchemaLoadError type")
}

func TestValidateJSONBytes(t *testing.T) {
	schemaPath := writeTemp(t, "schema.json", personSchema)

	assert.NoError(t, ValidateJSONBytes(schemaPath, []byte(`{"name": "bob.pdf"}`)))

	err := ValidateJSONBytes(schemaPath, []byte(`{}`))
	require.Error(t, err)
	_, ok := err.(*ValidationError)
	assert.True(t, ok)
}

func TestValidateJSONString_Valid(t *testing.T) {
	assert.NoError(t, ValidateJSONString(personSchema, `{"name": "test"}`))
}

func TestValidateJSONString_NestedField(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["result"],
		"properties": {
			"result": {
				"type": "object",
				"required": ["skills"],
				"properties": {"skills": {"type": "array"}}
			}
		}
	}`

	err := ValidateJSONString(schemaContent, `{"result": {}}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "result", validationErr.Errors[0].Field)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "ranked", Message: "is required"},
			{Field: "score", Message: "must be a number"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "1. ranked: is required")
	assert.Contains(t, errorMsg, "2. score: must be a number")
}

func TestResolveSchemaPath(t *testing.T) {
	path := ResolveSchemaPath(RankingReport)
	require.NotEmpty(t, path, "ranking report schema should resolve from the package directory")
	assert.True(t, filepath.IsAbs(path))

	assert.Empty(t, ResolveSchemaPath("schemas/does_not_exist.schema.json"))
}

func TestRankingReportSchema(t *testing.T) {
	schemaPath := ResolveSchemaPath(RankingReport)
	require.NotEmpty(t, schemaPath)

	valid := `{
		"generated_at": "2024-01-01T00:00:00Z",
		"document_count": 1,
		"ranked": [{
			"document": "alice.txt",
			"result": {"skills": ["Python"], "experience_sentences": ["Worked at Acme."], "education_sentences": []},
			"score": 0.8
		}],
		"skill_frequency": [{"skill": "Python", "count": 1}],
		"histogram": [{"lower": 0.8, "upper": 0.8, "count": 1}]
	}`
	assert.NoError(t, ValidateJSONBytes(schemaPath, []byte(valid)))

	missingResult := `{
		"generated_at": "2024-01-01T00:00:00Z",
		"document_count": 1,
		"ranked": [{"document": "alice.txt", "score": 0.8}],
		"skill_frequency": [],
		"histogram": []
	}`
	err := ValidateJSONBytes(schemaPath, []byte(missingResult))
	require.Error(t, err)
	_, ok := err.(*ValidationError)
	assert.True(t, ok)
}
