package extraction

import (
	"testing"

	"github.com/jonathan/cv-ranker/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestExtractSkills_CaseInsensitive(t *testing.T) {
	skills := types.MustKeywordSet("skills", "Python")
	assert.Equal(t, []string{"Python"}, ExtractSkills("I know PYTHON well", skills))
}

func TestExtractSkills_ConfiguredOrderNotDocumentOrder(t *testing.T) {
	skills := types.MustKeywordSet("skills", "Python", "SQL", "Java")
	got := ExtractSkills("Java first, then SQL, and finally Python.", skills)
	assert.Equal(t, []string{"Python", "SQL", "Java"}, got)
}

func TestExtractSkills_EachSkillOnce(t *testing.T) {
	skills := types.MustKeywordSet("skills", "SQL")
	assert.Equal(t, []string{"SQL"}, ExtractSkills("SQL, sql, and more SQL", skills))
}

func TestExtractSkills_WholeDocumentAcrossSentences(t *testing.T) {
	skills := types.MustKeywordSet("skills", "SQL", "Machine Learning")
	text := "SUMMARY\nAnalyst.\n\nPROJECTS\n- Built machine learning pipelines"
	assert.Equal(t, []string{"Machine Learning"}, ExtractSkills(text, skills))
}

func TestExtractSkills_NoMatches(t *testing.T) {
	skills := types.MustKeywordSet("skills", "Python", "SQL")
	got := ExtractSkills("", skills)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestExtractSkills_Idempotent(t *testing.T) {
	skills := types.MustKeywordSet("skills", "Python", "SQL", "Java", "Project Management")
	text := "Project management of Java and Python teams."
	assert.Equal(t, ExtractSkills(text, skills), ExtractSkills(text, skills))
}
