package rendering

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-ranker/internal/types"
)

func sampleDocs() []types.ScoredDocument {
	return []types.ScoredDocument{
		{
			Document: "alice.txt",
			Result: types.ExtractionResult{
				Skills:              []string{"Python", "SQL"},
				ExperienceSentences: []string{"Worked at Acme, then Globex.", "5 years of experience."},
				EducationSentences:  []string{"Bachelor degree in CS."},
			},
			Score: 1.8,
		},
		{
			Document: "bob.txt",
			Result:   types.NewExtractionResult(),
			Score:    0,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleDocs()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"document", "skills", "experience", "education", "score"}, records[0])
	assert.Equal(t, []string{
		"alice.txt",
		"Python; SQL",
		"Worked at Acme, then Globex.; 5 years of experience.",
		"Bachelor degree in CS.",
		"1.8",
	}, records[1])
	assert.Equal(t, []string{"bob.txt", "", "", "", "0"}, records[2])
}

func TestWriteCSV_EmptyBatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	assert.Equal(t, "document,skills,experience,education,score\n", buf.String())
}

func TestWriteCSV_QuotesSpecialCharacters(t *testing.T) {
	docs := []types.ScoredDocument{{
		Document: `cv "final".txt`,
		Result: types.ExtractionResult{
			ExperienceSentences: []string{"Line one\nline two role"},
		},
		Score: 0.3,
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, docs))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, `cv "final".txt`, records[1][0])
	assert.Equal(t, "Line one\nline two role", records[1][2])
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteCSV_WriteFailure(t *testing.T) {
	err := WriteCSV(failingWriter{}, sampleDocs())
	require.Error(t, err)

	var exportErr *ExportError
	require.True(t, errors.As(err, &exportErr))
	assert.Equal(t, "csv", exportErr.Format)
	assert.Contains(t, err.Error(), "disk full")
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "1.8", FormatScore(1.8))
	assert.Equal(t, "0", FormatScore(0))
	assert.Equal(t, "2.5", FormatScore(2.5))
	assert.Equal(t, "0.30000000000000004", FormatScore(0.1+0.2))
}

func TestWriteCSVFile_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "ranking.csv")

	require.NoError(t, WriteCSVFile(path, sampleDocs()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "alice.txt,Python; SQL")
}
