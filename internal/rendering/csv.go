package rendering

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/jonathan/cv-ranker/internal/types"
)

// csvHeader is the first row of every CSV export
var csvHeader = []string{"document", "skills", "experience", "education", "score"}

// listSeparator joins skills and sentences inside one CSV cell
const listSeparator = "; "

// FormatScore renders a score with the shortest representation that round-trips.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

// WriteCSV writes one row per document, in the order given.
func WriteCSV(w io.Writer, docs []types.ScoredDocument) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return &ExportError{Format: "csv", Message: "failed to write header", Cause: err}
	}

	for _, doc := range docs {
		row := []string{
			doc.Document,
			strings.Join(doc.Result.Skills, listSeparator),
			strings.Join(doc.Result.ExperienceSentences, listSeparator),
			strings.Join(doc.Result.EducationSentences, listSeparator),
			FormatScore(doc.Score),
		}
		if err := writer.Write(row); err != nil {
			return &ExportError{Format: "csv", Message: "failed to write row for " + doc.Document, Cause: err}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return &ExportError{Format: "csv", Message: "failed to flush", Cause: err}
	}
	return nil
}
