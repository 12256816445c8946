package rendering

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/cv-ranker/internal/ranking"
	"github.com/jonathan/cv-ranker/internal/types"
)

// BuildReport assembles the ranked documents, the skill frequency table and
// the score histogram of a batch. runID may be empty.
func BuildReport(batch *ranking.Batch, buckets int, runID string) types.RankingReport {
	return types.RankingReport{
		RunID:          runID,
		GeneratedAt:    time.Now().UTC().Format(time.RFC3339),
		DocumentCount:  batch.Len(),
		Ranked:         batch.RankedDescending(),
		SkillFrequency: batch.SkillFrequencyTable(),
		Histogram:      batch.ScoreHistogram(buckets),
	}
}

// MarshalReport renders the report as indented JSON.
func MarshalReport(report types.RankingReport) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, &ExportError{Format: "json", Message: "failed to marshal report", Cause: err}
	}
	return data, nil
}

// WriteReportFile writes the report to path, creating parent directories.
func WriteReportFile(path string, report types.RankingReport) error {
	data, err := MarshalReport(report)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &ExportError{Format: "json", Message: fmt.Sprintf("failed to create output directory %s", dir), Cause: err}
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return &ExportError{Format: "json", Message: fmt.Sprintf("failed to write %s", path), Cause: err}
	}
	return nil
}

// WriteCSVFile writes the CSV export to path.
func WriteCSVFile(path string, docs []types.ScoredDocument) (err error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &ExportError{Format: "csv", Message: fmt.Sprintf("failed to create output directory %s", dir), Cause: err}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return &ExportError{Format: "csv", Message: fmt.Sprintf("failed to create %s", path), Cause: err}
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = &ExportError{Format: "csv", Message: fmt.Sprintf("failed to close %s", path), Cause: closeErr}
		}
	}()

	return WriteCSV(f, docs)
}
