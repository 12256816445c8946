// Package pipeline orchestrates a ranking run: load documents, extract and score
// them, then persist, export and print the results.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jonathan/cv-ranker/internal/config"
	"github.com/jonathan/cv-ranker/internal/db"
	"github.com/jonathan/cv-ranker/internal/extraction"
	"github.com/jonathan/cv-ranker/internal/ingestion"
	"github.com/jonathan/cv-ranker/internal/observability"
	"github.com/jonathan/cv-ranker/internal/ranking"
	"github.com/jonathan/cv-ranker/internal/rendering"
	"github.com/jonathan/cv-ranker/internal/schemas"
	"github.com/jonathan/cv-ranker/internal/types"
)

// Pipeline stages reported through ProgressCallback
const (
	StageLoad    = "load"
	StageRank    = "rank"
	StagePersist = "persist"
	StageExport  = "export"
)

// ProgressEvent represents a progress update during a run
type ProgressEvent struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Store persists ranking runs. *db.DB implements it.
type Store interface {
	CreateRun(ctx context.Context, label string) (uuid.UUID, error)
	SaveScoredDocuments(ctx context.Context, runID uuid.UUID, docs []types.ScoredDocument) error
	CompleteRun(ctx context.Context, runID uuid.UUID, status string) error
}

// RunOptions holds configuration for a ranking run
type RunOptions struct {
	Paths      []string       // Files or directories to rank
	Config     *config.Config // Required: resolved configuration
	Buckets    int            // Histogram buckets; 0 uses the configured value
	Label      string         // Stored with the run when persisting
	Store      Store          // Optional: persist the run
	CSVPath    string         // Optional: write the CSV export here
	JSONPath   string         // Optional: write the JSON report here
	Provider   ingestion.TextProvider
	Printer    *observability.Printer // Optional: print the ranking and charts
	Log        *logrus.Entry
	OnProgress ProgressCallback
}

// Result is the outcome of a run
type Result struct {
	RunID    uuid.UUID
	Batch    *ranking.Batch
	Report   types.RankingReport
	Failures []ingestion.FileFailure
}

func emitProgress(opts *RunOptions, stage, message string, runID uuid.UUID) {
	if opts.OnProgress == nil {
		return
	}
	event := ProgressEvent{Stage: stage, Message: message}
	if runID != uuid.Nil {
		event.RunID = runID.String()
	}
	opts.OnProgress(event)
}

// NewExtractor builds an extractor from the configured keyword sets.
func NewExtractor(cfg *config.Config) (*extraction.Extractor, error) {
	sets, err := cfg.KeywordSets()
	if err != nil {
		return nil, err
	}
	return extraction.NewExtractor(sets.Skills, sets.Experience, sets.Education), nil
}

// Weights converts the configured weights.
func Weights(cfg *config.Config) ranking.Weights {
	if cfg.Weights == nil {
		return ranking.DefaultWeights()
	}
	return ranking.Weights{
		Skill:      cfg.Weights.Skill,
		Experience: cfg.Weights.Experience,
		Education:  cfg.Weights.Education,
	}
}

// RankDocuments extracts and scores docs with cfg and builds the report.
// buckets of 0 uses the configured histogram bucket count.
func RankDocuments(ctx context.Context, cfg *config.Config, docs []types.Document, buckets int) (*ranking.Batch, types.RankingReport, error) {
	extractor, err := NewExtractor(cfg)
	if err != nil {
		return nil, types.RankingReport{}, err
	}

	batch, err := ranking.ProcessAll(ctx, docs, extractor, Weights(cfg), cfg.Workers)
	if err != nil {
		return nil, types.RankingReport{}, err
	}

	if buckets <= 0 {
		buckets = cfg.HistogramBuckets
	}
	return batch, rendering.BuildReport(batch, buckets, ""), nil
}

// Persist stores the ranked documents as a new run and returns its ID.
// A failed save marks the run failed.
func Persist(ctx context.Context, store Store, label string, ranked []types.ScoredDocument) (uuid.UUID, error) {
	runID, err := store.CreateRun(ctx, label)
	if err != nil {
		return uuid.Nil, err
	}

	if err := store.SaveScoredDocuments(ctx, runID, ranked); err != nil {
		_ = store.CompleteRun(ctx, runID, db.RunStatusFailed)
		return runID, err
	}
	return runID, nil
}

// Run executes a full ranking run. Unreadable files are skipped and reported
// in Result.Failures; persistence failures are logged and do not fail the run.
func Run(ctx context.Context, opts RunOptions) (*Result, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("run options: config is required")
	}
	log := opts.Log
	if log == nil {
		log = observability.Discard()
	}
	log = log.WithField("component", "pipeline")

	// Step 1: Load documents
	paths, err := ingestion.ExpandPaths(opts.Paths)
	if err != nil {
		return nil, fmt.Errorf("failed to expand input paths: %w", err)
	}
	loader := ingestion.NewLoader(opts.Provider, log)
	docs, failures, err := loader.LoadFiles(ctx, paths)
	if err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}
	log.WithFields(logrus.Fields{"loaded": len(docs), "skipped": len(failures)}).Info("documents loaded")
	emitProgress(&opts, StageLoad, fmt.Sprintf("Loaded %d documents (%d skipped)", len(docs), len(failures)), uuid.Nil)

	// Step 2: Extract and score
	batch, report, err := RankDocuments(ctx, opts.Config, docs, opts.Buckets)
	if err != nil {
		return nil, fmt.Errorf("ranking failed: %w", err)
	}
	emitProgress(&opts, StageRank, fmt.Sprintf("Ranked %d documents", batch.Len()), uuid.Nil)

	result := &Result{Batch: batch, Report: report, Failures: failures}

	// Step 3: Persist (optional)
	if opts.Store != nil {
		runID, err := Persist(ctx, opts.Store, opts.Label, report.Ranked)
		if err != nil {
			log.WithError(err).Warn("failed to persist run, continuing without database persistence")
		} else {
			result.RunID = runID
			result.Report.RunID = runID.String()
			log.WithField("run_id", runID).Info("run saved")
			emitProgress(&opts, StagePersist, "Saved run", runID)
		}
	}

	// Step 4: Export (optional)
	if opts.CSVPath != "" {
		if err := rendering.WriteCSVFile(opts.CSVPath, result.Report.Ranked); err != nil {
			return nil, err
		}
		emitProgress(&opts, StageExport, "Wrote "+opts.CSVPath, result.RunID)
	}
	if opts.JSONPath != "" {
		if err := rendering.WriteReportFile(opts.JSONPath, result.Report); err != nil {
			return nil, err
		}
		validateReport(opts.JSONPath, log)
		emitProgress(&opts, StageExport, "Wrote "+opts.JSONPath, result.RunID)
	}

	// Step 5: Print (optional)
	if opts.Printer != nil {
		opts.Printer.PrintRanking(result.Report.Ranked)
		opts.Printer.PrintSkillFrequency(result.Report.SkillFrequency)
		opts.Printer.PrintHistogram(result.Report.Histogram)
	}

	return result, nil
}

// validateReport checks the written report against its schema. Failures are
// logged only; the report is already on disk.
func validateReport(path string, log *logrus.Entry) {
	schemaPath := schemas.ResolveSchemaPath(schemas.RankingReport)
	if schemaPath == "" {
		log.Debug("ranking report schema not found, skipping validation")
		return
	}
	if err := schemas.ValidateJSON(schemaPath, path); err != nil {
		log.WithError(err).Warn("report failed schema validation")
	}
}
