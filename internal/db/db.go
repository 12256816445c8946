// Package db provides PostgreSQL storage for ranking runs and their scored documents.
package db

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/cv-ranker/internal/types"
)

//go:embed migrations/*.sql
var migrations embed.FS

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Migrate applies the bundled schema migrations in file name order.
// Every statement is idempotent, so running it on an initialized database is a no-op.
func (db *DB) Migrate(ctx context.Context) error {
	names, err := MigrationNames()
	if err != nil {
		return err
	}

	for _, name := range names {
		sql, err := migrations.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		if _, err := db.pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", name, err)
		}
	}
	return nil
}

// MigrationNames lists the bundled migration files in apply order.
func MigrationNames() ([]string, error) {
	entries, err := fs.ReadDir(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// CreateRun creates a new ranking run record and returns its ID
func (db *DB) CreateRun(ctx context.Context, label string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO ranking_runs (label, status)
		 VALUES ($1, $2)
		 RETURNING id`,
		label, RunStatusRunning,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create run: %w", err)
	}
	return id, nil
}

// CompleteRun sets the final status of a run
func (db *DB) CompleteRun(ctx context.Context, runID uuid.UUID, status string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE ranking_runs SET status = $1, completed_at = NOW() WHERE id = $2`,
		status, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// SaveScoredDocuments stores ranked documents under a run, rank 1 first,
// and marks the run completed. docs must already be in ranked order.
func (db *DB) SaveScoredDocuments(ctx context.Context, runID uuid.UUID, docs []types.ScoredDocument) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for i, doc := range docs {
		batch.Queue(
			`INSERT INTO scored_documents (run_id, rank, name, score, skills, experience_sentences, education_sentences)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			runID, i+1, doc.Document, doc.Score,
			nonNil(doc.Result.Skills), nonNil(doc.Result.ExperienceSentences), nonNil(doc.Result.EducationSentences),
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert scored documents: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE ranking_runs SET status = $1, document_count = $2, completed_at = NOW() WHERE id = $3`,
		RunStatusCompleted, len(docs), runID,
	)
	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("run %s not found", runID)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit scored documents: %w", err)
	}
	return nil
}

const runColumns = `id, label, status, document_count, created_at, completed_at`

func scanRun(row pgx.Row) (*Run, error) {
	var run Run
	if err := row.Scan(&run.ID, &run.Label, &run.Status, &run.DocumentCount, &run.CreatedAt, &run.CompletedAt); err != nil {
		return nil, err
	}
	return &run, nil
}

// GetRun retrieves a ranking run by ID. Returns nil, nil when it does not exist.
func (db *DB) GetRun(ctx context.Context, runID uuid.UUID) (*Run, error) {
	run, err := scanRun(db.pool.QueryRow(ctx,
		`SELECT `+runColumns+` FROM ranking_runs WHERE id = $1`,
		runID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ListRuns retrieves the most recent ranking runs
func (db *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+runColumns+` FROM ranking_runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// ListRunDocuments retrieves the documents of a run in rank order
func (db *DB) ListRunDocuments(ctx context.Context, runID uuid.UUID) ([]RunDocument, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, run_id, rank, name, score, skills, experience_sentences, education_sentences, created_at
		 FROM scored_documents WHERE run_id = $1 ORDER BY rank`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list run documents: %w", err)
	}
	defer rows.Close()

	docs := []RunDocument{}
	for rows.Next() {
		var d RunDocument
		if err := rows.Scan(&d.ID, &d.RunID, &d.Rank, &d.Name, &d.Score,
			&d.Skills, &d.ExperienceSentences, &d.EducationSentences, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run document: %w", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list run documents: %w", err)
	}
	return docs, nil
}

// DeleteRun removes a run and its documents. Reports whether the run existed.
func (db *DB) DeleteRun(ctx context.Context, runID uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM ranking_runs WHERE id = $1`, runID)
	if err != nil {
		return false, fmt.Errorf("failed to delete run: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
