// Package history provides optional persistence of training-run summaries to
// PostgreSQL, so successive models trained over evolving corpora can be
// compared after the fact.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/pkg/postgres"
)

// TrainingRun summarises one successful train invocation.
type TrainingRun struct {
	InputDirectory string        `json:"input_directory"`
	ModelFile      string        `json:"model_file"`
	Categories     []string      `json:"categories"`
	Documents      int           `json:"documents"`
	VocabularySize int           `json:"vocabulary_size"`
	ArtifactBytes  int64         `json:"artifact_bytes"`
	Duration       time.Duration `json:"duration"`
}

// Store persists training-run summaries in PostgreSQL.
//
// It requires a `training_runs` table:
//
//	CREATE TABLE training_runs (
//	    id         BIGSERIAL PRIMARY KEY,
//	    data       JSONB NOT NULL,
//	    trained_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
type Store struct {
	db     *postgres.Client
	logger *slog.Logger
}

// NewStore creates a new training-run history store.
func NewStore(db *postgres.Client) *Store {
	return &Store{
		db:     db,
		logger: slog.Default().With("component", "history-store"),
	}
}

// RecordRun persists a run summary to the database.
func (s *Store) RecordRun(ctx context.Context, run TrainingRun) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("marshaling training run: %w", err)
	}

	_, err = s.db.DB.ExecContext(ctx,
		`INSERT INTO training_runs (data, trained_at) VALUES ($1, $2)`,
		data, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving training run: %w", err)
	}

	s.logger.Info("training run recorded",
		"documents", run.Documents,
		"categories", len(run.Categories),
		"vocabulary_size", run.VocabularySize,
	)
	return nil
}

// LatestRun loads the most recent run summary from the database.
// Returns nil, nil if no runs have been recorded yet.
func (s *Store) LatestRun(ctx context.Context) (*TrainingRun, error) {
	var data []byte
	err := s.db.DB.QueryRowContext(ctx,
		`SELECT data FROM training_runs ORDER BY trained_at DESC LIMIT 1`,
	).Scan(&data)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest training run: %w", err)
	}

	var run TrainingRun
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("unmarshaling training run: %w", err)
	}
	return &run, nil
}
