// Package catalog records every run and the files it produced in a local
// SQLite database.
package catalog

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/teranos/crunch/errors"
	"github.com/teranos/crunch/sink"
)

// Run statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// Run is one recorded generation run.
type Run struct {
	ID         string          `json:"id"`
	Mode       string          `json:"mode"`
	Config     string          `json:"config"`
	Status     string          `json:"status"`
	Words      int64           `json:"words"`
	Warnings   int             `json:"warnings"`
	Error      string          `json:"error,omitempty"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt *time.Time      `json:"finished_at,omitempty"`
	Artifacts  []sink.Artifact `json:"artifacts,omitempty"`
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// Store reads and writes runs.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore creates a new catalog store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// StartRun records a new run in the running state and returns its ID.
// config is the run's settings serialized as JSON.
func (s *Store) StartRun(ctx context.Context, mode, config string) (string, error) {
	id := NewRunID()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, mode, config, status, started_at)
		VALUES (?, ?, ?, ?, ?)`,
		id, mode, config, StatusRunning, s.now().UTC())
	if err != nil {
		return "", errors.Wrap(err, "failed to record run start")
	}
	return id, nil
}

// FinishRun stores the outcome of a run. runErr decides the status.
func (s *Store) FinishRun(ctx context.Context, id string, words int64, warnings int, runErr error) error {
	status, message := StatusCompleted, ""
	switch {
	case runErr == nil:
	case errors.IsAny(runErr, context.Canceled, context.DeadlineExceeded):
		status, message = StatusCancelled, runErr.Error()
	default:
		status, message = StatusFailed, runErr.Error()
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE runs
		SET status = ?, words = ?, warnings = ?, error = ?, finished_at = ?
		WHERE id = ?`,
		status, words, warnings, message, s.now().UTC(), id)
	if err != nil {
		return errors.Wrapf(err, "failed to record run %s finish", id)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.NewNotFoundError("run %s", id)
	}
	return nil
}

// RecordArtifact attaches a finished file to a run.
func (s *Store) RecordArtifact(ctx context.Context, runID string, a sink.Artifact) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO artifacts (run_id, path, first_word, last_word, words, bytes, codec, remote, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, a.Path, a.First, a.Last, a.Words, a.Bytes, a.Codec, a.Remote, s.now().UTC())
	if err != nil {
		return errors.Wrapf(err, "failed to record artifact %s", a.Path)
	}
	return nil
}

// ListRuns returns the most recent runs first, without artifacts.
// A limit below 1 returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `
		SELECT id, mode, config, status, words, warnings, error, started_at, finished_at
		FROM runs
		ORDER BY started_at DESC, id`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// GetRun returns a run and its artifacts. id may be a unique prefix.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	if id == "" {
		return nil, errors.NewNotFoundError("run id is empty")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, mode, config, status, words, warnings, error, started_at, finished_at
		FROM runs
		WHERE id LIKE ? || '%'
		LIMIT 2`, id)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get run %s", id)
	}
	var matches []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		matches = append(matches, run)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to get run %s", id)
	}

	switch len(matches) {
	case 0:
		return nil, errors.NewNotFoundError("run %s", id)
	case 1:
	default:
		return nil, errors.WithHint(errors.Wrapf(ErrAmbiguousID, "%s", id), "use more characters of the run id")
	}

	run := matches[0]
	run.Artifacts, err = s.artifacts(ctx, run.ID)
	if err != nil {
		return nil, err
	}
	return run, nil
}

func (s *Store) artifacts(ctx context.Context, runID string) ([]sink.Artifact, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT path, first_word, last_word, words, bytes, codec, remote
		FROM artifacts
		WHERE run_id = ?
		ORDER BY id`, runID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list artifacts of run %s", runID)
	}
	defer rows.Close()

	var artifacts []sink.Artifact
	for rows.Next() {
		var a sink.Artifact
		if err := rows.Scan(&a.Path, &a.First, &a.Last, &a.Words, &a.Bytes, &a.Codec, &a.Remote); err != nil {
			return nil, errors.Wrap(err, "failed to scan artifact")
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, rows.Err()
}

func scanRun(rows *sql.Rows) (*Run, error) {
	var (
		run      Run
		finished sql.NullTime
	)
	err := rows.Scan(&run.ID, &run.Mode, &run.Config, &run.Status, &run.Words,
		&run.Warnings, &run.Error, &run.StartedAt, &finished)
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan run")
	}
	if finished.Valid {
		t := finished.Time
		run.FinishedAt = &t
	}
	return &run, nil
}

// Recorder returns a finalizer that records each artifact under runID.
func (s *Store) Recorder(runID string) sink.Finalizer {
	return sink.FinalizerFunc(func(ctx context.Context, a *sink.Artifact) error {
		return s.RecordArtifact(ctx, runID, *a)
	})
}
