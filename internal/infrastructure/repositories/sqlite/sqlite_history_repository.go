package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	logger "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/rios0rios0/folio/internal/domain/entities"
)

const memoryPath = ":memory:"

const schema = `
CREATE TABLE IF NOT EXISTS deployments (
	id            TEXT PRIMARY KEY,
	owner         TEXT NOT NULL,
	repo_name     TEXT NOT NULL,
	platform      TEXT NOT NULL,
	site_name     TEXT NOT NULL DEFAULT '',
	site_id       TEXT NOT NULL DEFAULT '',
	site_url      TEXT NOT NULL DEFAULT '',
	step          TEXT NOT NULL,
	success       INTEGER NOT NULL,
	error_message TEXT NOT NULL DEFAULT '',
	started_at    TEXT NOT NULL,
	finished_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_deployments_owner ON deployments(owner, started_at);
`

const selectColumns = `SELECT id, owner, repo_name, platform, site_name, site_id, site_url,
	step, success, error_message, started_at, finished_at FROM deployments`

// SQLiteHistoryRepository implements repositories.HistoryRepository on SQLite.
type SQLiteHistoryRepository struct {
	db *sql.DB
}

// NewSQLiteHistoryRepository opens (and migrates) the database at path.
func NewSQLiteHistoryRepository(settings *entities.Settings) (*SQLiteHistoryRepository, error) {
	path := settings.History.Path
	if path == "" {
		path = memoryPath
	}
	if path != memoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one connection keeps ":memory:" a single database and serialises writes
	db.SetMaxOpenConns(1)

	if _, err = db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	logger.Debugf("Deployment history stored in %s", path)
	return &SQLiteHistoryRepository{db: db}, nil
}

// Save inserts or replaces the record with the same ID.
func (r *SQLiteHistoryRepository) Save(ctx context.Context, record entities.DeploymentRecord) error {
	_, err := r.db.ExecContext(ctx, `INSERT OR REPLACE INTO deployments
		(id, owner, repo_name, platform, site_name, site_id, site_url,
		 step, success, error_message, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.Owner, record.RepoName, string(record.Platform),
		record.SiteName, record.SiteID, record.SiteURL,
		string(record.Step), record.Success, record.ErrorMessage,
		formatTime(record.StartedAt), formatTime(record.FinishedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save deployment %s: %w", record.ID, err)
	}
	return nil
}

// Get returns the record with id, or ErrNotFound.
func (r *SQLiteHistoryRepository) Get(ctx context.Context, id string) (entities.DeploymentRecord, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.DeploymentRecord{}, fmt.Errorf("%w: deployment %s", entities.ErrNotFound, id)
	}
	if err != nil {
		return entities.DeploymentRecord{}, fmt.Errorf("failed to read deployment %s: %w", id, err)
	}
	return record, nil
}

// ListByOwner returns up to limit records of owner, newest first.
func (r *SQLiteHistoryRepository) ListByOwner(
	ctx context.Context,
	owner string,
	limit int,
) ([]entities.DeploymentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		selectColumns+` WHERE owner = ? ORDER BY started_at DESC, id DESC LIMIT ?`, owner, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list deployments of %s: %w", owner, err)
	}
	defer rows.Close()

	records := make([]entities.DeploymentRecord, 0)
	for rows.Next() {
		record, scanErr := scanRecord(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to read deployment row: %w", scanErr)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Close releases the database.
func (r *SQLiteHistoryRepository) Close() error {
	return r.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (entities.DeploymentRecord, error) {
	var (
		record              entities.DeploymentRecord
		platform, step      string
		startedAt, finished string
	)
	if err := s.Scan(
		&record.ID, &record.Owner, &record.RepoName, &platform,
		&record.SiteName, &record.SiteID, &record.SiteURL,
		&step, &record.Success, &record.ErrorMessage, &startedAt, &finished,
	); err != nil {
		return entities.DeploymentRecord{}, err
	}
	record.Platform = entities.Platform(platform)
	record.Step = entities.Step(step)
	record.StartedAt = parseTime(startedAt)
	record.FinishedAt = parseTime(finished)
	return record, nil
}

// times are stored as fixed-width UTC text so they sort lexically
func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000000Z")
}

func parseTime(raw string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}
