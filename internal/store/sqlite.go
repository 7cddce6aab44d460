package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id            TEXT PRIMARY KEY,
	left_path     TEXT NOT NULL,
	right_path    TEXT NOT NULL,
	group_by      TEXT NOT NULL,
	reduction     TEXT NOT NULL,
	left_count    INTEGER NOT NULL,
	right_count   INTEGER NOT NULL,
	overlay_count INTEGER NOT NULL,
	group_count   INTEGER NOT NULL,
	empty_overlay INTEGER NOT NULL DEFAULT 0,
	elapsed_ms    INTEGER NOT NULL,
	created_at    DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
CREATE INDEX IF NOT EXISTS idx_runs_group_by ON runs(group_by);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// RecordRun inserts a run, assigning its ID and timestamp.
func (s *SQLiteStore) RecordRun(ctx context.Context, run Run) (*Run, error) {
	run.ID = uuid.New().String()
	run.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (
			id, left_path, right_path, group_by, reduction,
			left_count, right_count, overlay_count, group_count,
			empty_overlay, elapsed_ms, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.LeftPath, run.RightPath, run.GroupBy, run.Reduction,
		run.LeftCount, run.RightCount, run.OverlayCount, run.GroupCount,
		boolToInt(run.EmptyOverlay), run.ElapsedMS, run.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: record run")
	}
	return &run, nil
}

// GetRun fetches one run by id.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, left_path, right_path, group_by, reduction,
		       left_count, right_count, overlay_count, group_count,
		       empty_overlay, elapsed_ms, created_at
		FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return nil, eris.Errorf("sqlite: run %s not found", id)
		}
		return nil, eris.Wrap(err, "sqlite: get run")
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, left_path, right_path, group_by, reduction,
		       left_count, right_count, overlay_count, group_count,
		       empty_overlay, elapsed_ms, created_at
		FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run row")
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate run rows")
	}
	return runs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var empty int
	if err := row.Scan(
		&run.ID, &run.LeftPath, &run.RightPath, &run.GroupBy, &run.Reduction,
		&run.LeftCount, &run.RightCount, &run.OverlayCount, &run.GroupCount,
		&empty, &run.ElapsedMS, &run.CreatedAt,
	); err != nil {
		return nil, err
	}
	run.EmptyOverlay = empty != 0
	return &run, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
