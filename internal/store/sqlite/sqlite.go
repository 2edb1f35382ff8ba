package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"pulse-insights-go/internal/store"
	"pulse-insights-go/internal/types"
)

type Store struct {
	db  *sql.DB
	now func() time.Time
}

func Open(path string) (*Store, error) {
	// modernc sqlite uses DSN like: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // sqlite typically wants 1 writer
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRowContext(ctx, `PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	// ---- Schema v1 ----
	if _, err := tx.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS pulse_entries (
  id                    TEXT PRIMARY KEY,
  employee_name         TEXT NOT NULL,
  department            TEXT NOT NULL,
  overall_mood          TEXT NOT NULL,
  energy_level          TEXT NOT NULL,
  stress_level          TEXT NOT NULL,
  collaboration_feeling TEXT NOT NULL DEFAULT '',
  productivity_feeling  TEXT NOT NULL DEFAULT '',
  notes                 TEXT NOT NULL DEFAULT '',
  submission_time       INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_pulse_entries_submission_time ON pulse_entries(submission_time);
`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `PRAGMA user_version = 1;`); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) List(ctx context.Context, opts store.ListOptions) ([]types.PulseEntry, error) {
	if err := opts.Validate(); err != nil {
		return nil, store.Wrap("list", err)
	}
	order := "DESC"
	if !opts.Newest() {
		order = "ASC"
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, employee_name, department, overall_mood, energy_level, stress_level,
       collaboration_feeling, productivity_feeling, notes, submission_time
FROM pulse_entries
ORDER BY submission_time `+order+`, rowid `+order+`
LIMIT ?`, limit)
	if err != nil {
		return nil, store.Wrap("list", err)
	}
	defer rows.Close()

	var out []types.PulseEntry
	for rows.Next() {
		var e types.PulseEntry
		var submitted int64
		if err := rows.Scan(
			&e.ID, &e.EmployeeName, &e.Department, &e.OverallMood, &e.EnergyLevel, &e.StressLevel,
			&e.CollaborationFeeling, &e.ProductivityFeeling, &e.Notes, &submitted,
		); err != nil {
			return nil, store.Wrap("list", err)
		}
		e.SubmissionTime = time.Unix(0, submitted).UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Wrap("list", err)
	}
	return out, nil
}

func (s *Store) Create(ctx context.Context, entry types.PulseEntry) (types.PulseEntry, error) {
	entry.ID = uuid.NewString()
	if entry.SubmissionTime.IsZero() {
		entry.SubmissionTime = s.now()
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO pulse_entries (
  id, employee_name, department, overall_mood, energy_level, stress_level,
  collaboration_feeling, productivity_feeling, notes, submission_time
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.EmployeeName, string(entry.Department), string(entry.OverallMood),
		string(entry.EnergyLevel), string(entry.StressLevel), string(entry.CollaborationFeeling),
		string(entry.ProductivityFeeling), entry.Notes, entry.SubmissionTime.UnixNano(),
	)
	if err != nil {
		return types.PulseEntry{}, store.Wrap("create", err)
	}
	entry.SubmissionTime = entry.SubmissionTime.UTC()
	return entry, nil
}
