package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite via modernc.org/sqlite (pure Go).
type SQLiteStore struct {
	db *sql.DB
}

// Compile-time check that SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLite-backed store.
// dbPath is the path to the SQLite database file; use ":memory:" for testing.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("session: open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("session: ping database: %w", err)
	}

	createTableSQL := `
		CREATE TABLE IF NOT EXISTS runs (
			id          TEXT PRIMARY KEY,
			iface       TEXT NOT NULL,
			record_json TEXT NOT NULL,
			targets     INTEGER DEFAULT 0,
			captured    INTEGER DEFAULT 0,
			cracked     INTEGER DEFAULT 0,
			started_at  DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("session: create table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// SaveRun persists a run record. If the record's ID is empty, a new UUID
// is generated and assigned.
func (s *SQLiteStore) SaveRun(ctx context.Context, rec *RunRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.StartedAt.IsZero() {
		rec.StartedAt = time.Now().UTC()
	}

	recordJSON, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("session: marshal record: %w", err)
	}

	captured, cracked := 0, 0
	for _, o := range rec.Outcomes {
		if o.Captured {
			captured++
		}
		if o.Status == "success" {
			cracked++
		}
	}

	query := `
		INSERT INTO runs (id, iface, record_json, targets, captured, cracked, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			iface       = excluded.iface,
			record_json = excluded.record_json,
			targets     = excluded.targets,
			captured    = excluded.captured,
			cracked     = excluded.cracked
	`
	_, err = s.db.ExecContext(ctx, query,
		rec.ID,
		rec.Interface,
		string(recordJSON),
		len(rec.Outcomes),
		captured,
		cracked,
		rec.StartedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("session: save run: %w", err)
	}

	return nil
}

// LoadRun retrieves a run record by its unique ID.
// Returns (nil, nil) if no run is found.
func (s *SQLiteStore) LoadRun(ctx context.Context, id string) (*RunRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT record_json FROM runs WHERE id = ?`, id)

	var recordJSON string
	if err := row.Scan(&recordJSON); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("session: scan row: %w", err)
	}

	var rec RunRecord
	if err := json.Unmarshal([]byte(recordJSON), &rec); err != nil {
		return nil, fmt.Errorf("session: unmarshal record: %w", err)
	}
	return &rec, nil
}

// ListRuns returns a lightweight summary of all stored runs, newest first.
func (s *SQLiteStore) ListRuns(ctx context.Context) ([]*RunSummary, error) {
	query := `SELECT id, iface, targets, captured, cracked, started_at FROM runs ORDER BY started_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("session: list runs: %w", err)
	}
	defer rows.Close()

	var summaries []*RunSummary
	for rows.Next() {
		var (
			summary   RunSummary
			startedAt string
		)
		if err := rows.Scan(&summary.ID, &summary.Interface, &summary.Targets,
			&summary.Captured, &summary.Cracked, &startedAt); err != nil {
			return nil, fmt.Errorf("session: scan summary row: %w", err)
		}
		t, err := time.Parse(time.RFC3339, startedAt)
		if err != nil {
			// Fall back to SQLite default format if RFC3339 fails.
			t, err = time.Parse("2006-01-02 15:04:05", startedAt)
			if err != nil {
				return nil, fmt.Errorf("session: parse started_at %q: %w", startedAt, err)
			}
		}
		summary.StartedAt = t
		summaries = append(summaries, &summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("session: iterate rows: %w", err)
	}

	return summaries, nil
}

// Delete removes a run by its ID.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("session: delete run: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
