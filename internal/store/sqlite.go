package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/blackrab369/Versaas-ai/internal/msglog"
)

// SQLiteStore implements Store on a single SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("store: create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS projects (
		name       TEXT PRIMARY KEY,
		state      BLOB NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS messages (
		message_id TEXT PRIMARY KEY,
		project    TEXT NOT NULL,
		seq        INTEGER NOT NULL,
		from_agent TEXT NOT NULL,
		to_agent   TEXT NOT NULL,
		body       TEXT NOT NULL,
		kind       TEXT NOT NULL,
		sent_at    TEXT NOT NULL
	);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_messages_project_seq ON messages(project, seq);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveState implements Store.
func (s *SQLiteStore) SaveState(ctx context.Context, project string, state []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (name, state, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at`,
		project, state, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("store: save state for %s: %w", project, err)
	}
	return nil
}

// LoadState implements Store.
func (s *SQLiteStore) LoadState(ctx context.Context, project string) ([]byte, error) {
	var state []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT state FROM projects WHERE name = ?`, project).Scan(&state)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: load state for %s: %w", project, err)
	}
	return state, nil
}

// Projects implements Store.
func (s *SQLiteStore) Projects(ctx context.Context) ([]ProjectRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, state, updated_at FROM projects ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("store: list projects: %w", err)
	}
	defer rows.Close()

	var out []ProjectRecord
	for rows.Next() {
		var rec ProjectRecord
		var updated string
		if err := rows.Scan(&rec.Name, &rec.State, &updated); err != nil {
			return nil, fmt.Errorf("store: scan project: %w", err)
		}
		rec.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ArchiveMessages implements Store. Re-archiving an already stored
// entry is a no-op, so callers can flush overlapping batches safely.
func (s *SQLiteStore) ArchiveMessages(ctx context.Context, project string, entries []msglog.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin archive: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO messages (message_id, project, seq, from_agent, to_agent, body, kind, sent_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(message_id) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("store: prepare archive: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx,
			e.ID, project, e.Seq, e.From, e.To, e.Body, string(e.Kind),
			e.Timestamp.UTC().Format(time.RFC3339Nano)); err != nil {
			return fmt.Errorf("store: archive message %s: %w", e.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit archive: %w", err)
	}
	return nil
}

// MessagesSince implements Store.
func (s *SQLiteStore) MessagesSince(ctx context.Context, project string, afterSeq uint64, limit int) ([]msglog.Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT message_id, seq, from_agent, to_agent, body, kind, sent_at
		FROM messages WHERE project = ? AND seq > ?
		ORDER BY seq ASC LIMIT ?`,
		project, afterSeq, limit)
	if err != nil {
		return nil, fmt.Errorf("store: query messages for %s: %w", project, err)
	}
	defer rows.Close()

	var out []msglog.Entry
	for rows.Next() {
		var e msglog.Entry
		var kind, sent string
		if err := rows.Scan(&e.ID, &e.Seq, &e.From, &e.To, &e.Body, &kind, &sent); err != nil {
			return nil, fmt.Errorf("store: scan message: %w", err)
		}
		e.Kind = msglog.Kind(kind)
		e.Timestamp, _ = time.Parse(time.RFC3339Nano, sent)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
