package dedup

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/ports"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS seen_articles (
	key        TEXT PRIMARY KEY,
	first_seen TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// SQLiteStore persists the seen set in a local SQLite database, written
// through on every Record so the state survives crashes mid-run.
type SQLiteStore struct {
	db *sql.DB
}

var _ ports.DedupStore = (*SQLiteStore)(nil)

// OpenSQLiteStore opens (and if needed initializes) the store at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open dedup db %s: %w", path, err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init dedup schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Seen reports whether the key was previously recorded.
func (s *SQLiteStore) Seen(ctx context.Context, key string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM seen_articles WHERE key = ?`, key).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query seen: %w", err)
	}
	return true, nil
}

// Record inserts the key, reporting whether it was newly added.
func (s *SQLiteStore) Record(ctx context.Context, key string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO seen_articles (key) VALUES (?)`, key)
	if err != nil {
		return false, fmt.Errorf("record key: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// Save is a no-op: every Record is written through.
func (s *SQLiteStore) Save(context.Context) error { return nil }

// Close releases the database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }
