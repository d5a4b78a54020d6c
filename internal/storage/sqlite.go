// internal/storage/sqlite.go
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"quickcalories/internal/models"
)

// DefaultLimit caps list queries when the caller passes no limit.
const DefaultLimit = 20

// ErrNotFound is returned when an update or delete matches no row.
var ErrNotFound = errors.New("record not found")

// timeLayout is fixed width so timestamps compare lexicographically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// sqlite allows one writer; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	storage := &SQLiteStorage{db: db}
	if err := storage.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return storage, nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteStorage) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS food_entries (
        id TEXT PRIMARY KEY,
        food_name TEXT NOT NULL,
        calories INTEGER NOT NULL,
        protein REAL NOT NULL,
        carbs REAL NOT NULL,
        fat REAL NOT NULL,
        servings REAL NOT NULL DEFAULT 1,
        source TEXT NOT NULL,
        timestamp TEXT NOT NULL
    );

    CREATE TABLE IF NOT EXISTS workout_entries (
        id TEXT PRIMARY KEY,
        workout_name TEXT NOT NULL,
        calories_burned INTEGER NOT NULL,
        timestamp TEXT NOT NULL
    );

    CREATE TABLE IF NOT EXISTS saved_foods (
        id TEXT PRIMARY KEY,
        food_name TEXT NOT NULL,
        serving_size REAL NOT NULL,
        unit TEXT NOT NULL,
        calories INTEGER NOT NULL,
        protein REAL NOT NULL,
        carbs REAL NOT NULL,
        fat REAL NOT NULL,
        created_at TEXT NOT NULL
    );

    CREATE TABLE IF NOT EXISTS settings (
        key TEXT PRIMARY KEY,
        value TEXT NOT NULL,
        updated_at TEXT NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_food_entries_timestamp ON food_entries(timestamp);
    CREATE INDEX IF NOT EXISTS idx_workout_entries_timestamp ON workout_entries(timestamp);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.Local(), nil
}

// rangeClause appends timestamp bounds and the limit to a select.
func rangeClause(query string, q models.EntryQuery) (string, []interface{}) {
	query += " WHERE 1=1"
	args := []interface{}{}

	if !q.From.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, formatTime(q.From))
	}
	if !q.To.IsZero() {
		query += " AND timestamp < ?"
		args = append(args, formatTime(q.To))
	}

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	query += " ORDER BY timestamp DESC LIMIT ?"
	args = append(args, limit)
	return query, args
}

func affectedOne(result sql.Result, what string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
