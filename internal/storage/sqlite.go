// Package storage provides SQLite-based persistence for finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/vovakirdan/skytower/internal/core"
)

// DefaultKeep is how many runs each mode retains.
const DefaultKeep = 10

// Store manages the SQLite database connection for run persistence.
// It is safe for concurrent use.
type Store struct {
	db     *sql.DB
	keep   int
	logger *log.Logger
}

// RunEntry is one stored run.
type RunEntry struct {
	ID        int64
	Mode      string
	Floor     int
	Score     int
	MaxCombo  int
	Duration  time.Duration
	CreatedAt time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithKeep sets how many runs per mode survive each insert.
func WithKeep(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.keep = n
		}
	}
}

// WithLogger sets where recoveries are reported.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string, opts ...Option) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	store := &Store{keep: DefaultKeep, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(store)
	}

	db, err := connect(dbPath)
	if isCorrupt(err) {
		// Move the damaged file aside and start with no runs
		aside := dbPath + ".corrupt"
		if rerr := os.Rename(dbPath, aside); rerr != nil {
			return nil, fmt.Errorf("storage: cannot move corrupt database aside: %w", rerr)
		}
		store.logger.Warn("runs database corrupt, starting empty", "path", dbPath, "moved_to", aside, "err", err)
		db, err = connect(dbPath)
	}
	if err != nil {
		return nil, err
	}

	store.db = db
	return store, nil
}

// connect opens dbPath and brings its schema up to date.
func connect(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One writer at a time; the trim runs inside the insert transaction
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return db, nil
}

// isCorrupt reports whether err says the file is not a usable database.
func isCorrupt(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() & 0xff {
	case sqlite3.SQLITE_NOTADB, sqlite3.SQLITE_CORRUPT:
		return true
	}
	return false
}

// migrate creates the database schema if it doesn't exist.
func migrate(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			floor INTEGER NOT NULL,
			score INTEGER NOT NULL,
			max_combo INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(mode, score DESC);
	`

	_, err := db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Keep returns the per-mode retention.
func (s *Store) Keep() int {
	return s.keep
}

// SaveRun records a finished run and trims the mode to its best runs.
// Returns the ID of the inserted record, which may already have been
// trimmed if the run did not make the list.
func (s *Store) SaveRun(mode string, run core.RunSummary) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	result, err := tx.Exec(
		"INSERT INTO runs (mode, floor, score, max_combo, duration_ms) VALUES (?, ?, ?, ?, ?)",
		mode, run.Floor, run.Score, run.MaxCombo, run.Elapsed.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	_, err = tx.Exec(
		`DELETE FROM runs
		 WHERE mode = ? AND id NOT IN (
			SELECT id FROM runs WHERE mode = ? ORDER BY score DESC, id ASC LIMIT ?
		 )`,
		mode, mode, s.keep,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot trim runs: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return id, nil
}

// TopRuns retrieves the best runs for a mode, highest score first.
// Equal scores keep insertion order.
func (s *Store) TopRuns(mode string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = s.keep
	}
	return s.queryRuns(
		`SELECT id, mode, floor, score, max_combo, duration_ms, created_at
		 FROM runs
		 WHERE mode = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		mode, limit,
	)
}

// AllRuns retrieves every stored run for a mode.
func (s *Store) AllRuns(mode string) ([]RunEntry, error) {
	return s.queryRuns(
		`SELECT id, mode, floor, score, max_combo, duration_ms, created_at
		 FROM runs
		 WHERE mode = ?
		 ORDER BY score DESC, id ASC`,
		mode,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]RunEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var durationMs int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Mode, &e.Floor, &e.Score, &e.MaxCombo, &durationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Duration = time.Duration(durationMs) * time.Millisecond
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the best score for a mode, or 0 with no runs.
func (s *Store) HighScore(mode string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM runs WHERE mode = ?", mode).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// BestFloor returns the highest floor reached in a mode, or 0 with no runs.
func (s *Store) BestFloor(mode string) (int, error) {
	var floor sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(floor) FROM runs WHERE mode = ?", mode).Scan(&floor)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best floor: %w", err)
	}
	if !floor.Valid {
		return 0, nil
	}
	return int(floor.Int64), nil
}

// ClearRuns deletes all runs for a mode.
func (s *Store) ClearRuns(mode string) error {
	if _, err := s.db.Exec("DELETE FROM runs WHERE mode = ?", mode); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// parseTimestamp handles both time.Time and string DATETIME values.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
