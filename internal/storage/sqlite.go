// Package storage provides SQLite-based persistence for finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Outcome values stored for a run.
const (
	OutcomeWon  = "won"
	OutcomeLost = "lost"
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one finished session.
type Run struct {
	ID         int64
	LevelID    string
	Player     string
	Outcome    string
	Difficulty string
	Elapsed    time.Duration
	CreatedAt  time.Time
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	LevelID    string
	Runs       int
	Wins       int
	Losses     int
	BestTime   time.Duration // fastest win, 0 if none
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
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

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			outcome TEXT NOT NULL,
			difficulty TEXT NOT NULL DEFAULT '',
			elapsed_ms INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level_id ON runs(level_id);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(level_id, outcome, elapsed_ms);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.Outcome != OutcomeWon && r.Outcome != OutcomeLost {
		return 0, fmt.Errorf("storage: invalid outcome %q", r.Outcome)
	}
	result, err := s.db.Exec(
		"INSERT INTO runs (level_id, player, outcome, difficulty, elapsed_ms) VALUES (?, ?, ?, ?, ?)",
		r.LevelID, r.Player, r.Outcome, r.Difficulty, r.Elapsed.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// BestTimes retrieves the fastest N wins for the given level.
func (s *Store) BestTimes(levelID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT id, level_id, player, outcome, difficulty, elapsed_ms, created_at
		 FROM runs
		 WHERE level_id = ? AND outcome = ?
		 ORDER BY elapsed_ms ASC, id ASC
		 LIMIT ?`,
		levelID, OutcomeWon, limit,
	)
}

// RecentRuns retrieves the most recent N runs for the given level, any outcome.
func (s *Store) RecentRuns(levelID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT id, level_id, player, outcome, difficulty, elapsed_ms, created_at
		 FROM runs
		 WHERE level_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		levelID, limit,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var elapsedMS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.LevelID, &r.Player, &r.Outcome, &r.Difficulty, &elapsedMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// ClearRuns deletes all runs for the given level.
func (s *Store) ClearRuns(levelID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE level_id = ?", levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// GetLevelStats retrieves aggregated statistics for a specific level.
func (s *Store) GetLevelStats(levelID string) (*LevelStats, error) {
	stats := &LevelStats{LevelID: levelID}

	var best sql.NullInt64
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'won' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN outcome = 'lost' THEN 1 ELSE 0 END), 0),
		        MIN(CASE WHEN outcome = 'won' THEN elapsed_ms END)
		 FROM runs WHERE level_id = ?`,
		levelID,
	).Scan(&stats.Runs, &stats.Wins, &stats.Losses, &best)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	if best.Valid {
		stats.BestTime = time.Duration(best.Int64) * time.Millisecond
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE level_id = ? ORDER BY id DESC LIMIT 1`,
		levelID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// GetAllLevelStats retrieves statistics for all levels that have been played.
func (s *Store) GetAllLevelStats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id, COUNT(*),
		        SUM(CASE WHEN outcome = 'won' THEN 1 ELSE 0 END),
		        SUM(CASE WHEN outcome = 'lost' THEN 1 ELSE 0 END),
		        MIN(CASE WHEN outcome = 'won' THEN elapsed_ms END),
		        MAX(created_at)
		 FROM runs
		 GROUP BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var ls LevelStats
		var best sql.NullInt64
		var lastPlayed any
		if err := rows.Scan(&ls.LevelID, &ls.Runs, &ls.Wins, &ls.Losses, &best, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		if best.Valid {
			ls.BestTime = time.Duration(best.Int64) * time.Millisecond
		}
		ls.LastPlayed = parseTime(lastPlayed)
		stats[ls.LevelID] = &ls
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
