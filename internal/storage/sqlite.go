// Package storage provides SQLite-based persistence for completed runs.
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

// sqliteTime is the layout of CURRENT_TIMESTAMP values.
const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for run times.
// It is safe for concurrent use; SSH sessions share one Store.
type Store struct {
	db *sql.DB
}

// TimeEntry is a single completed run.
type TimeEntry struct {
	ID         int64
	CourseID   string
	Seed       float64
	BlockCount int
	Duration   time.Duration
	Player     string
	CreatedAt  time.Time
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

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
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
			course_id TEXT NOT NULL,
			seed REAL NOT NULL,
			block_count INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_course ON runs(course_id, duration_ms);
		CREATE INDEX IF NOT EXISTS idx_runs_layout ON runs(course_id, seed, duration_ms);
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

// SaveTime records a completed run on the layout identified by course and
// seed. Returns the ID of the inserted record.
func (s *Store) SaveTime(e TimeEntry) (int64, error) {
	if e.Duration <= 0 {
		return 0, fmt.Errorf("storage: cannot save non-positive time %v", e.Duration)
	}

	result, err := s.db.Exec(
		"INSERT INTO runs (course_id, seed, block_count, duration_ms, player) VALUES (?, ?, ?, ?, ?)",
		e.CourseID, e.Seed, e.BlockCount, e.Duration.Milliseconds(), e.Player,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save time: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// BestTime returns the fastest run on one layout. ok is false when the
// layout has never been completed.
func (s *Store) BestTime(courseID string, seed float64) (best time.Duration, ok bool, err error) {
	var ms sql.NullInt64
	err = s.db.QueryRow(
		"SELECT MIN(duration_ms) FROM runs WHERE course_id = ? AND seed = ?",
		courseID, seed,
	).Scan(&ms)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best time: %w", err)
	}

	if !ms.Valid {
		return 0, false, nil
	}
	return time.Duration(ms.Int64) * time.Millisecond, true, nil
}

// TopTimes retrieves the fastest N runs on a course across all layouts.
// Results are ordered by duration ascending.
func (s *Store) TopTimes(courseID string, limit int) ([]TimeEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	return s.queryTimes(
		`SELECT id, course_id, seed, block_count, duration_ms, player, created_at
		 FROM runs
		 WHERE course_id = ?
		 ORDER BY duration_ms ASC, id ASC
		 LIMIT ?`,
		courseID, limit,
	)
}

// LayoutTimes retrieves the fastest N runs on one layout.
func (s *Store) LayoutTimes(courseID string, seed float64, limit int) ([]TimeEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	return s.queryTimes(
		`SELECT id, course_id, seed, block_count, duration_ms, player, created_at
		 FROM runs
		 WHERE course_id = ? AND seed = ?
		 ORDER BY duration_ms ASC, id ASC
		 LIMIT ?`,
		courseID, seed, limit,
	)
}

func (s *Store) queryTimes(query string, args ...any) ([]TimeEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query times: %w", err)
	}
	defer rows.Close()

	var entries []TimeEntry
	for rows.Next() {
		var e TimeEntry
		var ms int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.CourseID, &e.Seed, &e.BlockCount, &ms, &e.Player, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Duration = time.Duration(ms) * time.Millisecond
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearTimes deletes all runs for the given course.
func (s *Store) ClearTimes(courseID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE course_id = ?", courseID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear times: %w", err)
	}
	return nil
}

// CourseStats contains aggregated statistics for a course.
type CourseStats struct {
	CourseID   string
	Runs       int
	Layouts    int
	Best       time.Duration
	Average    time.Duration
	LastPlayed time.Time
}

// GetCourseStats retrieves aggregated statistics for a specific course.
func (s *Store) GetCourseStats(courseID string) (*CourseStats, error) {
	stats := &CourseStats{CourseID: courseID}

	var best int64
	var avg float64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT seed), COALESCE(MIN(duration_ms), 0), COALESCE(AVG(duration_ms), 0)
		 FROM runs WHERE course_id = ?`,
		courseID,
	).Scan(&stats.Runs, &stats.Layouts, &best, &avg)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get course stats: %w", err)
	}
	stats.Best = time.Duration(best) * time.Millisecond
	stats.Average = time.Duration(avg * float64(time.Millisecond))

	// Get last played
	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE course_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		courseID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// GetAllCourseStats retrieves statistics for every course that has runs.
func (s *Store) GetAllCourseStats() (map[string]*CourseStats, error) {
	rows, err := s.db.Query(
		`SELECT course_id, COUNT(*), COUNT(DISTINCT seed), MIN(duration_ms), AVG(duration_ms), MAX(created_at)
		 FROM runs
		 GROUP BY course_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all course stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*CourseStats)
	for rows.Next() {
		var cs CourseStats
		var best int64
		var avg float64
		var lastPlayed any
		if err := rows.Scan(&cs.CourseID, &cs.Runs, &cs.Layouts, &best, &avg, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		cs.Best = time.Duration(best) * time.Millisecond
		cs.Average = time.Duration(avg * float64(time.Millisecond))
		cs.LastPlayed = parseTime(lastPlayed)

		stats[cs.CourseID] = &cs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
