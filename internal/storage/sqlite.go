// Package storage provides SQLite-based persistence for finished games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-moles/internal/game"
)

// Outcome values stored in the results table.
const (
	OutcomeWon  = "won"
	OutcomeLost = "lost"
	OutcomeQuit = "quit"
)

// Store manages the SQLite database connection for result persistence.
type Store struct {
	db *sql.DB
}

// ResultEntry is one stored game.
type ResultEntry struct {
	ID          string
	Outcome     string
	Hits        int
	Misses      int
	BoardWidth  int
	BoardHeight int
	MoleTotal   int
	MoleLimit   int
	HideMinMs   int64
	HideMaxMs   int64
	OutMinMs    int64
	OutMaxMs    int64
	Duration    time.Duration
	CreatedAt   time.Time
}

// Stats contains aggregated statistics over all stored games.
type Stats struct {
	Games      int
	Wins       int
	Losses     int
	Quits      int
	TotalHits  int64
	BestHits   int
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

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id TEXT PRIMARY KEY,
			outcome TEXT NOT NULL,
			hits INTEGER NOT NULL DEFAULT 0,
			misses INTEGER NOT NULL DEFAULT 0,
			board_w INTEGER NOT NULL,
			board_h INTEGER NOT NULL,
			mole_total INTEGER NOT NULL,
			mole_limit INTEGER NOT NULL,
			hide_min_ms INTEGER NOT NULL,
			hide_max_ms INTEGER NOT NULL,
			out_min_ms INTEGER NOT NULL,
			out_max_ms INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_created ON results(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_results_hits ON results(hits DESC);
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

// OutcomeOf maps a game status to its stored outcome.
func OutcomeOf(st game.Status) string {
	switch st {
	case game.StatusWon:
		return OutcomeWon
	case game.StatusLost:
		return OutcomeLost
	default:
		return OutcomeQuit
	}
}

// SaveResult records a finished game. Implements game.ResultSaver.
func (s *Store) SaveResult(r game.Result) error {
	p := r.Params
	created := r.StartedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO results
		 (id, outcome, hits, misses, board_w, board_h, mole_total, mole_limit,
		  hide_min_ms, hide_max_ms, out_min_ms, out_max_ms, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		OutcomeOf(r.Status),
		r.Counters.Hits,
		r.Counters.Misses,
		p.BoardWidth,
		p.BoardHeight,
		p.MoleTotal,
		p.MoleLimit,
		p.HideMin.Milliseconds(),
		p.HideMax.Milliseconds(),
		p.OutMin.Milliseconds(),
		p.OutMax.Milliseconds(),
		r.Duration.Milliseconds(),
		created.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save result: %w", err)
	}
	return nil
}

var _ game.ResultSaver = (*Store)(nil)

const selectColumns = `id, outcome, hits, misses, board_w, board_h, mole_total, mole_limit,
	hide_min_ms, hide_max_ms, out_min_ms, out_max_ms, duration_ms, created_at`

// RecentResults retrieves the most recent games, newest first.
func (s *Store) RecentResults(limit int) ([]ResultEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryResults(
		`SELECT `+selectColumns+` FROM results ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
}

// TopResults retrieves the games with the most hits.
func (s *Store) TopResults(limit int) ([]ResultEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryResults(
		`SELECT `+selectColumns+` FROM results ORDER BY hits DESC, misses ASC, created_at ASC LIMIT ?`,
		limit,
	)
}

// ResultByID retrieves one game. Returns nil if it does not exist.
func (s *Store) ResultByID(id string) (*ResultEntry, error) {
	entries, err := s.queryResults(`SELECT `+selectColumns+` FROM results WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

func (s *Store) queryResults(query string, args ...any) ([]ResultEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var entries []ResultEntry
	for rows.Next() {
		var e ResultEntry
		var durationMs int64
		var createdAt any
		if err := rows.Scan(
			&e.ID,
			&e.Outcome,
			&e.Hits,
			&e.Misses,
			&e.BoardWidth,
			&e.BoardHeight,
			&e.MoleTotal,
			&e.MoleLimit,
			&e.HideMinMs,
			&e.HideMaxMs,
			&e.OutMinMs,
			&e.OutMaxMs,
			&durationMs,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Duration = time.Duration(durationMs) * time.Millisecond
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// GetStats aggregates all stored games.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(outcome = 'won'), 0),
		        COALESCE(SUM(outcome = 'lost'), 0),
		        COALESCE(SUM(outcome = 'quit'), 0),
		        COALESCE(SUM(hits), 0),
		        COALESCE(MAX(hits), 0),
		        MAX(created_at)
		 FROM results`,
	).Scan(&stats.Games, &stats.Wins, &stats.Losses, &stats.Quits, &stats.TotalHits, &stats.BestHits, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// ClearResults deletes all stored games.
func (s *Store) ClearResults() error {
	if _, err := s.db.Exec("DELETE FROM results"); err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

const timeLayout = "2006-01-02 15:04:05"

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
