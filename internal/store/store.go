// Package store handles SQLite persistence of session history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/typesprint/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for session data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			seq INTEGER PRIMARY KEY,
			id TEXT NOT NULL UNIQUE,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			sample_size INTEGER NOT NULL,
			wordlist_path TEXT NOT NULL,
			submitted INTEGER NOT NULL,
			correct_words INTEGER NOT NULL,
			cpm INTEGER NOT NULL,
			wpm INTEGER NOT NULL,
			new_high_score INTEGER NOT NULL,
			prev_high_score INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS session_words (
			session_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			expected TEXT NOT NULL,
			entered TEXT NOT NULL,
			correct INTEGER NOT NULL,
			PRIMARY KEY (session_id, position)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_ended_at ON sessions(ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSession stores a completed session and its submitted words.
func (s *Store) InsertSession(ctx context.Context, stats model.SessionStats, words []model.WordEntry) (err error) {
	if stats.ID == "" {
		return fmt.Errorf("session id is required")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (id, started_at, ended_at, duration_ms, sample_size, wordlist_path, submitted, correct_words, cpm, wpm, new_high_score, prev_high_score)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stats.ID,
		stats.StartedAt.Format(time.RFC3339Nano),
		stats.EndedAt.Format(time.RFC3339Nano),
		stats.DurationMs,
		stats.SampleSize,
		stats.WordListPath,
		stats.Submitted,
		stats.CorrectWords,
		stats.CPM,
		stats.WPM,
		boolToInt(stats.NewHighScore),
		stats.PrevHighScore,
	)
	if err != nil {
		return err
	}

	if len(words) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO session_words (session_id, position, expected, entered, correct)
			 VALUES (?, ?, ?, ?, ?)`)
		if perr != nil {
			err = perr
			return err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, w := range words {
			if _, err = stmt.ExecContext(ctx, stats.ID, w.Position, w.Expected, w.Entered, boolToInt(w.Correct)); err != nil {
				return err
			}
		}
	}

	err = tx.Commit()
	return err
}

// ListSessions returns stored sessions filtered by stats config, oldest first.
func (s *Store) ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.SessionAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT seq, id, ended_at, duration_ms, submitted, correct_words, cpm, wpm, new_high_score
		FROM sessions
		WHERE %s
		ORDER BY ended_at ASC, seq ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []model.SessionAggregate
	for rows.Next() {
		var agg model.SessionAggregate
		var endedAt string
		var newHigh int
		if err := rows.Scan(&agg.Seq, &agg.ID, &endedAt, &agg.DurationMs, &agg.Submitted, &agg.CorrectWords, &agg.CPM, &agg.WPM, &newHigh); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		agg.NewHighScore = newHigh != 0
		sessions = append(sessions, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(sessions) > cfg.Last {
		sessions = sessions[len(sessions)-cfg.Last:]
	}
	return sessions, nil
}

// ListSessionWords returns the submitted words of a session in order.
func (s *Store) ListSessionWords(ctx context.Context, sessionID string) ([]model.WordEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT position, expected, entered, correct
		FROM session_words
		WHERE session_id = ?
		ORDER BY position ASC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var words []model.WordEntry
	for rows.Next() {
		var w model.WordEntry
		var correct int
		if err := rows.Scan(&w.Position, &w.Expected, &w.Entered, &correct); err != nil {
			return nil, err
		}
		w.Correct = correct != 0
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// BestWPM returns the highest WPM in the history, or 0 when empty.
func (s *Store) BestWPM(ctx context.Context) (int, error) {
	var best sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(wpm) FROM sessions`).Scan(&best); err != nil {
		return 0, err
	}
	if !best.Valid {
		return 0, nil
	}
	return int(best.Int64), nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
