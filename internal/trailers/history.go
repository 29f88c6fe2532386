package trailers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Status is the outcome recorded for one movie.
type Status string

const (
	StatusDownloaded Status = "downloaded"
	StatusNotFound   Status = "not_found"
	StatusFailed     Status = "failed"
)

// Entry is one trailer history record.
type Entry struct {
	ID        int64     `json:"id"`
	RunID     string    `json:"run_id"`
	Movie     string    `json:"movie"`
	MovieDir  string    `json:"movie_dir"`
	Status    Status    `json:"status"`
	SourceURL string    `json:"source_url,omitempty"`
	Path      string    `json:"path,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryFilter narrows List results.
type HistoryFilter struct {
	RunID  string
	Status Status
	Limit  int
}

// HistoryStore persists trailer outcomes in SQLite.
type HistoryStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewHistoryStore creates a history store. The trailer_history table must exist.
func NewHistoryStore(db *sql.DB) *HistoryStore {
	return &HistoryStore{db: db, now: time.Now}
}

// Record inserts e and sets its ID and CreatedAt.
func (s *HistoryStore) Record(ctx context.Context, e *Entry) error {
	now := s.now().UTC()
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO trailer_history (run_id, movie, movie_dir, status, source_url, path, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RunID, e.Movie, e.MovieDir, string(e.Status), e.SourceURL, e.Path, e.Error, now,
	)
	if err != nil {
		return fmt.Errorf("insert trailer history: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	e.ID = id
	e.CreatedAt = now
	return nil
}

// List returns the most recent entries, newest first. A limit <= 0 means 50.
func (s *HistoryStore) List(ctx context.Context, limit int) ([]Entry, error) {
	return s.Find(ctx, HistoryFilter{Limit: limit})
}

// Find returns entries matching f, newest first.
func (s *HistoryStore) Find(ctx context.Context, f HistoryFilter) ([]Entry, error) {
	var conditions []string
	var args []any

	if f.RunID != "" {
		conditions = append(conditions, "run_id = ?")
		args = append(args, f.RunID)
	}
	if f.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, string(f.Status))
	}

	query := `SELECT id, run_id, movie, movie_dir, status,
		COALESCE(source_url, ''), COALESCE(path, ''), COALESCE(error, ''), created_at
		FROM trailer_history`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id DESC LIMIT ?"

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list trailer history: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var status string
		if err := rows.Scan(&e.ID, &e.RunID, &e.Movie, &e.MovieDir, &status,
			&e.SourceURL, &e.Path, &e.Error, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan trailer history: %w", err)
		}
		e.Status = Status(status)
		out = append(out, e)
	}
	return out, rows.Err()
}
