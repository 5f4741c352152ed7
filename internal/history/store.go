package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"ytsplit/internal/config"
)

// Run statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped"
)

// Run is one recorded pipeline invocation for a single source.
type Run struct {
	RunID      string
	Mode       string
	URL        string
	SourcePath string
	Uploader   string
	Status     string
	Error      string
	ClipCount  int
	StartedAt  time.Time
	FinishedAt time.Time
}

// Clip is one produced output file of a run.
type Clip struct {
	RunID      string
	Track      int
	Label      string
	OutputPath string
	Start      float64
	End        float64
	Fade       float64
	SizeBytes  int64
}

// Store manages history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database at the configured
// path and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	dbPath := cfg.HistoryPath()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection. Safe on a nil store.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// StartRun records the beginning of a run. Safe on a nil store.
func (s *Store) StartRun(ctx context.Context, runID, mode, url, sourcePath string) error {
	if s == nil {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, mode, url, source_path, status, started_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		runID, mode, nullableString(url), nullableString(sourcePath),
		StatusRunning, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// FinishRun records the outcome of a run. Safe on a nil store.
func (s *Store) FinishRun(ctx context.Context, runID, status, errMsg, sourcePath, uploader string, clipCount int) error {
	if s == nil {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, error = ?, source_path = COALESCE(?, source_path),
                uploader = COALESCE(?, uploader), clip_count = ?, finished_at = ?
         WHERE run_id = ?`,
		status, nullableString(errMsg), nullableString(sourcePath), nullableString(uploader),
		clipCount, time.Now().UTC().Format(time.RFC3339Nano), runID)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	return nil
}

// AddClip records one produced clip. Safe on a nil store.
func (s *Store) AddClip(ctx context.Context, clip Clip) error {
	if s == nil {
		return nil
	}
	if clip.SizeBytes == 0 {
		if info, err := os.Stat(clip.OutputPath); err == nil {
			clip.SizeBytes = info.Size()
		}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO clips (run_id, track, label, output_path, start_sec, end_sec, fade_sec, size_bytes, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		clip.RunID, clip.Track, nullableString(clip.Label), clip.OutputPath,
		clip.Start, clip.End, clip.Fade, clip.SizeBytes,
		time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert clip: %w", err)
	}
	return nil
}

// RecentRuns returns the most recent runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if s == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, mode, url, source_path, uploader, status, error, clip_count, started_at, finished_at
         FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// ClipsForRun returns the clips recorded for one run, in track order.
func (s *Store) ClipsForRun(ctx context.Context, runID string) ([]Clip, error) {
	if s == nil {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, track, label, output_path, start_sec, end_sec, fade_sec, size_bytes
         FROM clips WHERE run_id = ? ORDER BY track`, runID)
	if err != nil {
		return nil, fmt.Errorf("query clips: %w", err)
	}
	defer rows.Close()

	var clips []Clip
	for rows.Next() {
		var clip Clip
		var label sql.NullString
		if err := rows.Scan(&clip.RunID, &clip.Track, &label, &clip.OutputPath,
			&clip.Start, &clip.End, &clip.Fade, &clip.SizeBytes); err != nil {
			return nil, fmt.Errorf("scan clip: %w", err)
		}
		clip.Label = label.String
		clips = append(clips, clip)
	}
	return clips, rows.Err()
}

func scanRun(rows *sql.Rows) (Run, error) {
	var run Run
	var url, sourcePath, uploader, errMsg, finishedAt sql.NullString
	var startedAt string
	if err := rows.Scan(&run.RunID, &run.Mode, &url, &sourcePath, &uploader,
		&run.Status, &errMsg, &run.ClipCount, &startedAt, &finishedAt); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.URL = url.String
	run.SourcePath = sourcePath.String
	run.Uploader = uploader.String
	run.Error = errMsg.String
	run.StartedAt = parseTimestamp(startedAt)
	if finishedAt.Valid {
		run.FinishedAt = parseTimestamp(finishedAt.String)
	}
	return run, nil
}

func parseTimestamp(value string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return ts
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
