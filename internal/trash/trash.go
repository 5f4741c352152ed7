// Package trash implements the deferred-deletion queue for processed
// sources. Files are never unlinked directly; they move into a configured
// trash directory, either right after each source or once at the end of a
// batch run, depending on the cleanup mode.
//
// The queue is not safe for concurrent use. Sources are processed strictly
// sequentially, so a single goroutine owns the queue for the whole run.
package trash

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"ytsplit/internal/config"
	"ytsplit/internal/fileutil"
	"ytsplit/internal/i18n"
)

// Queue accumulates files destined for the trash directory.
type Queue struct {
	mode    string
	dir     string
	logger  *slog.Logger
	msgs    i18n.Messages
	pending []string
}

// NewQueue builds a queue from the cleanup configuration.
func NewQueue(cfg *config.Config, logger *slog.Logger, msgs i18n.Messages) *Queue {
	return &Queue{
		mode:   cfg.Cleanup.Mode,
		dir:    cfg.Cleanup.TrashDir,
		logger: logger.With(slog.String("component", "trash")),
		msgs:   msgs,
	}
}

// Add enqueues paths for deferred deletion. Paths that no longer exist are
// ignored. With cleanup disabled, Add is a no-op.
func (q *Queue) Add(paths ...string) {
	if q.mode == config.CleanupOff {
		return
	}
	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		q.pending = append(q.pending, path)
	}
}

// AddSource enqueues a media file together with its known sidecar files
// (cue sheet and .info.json variants).
func (q *Queue) AddSource(mediaPath string) {
	ext := filepath.Ext(mediaPath)
	stem := mediaPath[:len(mediaPath)-len(ext)]
	q.Add(mediaPath, stem+".cue", mediaPath+".info.json", stem+".info.json")
}

// Pending returns the queued paths.
func (q *Queue) Pending() []string {
	return append([]string(nil), q.pending...)
}

// SourceDone flushes the queue when the cleanup mode asks for per-source
// deletion.
func (q *Queue) SourceDone() error {
	if q.mode != config.CleanupImmediate {
		return nil
	}
	return q.Flush()
}

// Close flushes whatever is still queued at the end of a batch run.
func (q *Queue) Close() error {
	if q.mode == config.CleanupOff {
		return nil
	}
	return q.Flush()
}

// Flush moves all pending files into the trash directory, fanning out to
// collision-free names. Individual move failures are logged and skipped;
// the first error is returned after all moves were attempted.
func (q *Queue) Flush() error {
	if len(q.pending) == 0 {
		return nil
	}
	if err := os.MkdirAll(q.dir, 0o755); err != nil {
		return fmt.Errorf("create trash directory: %w", err)
	}

	var firstErr error
	moved := 0
	for _, path := range q.pending {
		dest := fileutil.UniquePath(filepath.Join(q.dir, filepath.Base(path)))
		if err := fileutil.MoveFile(path, dest); err != nil {
			q.logger.Warn(q.msgs.Tr("Datei konnte nicht in den Papierkorb verschoben werden", "could not move file to trash"),
				slog.String("file", filepath.Base(path)), slog.Any("error", err))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		moved++
	}
	if moved > 0 {
		q.logger.Info(q.msgs.Tr("Quelldateien in den Papierkorb verschoben", "moved source files to trash"),
			slog.Int("count", moved), slog.String("dir", q.dir))
	}
	q.pending = q.pending[:0]
	return firstErr
}
