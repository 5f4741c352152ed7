package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"ytsplit/internal/config"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	cfg := config.Default()
	cfg.History.Path = filepath.Join(t.TempDir(), "history.db")
	store, err := Open(&cfg)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestRunLifecycle(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	if err := store.StartRun(ctx, "run-1", "download-audio", "https://example.com/v", ""); err != nil {
		t.Fatalf("StartRun returned error: %v", err)
	}
	if err := store.FinishRun(ctx, "run-1", StatusCompleted, "", "/music/album.mp3", "Uploader", 3); err != nil {
		t.Fatalf("FinishRun returned error: %v", err)
	}

	runs, err := store.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns returned error: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	run := runs[0]
	if run.Status != StatusCompleted || run.ClipCount != 3 {
		t.Fatalf("unexpected run %+v", run)
	}
	if run.SourcePath != "/music/album.mp3" || run.Uploader != "Uploader" {
		t.Fatalf("expected finish to backfill source and uploader, got %+v", run)
	}
	if run.StartedAt.IsZero() || run.FinishedAt.IsZero() {
		t.Fatalf("expected timestamps to be populated, got %+v", run)
	}
}

func TestFailedRunKeepsError(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	if err := store.StartRun(ctx, "run-err", "split", "", "/music/broken.mp3"); err != nil {
		t.Fatal(err)
	}
	if err := store.FinishRun(ctx, "run-err", StatusFailed, "ffmpeg exited 1", "", "", 0); err != nil {
		t.Fatal(err)
	}

	runs, err := store.RecentRuns(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if runs[0].Error != "ffmpeg exited 1" {
		t.Fatalf("expected error message preserved, got %q", runs[0].Error)
	}
	if runs[0].SourcePath != "/music/broken.mp3" {
		t.Fatalf("expected original source kept, got %q", runs[0].SourcePath)
	}
}

func TestClipsRecordedInTrackOrder(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	if err := store.StartRun(ctx, "run-2", "split", "", "/music/album.mp3"); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(t.TempDir(), "clip.mp3")
	if err := os.WriteFile(out, []byte("audio bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, clip := range []Clip{
		{RunID: "run-2", Track: 2, Label: "Outro", OutputPath: "/out/b.mp3", Start: 60, End: 120},
		{RunID: "run-2", Track: 1, Label: "Intro", OutputPath: out, Start: 0, End: 60, Fade: 0.5},
	} {
		if err := store.AddClip(ctx, clip); err != nil {
			t.Fatalf("AddClip returned error: %v", err)
		}
	}

	clips, err := store.ClipsForRun(ctx, "run-2")
	if err != nil {
		t.Fatalf("ClipsForRun returned error: %v", err)
	}
	if len(clips) != 2 || clips[0].Track != 1 || clips[1].Track != 2 {
		t.Fatalf("expected clips in track order, got %+v", clips)
	}
	if clips[0].SizeBytes == 0 {
		t.Fatal("expected clip size to be filled from the output file")
	}
}

func TestNilStoreIsNoOp(t *testing.T) {
	var store *Store
	ctx := context.Background()

	if err := store.StartRun(ctx, "x", "split", "", ""); err != nil {
		t.Fatalf("nil StartRun returned error: %v", err)
	}
	if err := store.FinishRun(ctx, "x", StatusCompleted, "", "", "", 0); err != nil {
		t.Fatalf("nil FinishRun returned error: %v", err)
	}
	if err := store.AddClip(ctx, Clip{}); err != nil {
		t.Fatalf("nil AddClip returned error: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("nil Close returned error: %v", err)
	}
}
