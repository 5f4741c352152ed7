package trash

import (
	"os"
	"path/filepath"
	"testing"

	"ytsplit/internal/config"
	"ytsplit/internal/i18n"
	"ytsplit/internal/logging"
	"ytsplit/internal/testsupport"
)

func newQueue(t *testing.T, mode string) (*Queue, string) {
	t.Helper()
	cfg := testsupport.NewConfig(t, testsupport.WithCleanupMode(mode))
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}
	return NewQueue(cfg, logging.NewNop(), i18n.New("en")), cfg.Cleanup.TrashDir
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestAddSourceCollectsSidecars(t *testing.T) {
	queue, _ := newQueue(t, config.CleanupBatch)
	dir := t.TempDir()
	media := filepath.Join(dir, "album.mp3")
	writeFile(t, media)
	writeFile(t, filepath.Join(dir, "album.cue"))
	writeFile(t, filepath.Join(dir, "album.info.json"))

	queue.AddSource(media)
	if got := len(queue.Pending()); got != 3 {
		t.Fatalf("expected media plus two sidecars queued, got %d", got)
	}
}

func TestAddIgnoresMissingFiles(t *testing.T) {
	queue, _ := newQueue(t, config.CleanupBatch)
	queue.Add(filepath.Join(t.TempDir(), "ghost.mp3"))
	if got := len(queue.Pending()); got != 0 {
		t.Fatalf("expected nothing queued, got %d", got)
	}
}

func TestCleanupOffDisablesQueue(t *testing.T) {
	queue, trashDir := newQueue(t, config.CleanupOff)
	dir := t.TempDir()
	media := filepath.Join(dir, "album.mp3")
	writeFile(t, media)

	queue.AddSource(media)
	if err := queue.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if _, err := os.Stat(media); err != nil {
		t.Fatalf("expected source untouched, stat err=%v", err)
	}
	entries, _ := os.ReadDir(trashDir)
	if len(entries) != 0 {
		t.Fatalf("expected empty trash dir, got %d entries", len(entries))
	}
}

func TestSourceDoneFlushesOnlyInImmediateMode(t *testing.T) {
	queue, trashDir := newQueue(t, config.CleanupImmediate)
	dir := t.TempDir()
	media := filepath.Join(dir, "album.mp3")
	writeFile(t, media)

	queue.AddSource(media)
	if err := queue.SourceDone(); err != nil {
		t.Fatalf("SourceDone returned error: %v", err)
	}
	if _, err := os.Stat(media); !os.IsNotExist(err) {
		t.Fatalf("expected source moved away, stat err=%v", err)
	}
	if _, err := os.Stat(filepath.Join(trashDir, "album.mp3")); err != nil {
		t.Fatalf("expected file in trash, stat err=%v", err)
	}
}

func TestBatchModeDefersUntilClose(t *testing.T) {
	queue, trashDir := newQueue(t, config.CleanupBatch)
	dir := t.TempDir()
	media := filepath.Join(dir, "album.mp3")
	writeFile(t, media)

	queue.AddSource(media)
	if err := queue.SourceDone(); err != nil {
		t.Fatalf("SourceDone returned error: %v", err)
	}
	if _, err := os.Stat(media); err != nil {
		t.Fatalf("expected source still present before Close, stat err=%v", err)
	}

	if err := queue.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(trashDir, "album.mp3")); err != nil {
		t.Fatalf("expected file in trash after Close, stat err=%v", err)
	}
}

func TestFlushAvoidsNameCollisions(t *testing.T) {
	queue, trashDir := newQueue(t, config.CleanupBatch)
	writeFile(t, filepath.Join(trashDir, "album.mp3"))

	dir := t.TempDir()
	media := filepath.Join(dir, "album.mp3")
	writeFile(t, media)

	queue.Add(media)
	if err := queue.Flush(); err != nil {
		t.Fatalf("Flush returned error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(trashDir, "album (1).mp3")); err != nil {
		t.Fatalf("expected collision-free name, stat err=%v", err)
	}
}
