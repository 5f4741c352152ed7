package fetch

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestNormalizeURLStripsPlaylistParams(t *testing.T) {
	got := NormalizeURL("https://www.youtube.com/watch?v=abc123&list=PLxyz&index=4&t=30", false)
	if got != "https://www.youtube.com/watch?t=30&v=abc123" {
		t.Fatalf("unexpected normalized URL %q", got)
	}
}

func TestNormalizeURLKeepsPlaylistWhenAllowed(t *testing.T) {
	raw := "https://www.youtube.com/watch?v=abc123&list=PLxyz"
	if got := NormalizeURL(raw, true); got != raw {
		t.Fatalf("expected URL untouched, got %q", got)
	}
}

func TestNormalizeURLIgnoresForeignHosts(t *testing.T) {
	raw := "https://example.com/media?list=whatever"
	if got := NormalizeURL(raw, false); got != raw {
		t.Fatalf("expected non-YouTube URL untouched, got %q", got)
	}
}

func TestStripOptionRemovesFlagAndArgument(t *testing.T) {
	args := []string{"-x", "--cookies-from-browser", "firefox", "--newline", "url"}
	got := stripOption(args, "--cookies-from-browser")
	want := []string{"-x", "--newline", "url"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("stripOption = %v, want %v", got, want)
	}
}

func TestNewestFilePicksLatestMatchingExtension(t *testing.T) {
	dir := t.TempDir()
	older := filepath.Join(dir, "older.mp3")
	newer := filepath.Join(dir, "newer.mp3")
	other := filepath.Join(dir, "sidecar.info.json")
	for _, p := range []string{older, newer, other} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(older, past, past); err != nil {
		t.Fatal(err)
	}

	got, err := newestFile(dir, []string{".mp3"})
	if err != nil {
		t.Fatalf("newestFile returned error: %v", err)
	}
	if got != newer {
		t.Fatalf("newestFile = %q, want %q", got, newer)
	}
}

func TestNewestFileErrorsWhenNothingMatches(t *testing.T) {
	if _, err := newestFile(t.TempDir(), []string{".mp3"}); err == nil {
		t.Fatal("expected error for empty directory")
	}
}

func TestReadUploaderPrefersUploaderOverChannel(t *testing.T) {
	dir := t.TempDir()
	media := filepath.Join(dir, "song.mp3")
	sidecar := filepath.Join(dir, "song.info.json")
	if err := os.WriteFile(sidecar, []byte(`{"uploader":"Some Uploader","channel":"Some Channel"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := ReadUploader(media); got != "Some Uploader" {
		t.Fatalf("ReadUploader = %q", got)
	}
}

func TestReadUploaderFallsBackToChannelAndDoubleExtension(t *testing.T) {
	dir := t.TempDir()
	media := filepath.Join(dir, "song.mp3")
	sidecar := filepath.Join(dir, "song.mp3.info.json")
	if err := os.WriteFile(sidecar, []byte(`{"channel":"Some Channel"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := ReadUploader(media); got != "Some Channel" {
		t.Fatalf("ReadUploader = %q", got)
	}
}

func TestReadUploaderMissingSidecar(t *testing.T) {
	if got := ReadUploader(filepath.Join(t.TempDir(), "song.mp3")); got != "" {
		t.Fatalf("expected empty uploader, got %q", got)
	}
}

func TestRemoveInfoJSONDeletesBothForms(t *testing.T) {
	dir := t.TempDir()
	media := filepath.Join(dir, "song.mp3")
	for _, sidecar := range []string{"song.info.json", "song.mp3.info.json"} {
		if err := os.WriteFile(filepath.Join(dir, sidecar), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if got := RemoveInfoJSON(media); got != 2 {
		t.Fatalf("RemoveInfoJSON = %d, want 2", got)
	}
}

func TestErrorClassification(t *testing.T) {
	if !isCookieError("Failed to decrypt with DPAPI", nil) {
		t.Fatal("expected DPAPI failure to classify as cookie error")
	}
	if isCookieError("could not read cookies from browser", []string{"-x"}) {
		t.Fatal("cookie phrasing without cookie flags must not classify as cookie error")
	}
	if !isCookieError("Error extracting Cookies From Browser data", []string{"--cookies-from-browser", "firefox"}) {
		t.Fatal("expected cookie error with cookie flag present")
	}
	if !isUpdateWorthy("ERROR: HTTP Error 403: Forbidden") {
		t.Fatal("expected 403 to be update-worthy")
	}
	if isUpdateWorthy("network unreachable") {
		t.Fatal("generic network errors are not update-worthy")
	}
	if !isFragmentError("Did not get any data blocks") {
		t.Fatal("expected fragment error classification")
	}
}
