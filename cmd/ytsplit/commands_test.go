package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCommand()
	want := []string{"download", "split", "trim", "chapters", "history", "config", "deps"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected subcommand %q to be registered", name)
		}
	}
}

func TestReadURLFileSkipsCommentsAndBlanks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := strings.Join([]string{
		"# favorites",
		"https://www.youtube.com/watch?v=one",
		"",
		"  https://www.youtube.com/watch?v=two  ",
		"# trailing comment",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	urls, err := readURLFile(path)
	if err != nil {
		t.Fatalf("readURLFile returned error: %v", err)
	}
	if len(urls) != 2 {
		t.Fatalf("expected 2 URLs, got %v", urls)
	}
	if urls[1] != "https://www.youtube.com/watch?v=two" {
		t.Fatalf("expected trimmed URL, got %q", urls[1])
	}
}

func TestReadURLFileMissing(t *testing.T) {
	if _, err := readURLFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDefaultSplitTargets(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.mp3", "a.MP3", "notes.txt", "v.mp4"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := defaultSplitTargets(dir)
	if err != nil {
		t.Fatalf("defaultSplitTargets returned error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected the two mp3 files, got %v", files)
	}
	if filepath.Base(files[0]) != "a.MP3" {
		t.Fatalf("expected sorted order, got %v", files)
	}
}

func TestDefaultSplitTargetsMissingDir(t *testing.T) {
	files, err := defaultSplitTargets(filepath.Join(t.TempDir(), "absent"))
	if err != nil || files != nil {
		t.Fatalf("expected empty result for missing directory, got %v, %v", files, err)
	}
}

func TestRenderTable(t *testing.T) {
	out := renderTable(
		[]string{"#", "Title"},
		[][]string{{"1", "Intro"}, {"2"}},
		[]columnAlignment{alignRight, alignLeft},
	)
	if !strings.Contains(out, "Intro") {
		t.Fatalf("expected rendered row, got %q", out)
	}
	if renderTable(nil, nil, nil) != "" {
		t.Fatal("expected empty output for empty header")
	}
}

func TestShortRunID(t *testing.T) {
	if got := shortRunID("0123456789abcdef"); got != "01234567" {
		t.Fatalf("shortRunID = %q", got)
	}
	if got := shortRunID("abc"); got != "abc" {
		t.Fatalf("shortRunID short input = %q", got)
	}
}
