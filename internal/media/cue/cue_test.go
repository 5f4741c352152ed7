package cue

import (
	"strings"
	"testing"
)

const sampleSheet = `REM GENRE Electronica
TITLE "Some Album"
FILE "album.mp3" MP3
  TRACK 01 AUDIO
    TITLE "First Song"
    INDEX 01 00:00:00
  TRACK 02 AUDIO
    TITLE "Second Song"
    INDEX 01 03:05:37
  TRACK 03 AUDIO
    INDEX 01 07:30:00
`

func TestParse(t *testing.T) {
	tracks, err := Parse(strings.NewReader(sampleSheet))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(tracks) != 3 {
		t.Fatalf("expected 3 tracks, got %d", len(tracks))
	}
	if tracks[0].Title != "First Song" || tracks[0].StartSeconds != 0 {
		t.Fatalf("track 1 = %+v", tracks[0])
	}
	want := 3*60 + 5 + 37/75.0
	if tracks[1].Title != "Second Song" || tracks[1].StartSeconds != want {
		t.Fatalf("track 2 = %+v, want start %v", tracks[1], want)
	}
	// A track without its own TITLE inherits the most recent one.
	if tracks[2].Title != "Second Song" {
		t.Fatalf("track 3 title = %q", tracks[2].Title)
	}
	if tracks[2].StartSeconds != 7*60+30 {
		t.Fatalf("track 3 start = %v", tracks[2].StartSeconds)
	}
}

func TestParseEmptyInput(t *testing.T) {
	tracks, err := Parse(strings.NewReader("REM nothing here\n"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(tracks) != 0 {
		t.Fatalf("expected no tracks, got %v", tracks)
	}
}

func TestParseCaseInsensitiveKeywords(t *testing.T) {
	tracks, err := Parse(strings.NewReader("title \"x\"\nindex 01 00:10:00\n"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(tracks) != 1 || tracks[0].StartSeconds != 10 {
		t.Fatalf("tracks = %+v", tracks)
	}
}
