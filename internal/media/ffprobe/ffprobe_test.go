package ffprobe

import (
	"encoding/json"
	"testing"
)

const sampleProbeJSON = `{
  "chapters": [
    {"id": 0, "start_time": "0.000000", "end_time": "125.500000", "tags": {"title": "Intro"}},
    {"id": 1, "start_time": "125.500000", "end_time": "300.000000", "tags": {"TITLE": "Main"}},
    {"id": 2, "start_time": "300.000000", "end_time": "450.000000"}
  ],
  "streams": [
    {"index": 0, "codec_name": "mp3", "codec_type": "audio", "duration": "450.1"},
    {"index": 1, "codec_name": "mjpeg", "codec_type": "video", "disposition": {"attached_pic": 1}}
  ],
  "format": {"filename": "a.mp3", "duration": "450.2", "format_name": "mp3"}
}`

func TestDecodeProbeResult(t *testing.T) {
	var result Result
	if err := json.Unmarshal([]byte(sampleProbeJSON), &result); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(result.Chapters) != 3 {
		t.Fatalf("expected 3 chapters, got %d", len(result.Chapters))
	}
	if result.Chapters[0].Title() != "Intro" {
		t.Fatalf("lowercase title tag: %q", result.Chapters[0].Title())
	}
	if result.Chapters[1].Title() != "Main" {
		t.Fatalf("uppercase title tag: %q", result.Chapters[1].Title())
	}
	if result.Chapters[2].Title() != "" {
		t.Fatalf("missing tags should yield empty title, got %q", result.Chapters[2].Title())
	}
	if result.Chapters[1].StartSeconds() != 125.5 {
		t.Fatalf("start seconds = %v", result.Chapters[1].StartSeconds())
	}
	if !result.HasAttachedPicture() {
		t.Fatal("expected attached picture")
	}
	if result.DurationSeconds() != 450.2 {
		t.Fatalf("duration = %v", result.DurationSeconds())
	}
}

func TestDurationFallsBackToStreams(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "audio", Duration: "12.5"},
			{CodecType: "audio", Duration: "90.25"},
		},
		Format: Format{Duration: "garbage"},
	}
	if result.DurationSeconds() != 90.25 {
		t.Fatalf("duration = %v, want stream fallback 90.25", result.DurationSeconds())
	}
}

func TestDurationZeroWhenUnknown(t *testing.T) {
	if d := (Result{}).DurationSeconds(); d != 0 {
		t.Fatalf("duration = %v, want 0", d)
	}
}

func TestHasAttachedPictureIgnoresPlainVideo(t *testing.T) {
	result := Result{Streams: []Stream{{CodecType: "video"}}}
	if result.HasAttachedPicture() {
		t.Fatal("plain video stream is not cover art")
	}
}
