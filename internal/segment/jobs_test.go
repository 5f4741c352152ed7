package segment

import (
	"path/filepath"
	"strings"
	"testing"

	"ytsplit/internal/chapters"
	"ytsplit/internal/timecode"
)

func TestChapterJobsNamingAndFallbackLabels(t *testing.T) {
	chs := []chapters.Chapter{
		{Start: 0, End: 60, Title: "Intro"},
		{Start: 60, End: 120},
		{Start: 120, End: 180, Title: "Finale"},
	}
	jobs := ChapterJobs("/music/album.mp3", "/out", chs)
	if len(jobs) != 3 {
		t.Fatalf("expected 3 jobs, got %d", len(jobs))
	}
	wantNames := []string{
		"album - 01 - Intro.mp3",
		"album - 02 - Track 02.mp3",
		"album - 03 - Finale.mp3",
	}
	for i, want := range wantNames {
		if got := filepath.Base(jobs[i].Output); got != want {
			t.Fatalf("job %d output = %q, want %q", i, got, want)
		}
		if jobs[i].Track != i+1 {
			t.Fatalf("job %d track = %d, want %d", i, jobs[i].Track, i+1)
		}
	}
}

func TestChapterJobsEnforceMinimumDuration(t *testing.T) {
	jobs := ChapterJobs("/music/a.mp3", "/out", []chapters.Chapter{{Start: 50, End: 50}})
	if got := jobs[0].Duration(); got < 0.01 {
		t.Fatalf("expected minimum duration, got %g", got)
	}
	if jobs[0].End != 50 {
		t.Fatalf("expected chapter end preserved, got %g", jobs[0].End)
	}
}

func TestTimecodeJobsNamingSuffix(t *testing.T) {
	ranges := []timecode.Range{
		{Start: 65, End: 150, Fade: 0.5},
		{Start: 0, End: 30, Fade: 0},
	}
	jobs, dropped := TimecodeJobs("/media/show.mp3", ranges, 300, Naming{IncludeRange: true, IncludeFade: true})
	if len(dropped) != 0 {
		t.Fatalf("unexpected drops: %v", dropped)
	}
	if got := filepath.Base(jobs[0].Output); got != "show__tc01_01m05s-02m30s_f0.5s.mp3" {
		t.Fatalf("unexpected first output name %q", got)
	}
	if got := filepath.Base(jobs[1].Output); got != "show__tc02_00s-30s.mp3" {
		t.Fatalf("unexpected second output name %q", got)
	}
}

func TestTimecodeJobsSuffixOptions(t *testing.T) {
	ranges := []timecode.Range{{Start: 10, End: 20, Fade: 1}}
	jobs, _ := TimecodeJobs("/media/show.mp3", ranges, 300, Naming{})
	if got := filepath.Base(jobs[0].Output); got != "show__tc01.mp3" {
		t.Fatalf("expected bare name without suffix, got %q", got)
	}
	jobs, _ = TimecodeJobs("/media/show.mp3", ranges, 300, Naming{IncludeFade: true})
	if got := filepath.Base(jobs[0].Output); got != "show__tc01_f1s.mp3" {
		t.Fatalf("expected fade-only suffix, got %q", got)
	}
}

func TestTimecodeJobsOpenEndAndDrops(t *testing.T) {
	ranges := []timecode.Range{
		{Start: 200, End: 0, Open: true},
		{Start: 100, End: 50},
	}
	jobs, dropped := TimecodeJobs("/media/show.mp3", ranges, 240, Naming{})
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
	if jobs[0].End != 240 {
		t.Fatalf("expected open end resolved to total duration, got %g", jobs[0].End)
	}
	if len(dropped) != 1 || !strings.Contains(dropped[0], "#2") {
		t.Fatalf("expected inverted range #2 dropped, got %v", dropped)
	}
}

func TestTimecodeJobsKeepOriginalNumbering(t *testing.T) {
	ranges := []timecode.Range{
		{Start: 100, End: 50},
		{Start: 0, End: 10},
	}
	jobs, _ := TimecodeJobs("/media/show.mp3", ranges, 240, Naming{})
	if len(jobs) != 1 || jobs[0].Track != 2 {
		t.Fatalf("expected surviving range to keep index 2, got %+v", jobs)
	}
}

func TestClampFade(t *testing.T) {
	cases := []struct {
		fade, duration, want float64
	}{
		{10, 6, 2.999},
		{0.5, 90, 0.5},
		{-1, 90, 0},
		{0.5, 0.5, 0.249},
	}
	for _, tc := range cases {
		if got := ClampFade(tc.fade, tc.duration); got != tc.want {
			t.Fatalf("ClampFade(%g, %g) = %g, want %g", tc.fade, tc.duration, got, tc.want)
		}
	}
}
