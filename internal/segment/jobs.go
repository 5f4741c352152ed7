package segment

import (
	"fmt"
	"path/filepath"
	"strings"

	"ytsplit/internal/chapters"
	"ytsplit/internal/textutil"
	"ytsplit/internal/timecode"
)

const (
	fadeClampEpsilon = 0.001
	minClipSeconds   = 0.01
)

// Job is one unit of segmentation work, consumed immediately after creation.
// Output is derived deterministically so repeated runs produce identical
// names.
type Job struct {
	Source string
	Output string
	Track  int
	Label  string
	Start  float64
	End    float64
	Fade   float64
}

// Duration returns the clip length in seconds, floored at minClipSeconds so
// zero-length chapters still yield a playable sliver.
func (j Job) Duration() float64 {
	if d := j.End - j.Start; d > minClipSeconds {
		return d
	}
	return minClipSeconds
}

// Naming controls the filename suffix of timecode-mode clips.
type Naming struct {
	IncludeRange bool
	IncludeFade  bool
}

// ChapterJobs builds one job per chapter, in order, 1-indexed. Untitled
// chapters fall back to a "Track NN" label. Output files land in outDir.
func ChapterJobs(source, outDir string, chs []chapters.Chapter) []Job {
	stem, ext := stemAndExt(source)
	jobs := make([]Job, 0, len(chs))
	for i, ch := range chs {
		track := i + 1
		label := ch.Title
		if label == "" {
			label = fmt.Sprintf("Track %02d", track)
		}
		jobs = append(jobs, Job{
			Source: source,
			Output: filepath.Join(outDir, fmt.Sprintf("%s - %02d - %s%s", stem, track, textutil.SanitizeFileName(label), ext)),
			Track:  track,
			Label:  label,
			Start:  ch.Start,
			End:    ch.End,
		})
	}
	return jobs
}

// TimecodeJobs builds one job per range with positive duration. Open ends
// resolve to totalDuration, fades are clamped to just under half the clip
// length, and dropped holds a diagnostic per skipped range.
func TimecodeJobs(source string, ranges []timecode.Range, totalDuration float64, naming Naming) (jobs []Job, dropped []string) {
	stem, ext := stemAndExt(source)
	dir := filepath.Dir(source)
	for idx, r := range ranges {
		start := r.Start
		end := r.End
		if r.Open {
			end = totalDuration
		}
		if end <= start {
			dropped = append(dropped, fmt.Sprintf("range #%d has no positive duration: start=%g, end=%g", idx+1, start, end))
			continue
		}
		fade := ClampFade(r.Fade, end-start)

		number := idx + 1
		jobs = append(jobs, Job{
			Source: source,
			Output: filepath.Join(dir, fmt.Sprintf("%s__tc%02d%s%s", stem, number, nameSuffix(start, end, fade, naming), ext)),
			Track:  number,
			Label:  fmt.Sprintf("%s-%s", textutil.FormatCompact(start), textutil.FormatCompact(end)),
			Start:  start,
			End:    end,
			Fade:   fade,
		})
	}
	return jobs, dropped
}

// ClampFade bounds a requested fade to at most half the clip duration, less
// a small epsilon. Negative requests disable the fade.
func ClampFade(fade, duration float64) float64 {
	if fade <= 0 {
		return 0
	}
	maxFade := duration/2 - fadeClampEpsilon
	if maxFade < 0 {
		maxFade = 0
	}
	if fade > maxFade {
		return maxFade
	}
	return fade
}

func nameSuffix(start, end, fade float64, naming Naming) string {
	var parts []string
	if naming.IncludeRange {
		parts = append(parts, textutil.FormatCompact(start)+"-"+textutil.FormatCompact(end))
	}
	if naming.IncludeFade && fade > 0 {
		parts = append(parts, textutil.FormatFadeLabel(fade))
	}
	if len(parts) == 0 {
		return ""
	}
	return "_" + strings.Join(parts, "_")
}

func stemAndExt(source string) (string, string) {
	base := filepath.Base(source)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext), ext
}
