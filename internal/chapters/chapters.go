// Package chapters derives chapter boundaries and split points for a source
// media file, preferring native container chapters and falling back to a
// sibling cue sheet.
package chapters

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"ytsplit/internal/media/cue"
	"ytsplit/internal/media/ffprobe"
	"ytsplit/internal/textutil"
)

// Origin identifies where the chapter list came from.
type Origin int

const (
	// OriginNone means neither native chapters nor a cue sheet exist;
	// callers treat this as "nothing to split", not an error.
	OriginNone Origin = iota
	// OriginNative means chapters came from container metadata.
	OriginNative
	// OriginCue means chapters came from a sibling cue sheet.
	OriginCue
)

// Chapter is a named time interval of the source file. Title is sanitized
// for filesystem use and may be empty.
type Chapter struct {
	Start float64
	End   float64
	Title string
}

// Extraction bundles the chapter list with the split points derived from it.
type Extraction struct {
	Chapters    []Chapter
	SplitPoints []float64
	Origin      Origin
	CuePath     string
}

// Extract obtains chapters for mediaPath from the probe result, falling back
// to a sibling .cue file. totalDuration bounds the final cue track.
func Extract(probe ffprobe.Result, mediaPath string, totalDuration float64) (Extraction, error) {
	if native := FromProbe(probe); len(native) > 0 {
		return Extraction{
			Chapters:    native,
			SplitPoints: SplitPoints(native),
			Origin:      OriginNative,
		}, nil
	}

	cuePath := CueSheetPath(mediaPath)
	if _, err := os.Stat(cuePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Extraction{Origin: OriginNone}, nil
		}
		return Extraction{}, fmt.Errorf("stat cue sheet: %w", err)
	}

	fromCue, err := FromCueSheet(cuePath, totalDuration)
	if err != nil {
		return Extraction{}, err
	}
	if len(fromCue) == 0 {
		return Extraction{Origin: OriginNone}, nil
	}
	return Extraction{
		Chapters:    fromCue,
		SplitPoints: SplitPoints(fromCue),
		Origin:      OriginCue,
		CuePath:     cuePath,
	}, nil
}

// FromProbe converts native probe chapters, sanitizing titles.
func FromProbe(probe ffprobe.Result) []Chapter {
	chapters := make([]Chapter, 0, len(probe.Chapters))
	for _, ch := range probe.Chapters {
		chapters = append(chapters, Chapter{
			Start: ch.StartSeconds(),
			End:   ch.EndSeconds(),
			Title: textutil.SanitizeFileName(ch.Title()),
		})
	}
	return chapters
}

// FromCueSheet parses a cue sheet into chapters. Each chapter ends where the
// next track starts; the final chapter ends at totalDuration when that lies
// beyond its start, otherwise at its own start (a zero-length tail the
// segmenter rejects with a warning).
func FromCueSheet(path string, totalDuration float64) ([]Chapter, error) {
	tracks, err := cue.ParseFile(path)
	if err != nil {
		return nil, err
	}

	chapters := make([]Chapter, 0, len(tracks))
	for i, track := range tracks {
		end := track.StartSeconds
		if i+1 < len(tracks) {
			end = tracks[i+1].StartSeconds
		} else if totalDuration > track.StartSeconds {
			end = totalDuration
		}
		chapters = append(chapters, Chapter{
			Start: track.StartSeconds,
			End:   end,
			Title: textutil.SanitizeFileName(track.Title),
		})
	}
	return chapters, nil
}

// SplitPoints returns the sorted, deduplicated chapter start times, with 0.0
// prepended when the earliest chapter starts later.
func SplitPoints(chapters []Chapter) []float64 {
	if len(chapters) == 0 {
		return nil
	}

	unique := make(map[float64]struct{}, len(chapters))
	for _, ch := range chapters {
		unique[ch.Start] = struct{}{}
	}
	points := make([]float64, 0, len(unique)+1)
	for p := range unique {
		points = append(points, p)
	}
	sort.Float64s(points)
	if points[0] > 0 {
		points = append([]float64{0}, points...)
	}
	return points
}

// CueSheetPath returns the sibling cue-sheet path for a media file.
func CueSheetPath(mediaPath string) string {
	return strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath)) + ".cue"
}
