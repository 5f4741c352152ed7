// Package cue implements the minimal cue-sheet subset needed for the
// chapter fallback: TITLE lines and INDEX 01 track starts.
package cue

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
)

// framesPerSecond is the cue-sheet frame rate (Red Book audio).
const framesPerSecond = 75.0

// Track is one entry of a cue sheet: a start offset and the most recent
// TITLE seen before its INDEX line. Title may be empty.
type Track struct {
	Title        string
	StartSeconds float64
}

var (
	titlePattern = regexp.MustCompile(`(?i)^\s*TITLE\s+"(.*)"`)
	indexPattern = regexp.MustCompile(`(?i)^\s*INDEX\s+01\s+(\d\d):(\d\d):(\d\d)`)
)

// ParseFile reads and parses a cue sheet from disk.
func ParseFile(path string) ([]Track, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cue sheet: %w", err)
	}
	defer file.Close()
	return Parse(file)
}

// Parse extracts tracks from cue-sheet text. Lines of the form
// `INDEX 01 mm:ss:ff` start a track at mm*60+ss+ff/75 seconds; the most
// recently seen `TITLE "..."` becomes its title. Unknown lines are skipped.
func Parse(r io.Reader) ([]Track, error) {
	var tracks []Track
	currentTitle := ""

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if m := titlePattern.FindStringSubmatch(line); m != nil {
			currentTitle = m[1]
			continue
		}
		if m := indexPattern.FindStringSubmatch(line); m != nil {
			mm, _ := strconv.Atoi(m[1])
			ss, _ := strconv.Atoi(m[2])
			ff, _ := strconv.Atoi(m[3])
			tracks = append(tracks, Track{
				Title:        currentTitle,
				StartSeconds: float64(mm)*60 + float64(ss) + float64(ff)/framesPerSecond,
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read cue sheet: %w", err)
	}
	return tracks, nil
}
