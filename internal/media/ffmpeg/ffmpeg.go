package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

var commandContext = exec.CommandContext

// minClipSeconds floors the -t duration so zero-length windows still
// produce a playable sliver instead of an empty file.
const minClipSeconds = 0.01

// AudioEncode selects lossy audio re-encoding for a clip.
type AudioEncode struct {
	Codec   string
	Bitrate string
}

// Metadata carries the tags written onto an extracted clip.
type Metadata struct {
	Title       string
	Track       int
	Album       string
	Artist      string
	AlbumArtist string
}

// Request describes one clip extraction.
type Request struct {
	Input  string
	Output string

	// Start and End bound the clip in seconds. When UseDuration is set the
	// command is emitted with -t End-Start instead of -to End.
	Start       float64
	End         float64
	UseDuration bool

	// StreamCopy trims without re-encoding (video clips). Mutually exclusive
	// with Audio.
	StreamCopy bool

	// DropVideo discards all video streams (-vn) for audio-only extraction.
	DropVideo bool

	// Audio requests re-encoding of the first audio stream. Nil together
	// with StreamCopy false copies the audio stream as-is.
	Audio *AudioEncode

	// Fade applies symmetric afade in/out filters of the given length in
	// seconds. Only meaningful while re-encoding.
	Fade float64

	// Cover muxes the given image as an attached picture alongside the
	// audio stream.
	Cover string

	Metadata *Metadata
}

// Validate reports structurally impossible requests before ffmpeg sees them.
func (r Request) Validate() error {
	if r.Input == "" {
		return errors.New("input path required")
	}
	if r.Output == "" {
		return errors.New("output path required")
	}
	if r.End < r.Start {
		return fmt.Errorf("end %.3f before start %.3f", r.End, r.Start)
	}
	if r.StreamCopy && r.Audio != nil {
		return errors.New("stream copy and audio re-encode are mutually exclusive")
	}
	return nil
}

// BuildArgs renders the ffmpeg argument list for the request.
func BuildArgs(r Request) []string {
	args := []string{"-y", "-hide_banner", "-loglevel", "error"}
	args = append(args, "-ss", formatSeconds(r.Start))
	if r.UseDuration {
		dur := r.End - r.Start
		if dur < minClipSeconds {
			dur = minClipSeconds
		}
		args = append(args, "-t", formatSeconds(dur))
	} else {
		args = append(args, "-to", formatSeconds(r.End))
	}
	args = append(args, "-i", r.Input)

	switch {
	case r.StreamCopy:
		args = append(args, "-c", "copy")
	case r.Cover != "":
		args = append(args, "-i", r.Cover)
		args = append(args, "-map", "0:a:0", "-map", "1:0")
		args = append(args, audioArgs(r)...)
		args = append(args,
			"-c:v", "mjpeg",
			"-disposition:v:0", "attached_pic",
			"-metadata:s:v:0", "title=Album cover",
			"-metadata:s:v:0", "comment=Cover (front)",
		)
	default:
		if r.DropVideo {
			args = append(args, "-vn")
		}
		args = append(args, audioArgs(r)...)
	}

	if m := r.Metadata; m != nil {
		if m.Title != "" {
			args = append(args, "-metadata", "title="+m.Title)
		}
		if m.Track > 0 {
			args = append(args, "-metadata", "track="+strconv.Itoa(m.Track))
		}
		if m.Album != "" {
			args = append(args, "-metadata", "album="+m.Album)
		}
		if m.Artist != "" {
			args = append(args, "-metadata", "artist="+m.Artist)
		}
		if m.AlbumArtist != "" {
			args = append(args, "-metadata", "album_artist="+m.AlbumArtist)
		}
	}

	args = append(args, r.Output)
	return args
}

func audioArgs(r Request) []string {
	var args []string
	if r.Audio != nil {
		args = append(args, "-c:a", r.Audio.Codec, "-b:a", r.Audio.Bitrate)
	} else {
		args = append(args, "-c:a", "copy")
	}
	if r.Fade > 0 && r.Audio != nil {
		args = append(args, "-af", fadeFilter(r))
	}
	return args
}

func fadeFilter(r Request) string {
	duration := r.End - r.Start
	outStart := duration - r.Fade
	if outStart < 0 {
		outStart = 0
	}
	return fmt.Sprintf("afade=t=in:st=0:d=%s,afade=t=out:st=%s:d=%s",
		formatSeconds(r.Fade), formatSeconds(outStart), formatSeconds(r.Fade))
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// Runner executes transcode requests.
type Runner interface {
	Run(ctx context.Context, req Request) error
	ExtractCover(ctx context.Context, mediaPath, destDir string) (string, error)
	Retag(ctx context.Context, mediaPath string, meta Metadata) error
}

// Option configures the CLI runner.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// CLI wraps the ffmpeg command-line tool.
type CLI struct {
	binary string
}

// NewCLI constructs a runner using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "ffmpeg"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// CommandLine returns the full command for a request, for logging.
func (c *CLI) CommandLine(req Request) string {
	return c.binary + " " + strings.Join(BuildArgs(req), " ")
}

// Run executes one transcode and surfaces stderr on failure.
func (c *CLI) Run(ctx context.Context, req Request) error {
	if err := req.Validate(); err != nil {
		return err
	}
	args := BuildArgs(req)
	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w: %s", c.binary, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// ExtractCover pulls the attached picture out of mediaPath into destDir.
// JPEG is attempted first, PNG second. The extracted file path is returned,
// or an error when the source carries no usable picture stream.
func (c *CLI) ExtractCover(ctx context.Context, mediaPath, destDir string) (string, error) {
	var lastErr error
	for _, ext := range []string{".jpg", ".png"} {
		dest := filepath.Join(destDir, "cover"+ext)
		args := []string{"-y", "-hide_banner", "-loglevel", "error", "-i", mediaPath, "-an", "-c:v", "copy", dest}
		cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
		var stderr bytes.Buffer
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			lastErr = fmt.Errorf("extract cover to %s: %w: %s", dest, err, strings.TrimSpace(stderr.String()))
			_ = os.Remove(dest)
			continue
		}
		if info, err := os.Stat(dest); err == nil && info.Size() > 0 {
			return dest, nil
		}
		_ = os.Remove(dest)
	}
	if lastErr == nil {
		lastErr = errors.New("no attached picture stream")
	}
	return "", lastErr
}

// Retag rewrites the container-level tags of mediaPath in place via a
// stream-copy pass through a sibling temp file.
func (c *CLI) Retag(ctx context.Context, mediaPath string, meta Metadata) error {
	dir := filepath.Dir(mediaPath)
	ext := filepath.Ext(mediaPath)
	tmp := filepath.Join(dir, ".retag-"+filepath.Base(mediaPath))
	if filepath.Ext(tmp) != ext {
		tmp += ext
	}
	args := []string{"-y", "-hide_banner", "-loglevel", "error", "-i", mediaPath, "-c", "copy"}
	if meta.Artist != "" {
		args = append(args, "-metadata", "artist="+meta.Artist)
	}
	if meta.AlbumArtist != "" {
		args = append(args, "-metadata", "album_artist="+meta.AlbumArtist)
	}
	if meta.Album != "" {
		args = append(args, "-metadata", "album="+meta.Album)
	}
	if meta.Title != "" {
		args = append(args, "-metadata", "title="+meta.Title)
	}
	args = append(args, tmp)
	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("retag %s: %w: %s", mediaPath, err, strings.TrimSpace(stderr.String()))
	}
	return os.Rename(tmp, mediaPath)
}
