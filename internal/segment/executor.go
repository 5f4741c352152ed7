package segment

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"ytsplit/internal/chapters"
	"ytsplit/internal/config"
	"ytsplit/internal/diag"
	"ytsplit/internal/i18n"
	"ytsplit/internal/media/ffmpeg"
	"ytsplit/internal/progress"
	"ytsplit/internal/textutil"
	"ytsplit/internal/timecode"
)

const progressBarWidth = 24

// Executor drives segmentation jobs through an ffmpeg runner.
type Executor struct {
	runner ffmpeg.Runner
	cfg    *config.Config
	logger *slog.Logger
	msgs   i18n.Messages
	line   *progress.Line
}

// New constructs an executor. The progress line renders to stdout when it is
// a terminal and stays silent otherwise.
func New(runner ffmpeg.Runner, cfg *config.Config, logger *slog.Logger, msgs i18n.Messages) *Executor {
	return &Executor{
		runner: runner,
		cfg:    cfg,
		logger: logger.With(slog.String("component", "segment")),
		msgs:   msgs,
		line:   progress.NewLine(os.Stdout),
	}
}

// ChapterRequest describes one chapter-mode segmentation of a source file.
type ChapterRequest struct {
	Source    string
	OutDir    string
	Chapters  []chapters.Chapter
	Uploader  string
	KeepCover bool
}

// SplitChapters produces one audio clip per chapter and returns the
// completed jobs. The album tag is the source file's stem; cover art is
// carried onto every clip when requested and extractable. A runner failure
// aborts the remaining chapters.
func (e *Executor) SplitChapters(ctx context.Context, req ChapterRequest) ([]Job, error) {
	jobs := ChapterJobs(req.Source, req.OutDir, req.Chapters)
	if len(jobs) == 0 {
		return nil, nil
	}

	album, _ := stemAndExt(req.Source)

	var cover string
	if req.KeepCover {
		tmpDir, err := os.MkdirTemp("", "ytsplit-cover-")
		if err != nil {
			return nil, fmt.Errorf("create cover workspace: %w", err)
		}
		defer os.RemoveAll(tmpDir)

		cover, err = e.runner.ExtractCover(ctx, req.Source, tmpDir)
		if err != nil {
			e.logger.Warn(e.msgs.Tr("Cover konnte nicht extrahiert werden", "could not extract cover"),
				slog.String("source", filepath.Base(req.Source)), slog.Any("error", err))
			cover = ""
		}
	}

	produced := make([]Job, 0, len(jobs))
	started := time.Now()
	defer e.line.Done()

	for i, job := range jobs {
		e.renderProgress(i+1, len(jobs), job.Label, started)

		meta := &ffmpeg.Metadata{
			Title: job.Label,
			Track: job.Track,
			Album: album,
		}
		if req.Uploader != "" {
			meta.Artist = req.Uploader
			meta.AlbumArtist = req.Uploader
		}

		transcode := ffmpeg.Request{
			Input:       job.Source,
			Output:      job.Output,
			Start:       job.Start,
			End:         job.End,
			UseDuration: true,
			Audio:       &ffmpeg.AudioEncode{Codec: e.cfg.Audio.Codec, Bitrate: e.cfg.Audio.Bitrate},
			Cover:       cover,
			Metadata:    meta,
		}
		if err := e.runner.Run(ctx, transcode); err != nil {
			return produced, diag.Wrap(diag.ErrExternalTool, "segment", "split chapters",
				fmt.Sprintf("chapter %d of %s", job.Track, filepath.Base(req.Source)), err)
		}
		produced = append(produced, job)
		e.logger.Info(e.msgs.Tr("Kapitel-Clip erzeugt", "chapter clip created"),
			slog.Int("track", job.Track),
			slog.String("length", textutil.FormatClock(job.Duration())),
			slog.String("output", filepath.Base(job.Output)))
	}
	return produced, nil
}

// TimecodeRequest describes one timecode-mode segmentation of a source file.
type TimecodeRequest struct {
	Source        string
	Ranges        []timecode.Range
	TotalDuration float64
	Video         bool
}

// ApplyTimecodes produces one clip per range and returns the completed
// jobs. Audio clips re-encode with optional fades; video clips are lossless
// stream-copy trims without fade support. Ranges without positive duration
// are logged and skipped.
func (e *Executor) ApplyTimecodes(ctx context.Context, req TimecodeRequest) ([]Job, error) {
	naming := Naming{
		IncludeRange: e.cfg.Timecode.FilenameIncludeRange,
		IncludeFade:  e.cfg.Timecode.FilenameIncludeFade,
	}
	jobs, skipped := TimecodeJobs(req.Source, req.Ranges, req.TotalDuration, naming)
	for _, reason := range skipped {
		e.logger.Warn(e.msgs.Tr("Timecode-Range übersprungen", "timecode range skipped"),
			slog.String("source", filepath.Base(req.Source)), slog.String("reason", reason))
	}
	if len(jobs) == 0 {
		e.logger.Warn(e.msgs.Tr("Keine gültigen Timecode-Clips erzeugt", "no valid timecode clips were created"),
			slog.String("source", filepath.Base(req.Source)))
		return nil, nil
	}

	produced := make([]Job, 0, len(jobs))
	started := time.Now()
	defer e.line.Done()

	for i, job := range jobs {
		e.renderProgress(i+1, len(jobs), job.Label, started)
		e.logger.Info(e.msgs.Tr("Erzeuge Clip", "creating clip"),
			slog.Int("clip", job.Track),
			slog.String("range", fmt.Sprintf("%.1fs-%.1fs", job.Start, job.End)),
			slog.String("output", filepath.Base(job.Output)))

		transcode := ffmpeg.Request{
			Input:  job.Source,
			Output: job.Output,
			Start:  job.Start,
			End:    job.End,
		}
		if req.Video {
			transcode.StreamCopy = true
		} else {
			transcode.DropVideo = true
			transcode.Audio = &ffmpeg.AudioEncode{Codec: e.cfg.Audio.Codec, Bitrate: e.cfg.Audio.Bitrate}
			transcode.Fade = job.Fade
		}
		if err := e.runner.Run(ctx, transcode); err != nil {
			return produced, diag.Wrap(diag.ErrExternalTool, "segment", "apply timecodes",
				fmt.Sprintf("clip %d of %s", job.Track, filepath.Base(req.Source)), err)
		}
		produced = append(produced, job)
	}
	return produced, nil
}

func (e *Executor) renderProgress(i, total int, label string, started time.Time) {
	elapsed := time.Since(started).Seconds()
	avg := elapsed / float64(i)
	eta := avg * float64(total-i)
	e.line.Update(fmt.Sprintf("[%s] %d/%d  %s  |  elapsed %s  |  ETA %s",
		progress.Bar(progressBarWidth, i, total), i, total, label,
		textutil.FormatClock(elapsed), textutil.FormatClock(eta)))
}
