package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"ytsplit/internal/chapters"
	"ytsplit/internal/config"
	"ytsplit/internal/diag"
	"ytsplit/internal/history"
	"ytsplit/internal/i18n"
	"ytsplit/internal/media/ffprobe"
	"ytsplit/internal/segment"
	"ytsplit/internal/timecode"
	"ytsplit/internal/trash"
)

// Segmenter executes segmentation jobs for one source.
type Segmenter interface {
	SplitChapters(ctx context.Context, req segment.ChapterRequest) ([]segment.Job, error)
	ApplyTimecodes(ctx context.Context, req segment.TimecodeRequest) ([]segment.Job, error)
}

// Request describes one source to process.
type Request struct {
	Source string
	// Spec selects timecode mode when non-empty; chapter mode otherwise.
	Spec string
	// Video switches timecode mode to lossless stream-copy trimming.
	Video bool
	// Uploader, when known from acquisition, is written as artist metadata
	// on chapter clips.
	Uploader string
	// URL is recorded in history for downloaded sources.
	URL string
	// KeepSource leaves the file out of the trash queue.
	KeepSource bool
}

// Outcome reports what happened to one source.
type Outcome struct {
	RunID   string
	Clips   []string
	Skipped bool
	Reason  string
}

// Pipeline wires probing, chapter extraction, timecode resolution, and
// segmentation together.
type Pipeline struct {
	cfg       *config.Config
	logger    *slog.Logger
	msgs      i18n.Messages
	segmenter Segmenter
	store     *history.Store
	queue     *trash.Queue

	inspect func(ctx context.Context, binary, path string) (ffprobe.Result, error)
}

// New constructs a pipeline. store may be nil to disable history recording.
func New(cfg *config.Config, logger *slog.Logger, msgs i18n.Messages, segmenter Segmenter, store *history.Store, queue *trash.Queue) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		logger:    logger.With(slog.String("component", "pipeline")),
		msgs:      msgs,
		segmenter: segmenter,
		store:     store,
		queue:     queue,
		inspect:   ffprobe.Inspect,
	}
}

// Process runs the full per-source sequence. Sources without chapters in
// chapter mode, and "sp" specs without split points, are skipped rather
// than failed.
func (p *Pipeline) Process(ctx context.Context, req Request) (Outcome, error) {
	outcome := Outcome{RunID: uuid.NewString()}
	mode := "chapters"
	if req.Spec != "" {
		mode = "timecodes"
	}
	if err := p.store.StartRun(ctx, outcome.RunID, mode, req.URL, req.Source); err != nil {
		p.logger.Warn("history recording unavailable", slog.Any("error", err))
	}

	jobs, skipReason, err := p.process(ctx, req)
	outcome.Clips = outputPaths(jobs)

	switch {
	case err != nil:
		p.finishRun(ctx, outcome.RunID, history.StatusFailed, err.Error(), req, len(jobs))
		return outcome, err
	case skipReason != "":
		outcome.Skipped = true
		outcome.Reason = skipReason
		p.finishRun(ctx, outcome.RunID, history.StatusSkipped, skipReason, req, 0)
		return outcome, nil
	}

	p.recordClips(ctx, outcome.RunID, jobs)
	p.finishRun(ctx, outcome.RunID, history.StatusCompleted, "", req, len(jobs))

	if !req.KeepSource {
		p.queue.AddSource(req.Source)
	}
	if err := p.queue.SourceDone(); err != nil {
		p.logger.Warn(p.msgs.Tr("Papierkorb-Verschiebung fehlgeschlagen", "trash move failed"), slog.Any("error", err))
	}
	return outcome, nil
}

func (p *Pipeline) process(ctx context.Context, req Request) (jobs []segment.Job, skipReason string, err error) {
	probe, err := p.inspect(ctx, p.cfg.FFprobeBinary(), req.Source)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, "", diag.Wrap(diag.ErrExternalTool, "pipeline", "probe", "ffprobe is not available", err)
		}
		// A failed or unparsable probe degrades to an empty result; the run
		// continues with duration 0 and no chapters.
		p.logger.Warn(p.msgs.Tr("ffprobe-Analyse fehlgeschlagen, fahre ohne Kapitel fort", "ffprobe inspection failed, continuing without chapters"),
			slog.String("source", filepath.Base(req.Source)), slog.Any("error", err))
		probe = ffprobe.Result{}
	}
	total := probe.DurationSeconds()

	extraction, err := chapters.Extract(probe, req.Source, total)
	if err != nil {
		return nil, "", err
	}
	if req.Spec != "" {
		return p.processTimecodes(ctx, req, extraction, total)
	}
	return p.processChapters(ctx, req, probe, extraction)
}

func (p *Pipeline) processChapters(ctx context.Context, req Request, probe ffprobe.Result, extraction chapters.Extraction) ([]segment.Job, string, error) {
	if extraction.Origin == chapters.OriginNone || len(extraction.Chapters) == 0 {
		reason := p.msgs.Tr("keine Kapitel gefunden, nichts zu splitten", "no chapters found, nothing to split")
		p.logger.Info(reason, slog.String("source", filepath.Base(req.Source)))
		return nil, reason, nil
	}

	p.logger.Info(p.msgs.Tr("Splitte nach Kapiteln", "splitting by chapters"),
		slog.String("source", filepath.Base(req.Source)),
		slog.Int("chapters", len(extraction.Chapters)),
		slog.String("origin", originLabel(extraction.Origin)))

	jobs, err := p.segmenter.SplitChapters(ctx, segment.ChapterRequest{
		Source:    req.Source,
		OutDir:    p.cfg.Paths.SplitDir,
		Chapters:  extraction.Chapters,
		Uploader:  req.Uploader,
		KeepCover: probe.HasAttachedPicture(),
	})
	return jobs, "", err
}

func (p *Pipeline) processTimecodes(ctx context.Context, req Request, extraction chapters.Extraction, total float64) ([]segment.Job, string, error) {
	spec := req.Spec
	if strings.Contains(spec, "sp") {
		if len(extraction.SplitPoints) == 0 {
			reason := p.msgs.Tr("'sp' verwendet, aber keine Splitpunkte gefunden", "'sp' used, but no split points found")
			p.logger.Warn(reason, slog.String("source", filepath.Base(req.Source)))
			return nil, reason, nil
		}
		resolved := timecode.ResolveSplits(spec, extraction.SplitPoints, total)
		if resolved != spec {
			p.logger.Info(p.msgs.Tr("'sp'-Notation aufgelöst", "resolved 'sp' notation"),
				slog.String("spec", spec), slog.String("resolved", resolved))
		}
		spec = resolved
	}

	ranges, dropped := timecode.ParseSpec(spec, p.cfg.Timecode.DefaultFade)
	for _, reason := range dropped {
		p.logger.Warn(p.msgs.Tr("Timecode-Segment verworfen", "timecode segment dropped"),
			slog.String("reason", reason))
	}
	if len(ranges) == 0 {
		reason := p.msgs.Tr("keine verwertbaren Timecodes", "no usable timecodes")
		p.logger.Warn(reason, slog.String("spec", req.Spec))
		return nil, reason, nil
	}

	jobs, err := p.segmenter.ApplyTimecodes(ctx, segment.TimecodeRequest{
		Source:        req.Source,
		Ranges:        ranges,
		TotalDuration: total,
		Video:         req.Video,
	})
	return jobs, "", err
}

// Flush empties the trash queue at the end of a batch run.
func (p *Pipeline) Flush() error {
	return p.queue.Close()
}

func (p *Pipeline) finishRun(ctx context.Context, runID, status, detail string, req Request, clipCount int) {
	if err := p.store.FinishRun(ctx, runID, status, detail, req.Source, req.Uploader, clipCount); err != nil {
		p.logger.Warn("history recording unavailable", slog.Any("error", err))
	}
}

func (p *Pipeline) recordClips(ctx context.Context, runID string, jobs []segment.Job) {
	for _, job := range jobs {
		record := history.Clip{
			RunID:      runID,
			Track:      job.Track,
			Label:      job.Label,
			OutputPath: job.Output,
			Start:      job.Start,
			End:        job.End,
			Fade:       job.Fade,
		}
		if err := p.store.AddClip(ctx, record); err != nil {
			p.logger.Warn("history recording unavailable", slog.Any("error", err))
			return
		}
	}
}

func outputPaths(jobs []segment.Job) []string {
	if len(jobs) == 0 {
		return nil
	}
	paths := make([]string, 0, len(jobs))
	for _, job := range jobs {
		paths = append(paths, job.Output)
	}
	return paths
}

func originLabel(origin chapters.Origin) string {
	switch origin {
	case chapters.OriginNative:
		return "native"
	case chapters.OriginCue:
		return "cue"
	default:
		return "none"
	}
}
