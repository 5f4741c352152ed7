package fetch

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"ytsplit/internal/config"
	"ytsplit/internal/diag"
	"ytsplit/internal/i18n"
	"ytsplit/internal/media/ffmpeg"
)

var commandContext = exec.CommandContext

// Result describes a completed download.
type Result struct {
	Path     string
	Uploader string
}

// Fetcher downloads remote media via yt-dlp.
type Fetcher struct {
	binary string
	cfg    *config.Config
	logger *slog.Logger
	msgs   i18n.Messages
	tagger ffmpeg.Runner
}

// Option configures the fetcher.
type Option func(*Fetcher)

// WithBinary overrides the default yt-dlp binary name.
func WithBinary(binary string) Option {
	return func(f *Fetcher) {
		if binary != "" {
			f.binary = binary
		}
	}
}

// New constructs a fetcher. The tagger is used to write uploader tags onto
// downloaded audio files; it may be nil to skip tagging.
func New(cfg *config.Config, logger *slog.Logger, msgs i18n.Messages, tagger ffmpeg.Runner, opts ...Option) *Fetcher {
	f := &Fetcher{
		binary: cfg.YtDlpBinary(),
		cfg:    cfg,
		logger: logger.With(slog.String("component", "fetch")),
		msgs:   msgs,
		tagger: tagger,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// DownloadAudio fetches url as MP3 into the configured audio directory,
// tags it with the uploader, and returns its path.
func (f *Fetcher) DownloadAudio(ctx context.Context, url string) (Result, error) {
	dlDir := f.cfg.Paths.AudioDownloadDir
	if err := os.MkdirAll(dlDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create download directory: %w", err)
	}

	args := f.playlistFlag()
	args = append(args,
		"-x",
		"--audio-format", "mp3",
		"--audio-quality", strings.ToUpper(f.cfg.Audio.Bitrate),
		"--embed-thumbnail",
		"--add-metadata",
		"--write-info-json",
		"--newline",
		"-o", filepath.Join(dlDir, "%(title)s.%(ext)s"),
	)
	args = append(args, f.networkArgs()...)
	args = append(args, NormalizeURL(url, f.cfg.Downloader.AllowPlaylists))

	if err := f.runWithRecovery(ctx, args, true); err != nil {
		return Result{}, err
	}

	path, err := newestFile(dlDir, []string{".mp3"})
	if err != nil {
		return Result{}, diag.Wrap(diag.ErrNotFound, "fetch", "download audio",
			f.msgs.Tr("Kein MP3 nach Download gefunden", "no MP3 file found after download"), err)
	}

	uploader := ReadUploader(path)
	if uploader != "" && f.tagger != nil {
		err := f.tagger.Retag(ctx, path, ffmpeg.Metadata{Artist: uploader, AlbumArtist: uploader})
		if err != nil {
			f.logger.Warn(f.msgs.Tr("Artist-Tag konnte nicht gesetzt werden", "could not set artist tag"),
				slog.String("file", filepath.Base(path)), slog.Any("error", err))
		}
	}

	f.cleanupInfoJSON(path)
	return Result{Path: path, Uploader: uploader}, nil
}

// DownloadVideo fetches url as the best available video+audio pair merged
// into MP4 and returns its path.
func (f *Fetcher) DownloadVideo(ctx context.Context, url string) (Result, error) {
	dlDir := f.cfg.Paths.VideoDownloadDir
	if err := os.MkdirAll(dlDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create download directory: %w", err)
	}

	args := f.playlistFlag()
	args = append(args,
		"--newline",
		"-f", "bv*+ba/b",
		"--merge-output-format", "mp4",
		"-o", filepath.Join(dlDir, "%(title)s.%(ext)s"),
	)
	args = append(args, f.networkArgs()...)
	if f.cfg.Downloader.KeepInfoJSON {
		args = append(args, "--write-info-json")
	} else {
		args = append(args, "--no-write-info-json")
	}
	args = append(args, NormalizeURL(url, f.cfg.Downloader.AllowPlaylists))

	if err := f.runWithRecovery(ctx, args, false); err != nil {
		return Result{}, err
	}

	path, err := newestFile(dlDir, []string{".mp4", ".mkv", ".webm", ".mov"})
	if err != nil {
		return Result{}, diag.Wrap(diag.ErrNotFound, "fetch", "download video",
			f.msgs.Tr("Video heruntergeladen, aber keine Datei gefunden", "video was downloaded, but no resulting file was found"), err)
	}

	uploader := ReadUploader(path)
	f.cleanupInfoJSON(path)
	return Result{Path: path, Uploader: uploader}, nil
}

func (f *Fetcher) playlistFlag() []string {
	if f.cfg.Downloader.AllowPlaylists {
		return []string{"--yes-playlist"}
	}
	return []string{"--no-playlist"}
}

func (f *Fetcher) networkArgs() []string {
	var args []string
	if f.cfg.Downloader.ForceIPv4 {
		args = append(args, "--force-ipv4")
	}
	args = append(args,
		"--retries", f.cfg.Downloader.Retries,
		"--fragment-retries", f.cfg.Downloader.FragmentRetries,
		"--retry-sleep", f.cfg.Downloader.RetrySleep,
	)
	if f.cfg.Downloader.CookiesFromBrowser != "" {
		args = append(args, "--cookies-from-browser", f.cfg.Downloader.CookiesFromBrowser)
	}
	if f.cfg.Downloader.AndroidClient {
		args = append(args, "--extractor-args", "youtube:player_client=android")
	}
	return args
}

// runWithRecovery executes yt-dlp and applies the recovery ladder on
// failure: cookie problems retry once without cookie flags, known extractor
// breakage self-updates yt-dlp and retries once. With tolerateFragmentErrors
// set, fragment-level failures are downgraded to a warning so the caller can
// still look for a usable output file.
func (f *Fetcher) runWithRecovery(ctx context.Context, args []string, tolerateFragmentErrors bool) error {
	err := f.run(ctx, args)
	if err == nil {
		return nil
	}
	msg := err.Error()

	switch {
	case isCookieError(msg, args):
		f.logger.Warn(f.msgs.Tr(
			"Cookies konnten nicht gelesen werden, erneuter Versuch ohne Cookies",
			"cookies could not be read, retrying without cookies"))
		stripped := stripOption(args, "--cookies-from-browser")
		stripped = stripOption(stripped, "--cookies")
		err = f.run(ctx, stripped)

	case isUpdateWorthy(msg):
		f.logger.Warn(f.msgs.Tr(
			"yt-dlp meldet einen bekannten Downloadfehler, Update und erneuter Versuch",
			"yt-dlp reported a known download error, updating and retrying"))
		f.selfUpdate(ctx)
		err = f.run(ctx, args)
		if err != nil && tolerateFragmentErrors {
			f.logger.Warn(f.msgs.Tr(
				"Fehler auch nach Update, prüfe trotzdem auf erzeugte Datei",
				"error after update as well, still checking for a created file"))
			return nil
		}

	case tolerateFragmentErrors && isFragmentError(msg):
		f.logger.Warn(f.msgs.Tr(
			"yt-dlp meldete Fragment-Fehler, prüfe trotzdem auf erzeugte Datei",
			"yt-dlp reported fragment errors, still checking for a created file"))
		return nil
	}

	if err != nil {
		return diag.Wrap(diag.ErrExternalTool, "fetch", "yt-dlp", "download failed", err)
	}
	return nil
}

func (f *Fetcher) run(ctx context.Context, args []string) error {
	cmd := commandContext(ctx, f.binary, args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", f.binary, err)
	}

	var tail []string
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		f.logger.Debug("yt-dlp", slog.String("line", line))
		tail = append(tail, line)
		if len(tail) > 20 {
			tail = tail[1:]
		}
	}

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("%s: %w: %s", f.binary, err, strings.Join(tail, "\n"))
	}
	return nil
}

// selfUpdate attempts yt-dlp's built-in updater. Failure is logged and
// otherwise ignored; the retry decides whether the run succeeds.
func (f *Fetcher) selfUpdate(ctx context.Context) {
	cmd := commandContext(ctx, f.binary, "-U") //nolint:gosec
	if err := cmd.Run(); err != nil {
		f.logger.Warn(f.msgs.Tr("yt-dlp-Update fehlgeschlagen", "yt-dlp update failed"), slog.Any("error", err))
	}
}

func (f *Fetcher) cleanupInfoJSON(path string) {
	if f.cfg.Downloader.KeepInfoJSON {
		return
	}
	if removed := RemoveInfoJSON(path); removed > 0 {
		f.logger.Info(f.msgs.Tr(".info.json entfernt", "removed .info.json"), slog.Int("count", removed))
	}
}

func isCookieError(msg string, args []string) bool {
	if strings.Contains(msg, "Failed to decrypt with DPAPI") ||
		strings.Contains(msg, "Could not copy Chrome cookie database") {
		return true
	}
	hasCookieFlag := false
	for _, arg := range args {
		if arg == "--cookies-from-browser" || arg == "--cookies" {
			hasCookieFlag = true
			break
		}
	}
	return hasCookieFlag && strings.Contains(strings.ToLower(msg), "cookies from browser")
}

var updateWorthyMarkers = []string{
	"HTTP Error 403",
	"unable to download video data",
	"returned error 403",
	"Some tv client https formats have been skipped",
	"SABR-only",
	"Server-Side Ad Placement",
	"Did not get any data blocks",
	"fragment not found",
	"missing a url",
	"unable to extract",
}

func isUpdateWorthy(msg string) bool {
	for _, marker := range updateWorthyMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

func isFragmentError(msg string) bool {
	return strings.Contains(msg, "Did not get any data blocks") ||
		strings.Contains(msg, "fragment not found")
}

// stripOption removes opt and its immediate argument from args.
func stripOption(args []string, opt string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		if args[i] == opt {
			if i+1 < len(args) {
				i++
			}
			continue
		}
		out = append(out, args[i])
	}
	return out
}

// newestFile returns the most recently modified file in dir with one of the
// given extensions.
func newestFile(dir string, exts []string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	var best string
	var bestMod int64
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		matched := false
		for _, ext := range exts {
			if strings.EqualFold(filepath.Ext(name), ext) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); best == "" || mod > bestMod {
			best = filepath.Join(dir, name)
			bestMod = mod
		}
	}
	if best == "" {
		return "", fmt.Errorf("no matching file in %s", dir)
	}
	return best, nil
}
