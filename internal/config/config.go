package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	AudioDownloadDir string `toml:"audio_dl_dir"`
	VideoDownloadDir string `toml:"video_dl_dir"`
	SplitDir         string `toml:"split_dir"`
	LogDir           string `toml:"log_dir"`
}

// Timecode contains settings for the timecode mini-language and the filename
// suffixes derived from it.
type Timecode struct {
	DefaultFade          float64 `toml:"default_fade"`
	FilenameIncludeRange bool    `toml:"filename_include_range"`
	FilenameIncludeFade  bool    `toml:"filename_include_fade"`
}

// Audio contains the re-encode parameters applied to produced audio clips.
type Audio struct {
	Codec   string `toml:"codec"`
	Bitrate string `toml:"bitrate"`
}

// Downloader contains yt-dlp network and workaround settings.
type Downloader struct {
	Retries            string `toml:"retries"`
	FragmentRetries    string `toml:"fragment_retries"`
	RetrySleep         string `toml:"retry_sleep"`
	ForceIPv4          bool   `toml:"force_ipv4"`
	CookiesFromBrowser string `toml:"cookies_from_browser"`
	AndroidClient      bool   `toml:"android_client"`
	AllowPlaylists     bool   `toml:"allow_playlists"`
	KeepInfoJSON       bool   `toml:"keep_infojson"`
}

// Cleanup controls the deferred-deletion queue for processed sources.
type Cleanup struct {
	// Mode is one of "off", "immediate" (flush after each source), or
	// "batch" (flush once at the end of the run).
	Mode     string `toml:"mode"`
	TrashDir string `toml:"trash_dir"`
}

// History contains configuration for the run/clip history database.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for ytsplit.
//
// Configuration sections by subsystem:
//   - Language: user-facing message locale ("de" or "en")
//   - Paths: download, split output, and log directories
//   - Timecode: default fade and filename suffix options
//   - Audio: clip re-encode codec and bitrate
//   - Downloader: yt-dlp retries, cookies, and client workarounds
//   - Cleanup: deferred trash queue behaviour
//   - History: run/clip history database
//   - Logging: log format and level
type Config struct {
	Language   string     `toml:"language"`
	Paths      Paths      `toml:"paths"`
	Timecode   Timecode   `toml:"timecode"`
	Audio      Audio      `toml:"audio"`
	Downloader Downloader `toml:"downloader"`
	Cleanup    Cleanup    `toml:"cleanup"`
	History    History    `toml:"history"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/ytsplit/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The second and third
// return values report the resolved path and whether a file existed there.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("ytsplit.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the pipeline writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		c.Paths.AudioDownloadDir,
		c.Paths.VideoDownloadDir,
		c.Paths.SplitDir,
		c.Paths.LogDir,
	}
	if c.Cleanup.Mode != CleanupOff && strings.TrimSpace(c.Cleanup.TrashDir) != "" {
		dirs = append(dirs, c.Cleanup.TrashDir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// FFmpegBinary returns the ffmpeg executable name.
func (c *Config) FFmpegBinary() string {
	return "ffmpeg"
}

// FFprobeBinary returns the ffprobe executable name used for media inspection.
func (c *Config) FFprobeBinary() string {
	return "ffprobe"
}

// YtDlpBinary returns the yt-dlp executable name used for acquisition.
func (c *Config) YtDlpBinary() string {
	return "yt-dlp"
}

// HistoryPath returns the resolved history database path.
func (c *Config) HistoryPath() string {
	return c.History.Path
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
