package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeCleanup(); err != nil {
		return err
	}
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	c.normalizeLanguage()
	c.normalizeTimecode()
	c.normalizeAudio()
	c.normalizeDownloader()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.AudioDownloadDir) == "" {
		c.Paths.AudioDownloadDir = defaultAudioDownloadDir
	}
	if c.Paths.AudioDownloadDir, err = expandPath(c.Paths.AudioDownloadDir); err != nil {
		return fmt.Errorf("paths.audio_dl_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.VideoDownloadDir) == "" {
		c.Paths.VideoDownloadDir = c.Paths.AudioDownloadDir
	}
	if c.Paths.VideoDownloadDir, err = expandPath(c.Paths.VideoDownloadDir); err != nil {
		return fmt.Errorf("paths.video_dl_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.SplitDir) == "" {
		c.Paths.SplitDir = defaultSplitDir
	}
	if c.Paths.SplitDir, err = expandPath(c.Paths.SplitDir); err != nil {
		return fmt.Errorf("paths.split_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeCleanup() error {
	c.Cleanup.Mode = strings.ToLower(strings.TrimSpace(c.Cleanup.Mode))
	if c.Cleanup.Mode == "" {
		c.Cleanup.Mode = defaultCleanupMode
	}
	if strings.TrimSpace(c.Cleanup.TrashDir) == "" {
		c.Cleanup.TrashDir = defaultTrashDir
	}
	var err error
	if c.Cleanup.TrashDir, err = expandPath(c.Cleanup.TrashDir); err != nil {
		return fmt.Errorf("cleanup.trash_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeHistory() error {
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = filepath.Join(c.Paths.LogDir, "history.db")
		return nil
	}
	var err error
	if c.History.Path, err = expandPath(c.History.Path); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLanguage() {
	c.Language = strings.ToLower(strings.TrimSpace(c.Language))
	if c.Language == "" {
		c.Language = defaultLanguage
	}
}

func (c *Config) normalizeTimecode() {
	if c.Timecode.DefaultFade < 0 {
		c.Timecode.DefaultFade = 0
	}
}

func (c *Config) normalizeAudio() {
	c.Audio.Codec = strings.TrimSpace(c.Audio.Codec)
	if c.Audio.Codec == "" {
		c.Audio.Codec = defaultAudioCodec
	}
	c.Audio.Bitrate = strings.ToLower(strings.TrimSpace(c.Audio.Bitrate))
	if c.Audio.Bitrate == "" {
		c.Audio.Bitrate = defaultAudioBitrate
	}
}

func (c *Config) normalizeDownloader() {
	if strings.TrimSpace(c.Downloader.Retries) == "" {
		c.Downloader.Retries = defaultRetries
	}
	if strings.TrimSpace(c.Downloader.FragmentRetries) == "" {
		c.Downloader.FragmentRetries = defaultFragmentRetries
	}
	if strings.TrimSpace(c.Downloader.RetrySleep) == "" {
		c.Downloader.RetrySleep = defaultRetrySleep
	}
	c.Downloader.CookiesFromBrowser = strings.TrimSpace(c.Downloader.CookiesFromBrowser)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
