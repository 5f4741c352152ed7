package config

import (
	"fmt"
	"regexp"
)

var (
	bitratePattern = regexp.MustCompile(`^\d+k?$`)
	cookiesPattern = regexp.MustCompile(`^(edge|chrome|firefox|brave|vivaldi|opera)(:.+)?$`)
	retriesPattern = regexp.MustCompile(`^(\d+|infinite)$`)
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	switch c.Cleanup.Mode {
	case CleanupOff, CleanupImmediate, CleanupBatch:
	default:
		return fmt.Errorf("cleanup.mode: unsupported value %q (expected off, immediate, or batch)", c.Cleanup.Mode)
	}

	if !bitratePattern.MatchString(c.Audio.Bitrate) {
		return fmt.Errorf("audio.bitrate: unsupported value %q (expected e.g. \"192k\")", c.Audio.Bitrate)
	}

	if c.Downloader.CookiesFromBrowser != "" && !cookiesPattern.MatchString(c.Downloader.CookiesFromBrowser) {
		return fmt.Errorf("downloader.cookies_from_browser: unsupported value %q (expected edge|chrome|firefox|brave|vivaldi|opera[:PROFILE])", c.Downloader.CookiesFromBrowser)
	}

	if !retriesPattern.MatchString(c.Downloader.Retries) {
		return fmt.Errorf("downloader.retries: unsupported value %q", c.Downloader.Retries)
	}
	if !retriesPattern.MatchString(c.Downloader.FragmentRetries) {
		return fmt.Errorf("downloader.fragment_retries: unsupported value %q", c.Downloader.FragmentRetries)
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (expected console or json)", c.Logging.Format)
	}

	return nil
}
