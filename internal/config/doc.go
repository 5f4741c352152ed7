// Package config loads, normalizes, and validates ytsplit configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI needs: download/split/trash directories, the timecode filename
// options, audio encoding parameters, and the yt-dlp network workarounds.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
