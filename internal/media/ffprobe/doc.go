// Package ffprobe wraps the ffprobe CLI and decodes its JSON output into
// typed results at the process boundary, so downstream components never
// inspect raw untyped probe data.
package ffprobe
