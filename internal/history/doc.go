// Package history persists run and clip records in a SQLite database so
// past downloads and splits can be reviewed after the fact. Recording is
// best-effort: a broken history database never blocks the pipeline.
package history
