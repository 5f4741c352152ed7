// Package logging assembles the structured slog loggers used across ytsplit.
//
// It owns the configurable console/JSON handlers and centralizes level and
// output plumbing. The console handler renders one line per record with a
// leading component tag and key=value attributes; the JSON handler emits the
// same records for machine consumption. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape and routing as the rest of the system.
package logging
