// Package textutil provides text processing utilities for filename
// sanitization and compact time formatting.
//
// The primary use cases are:
//   - Sanitizing chapter titles and labels for safe filesystem use
//   - Rendering durations for console output (clock style) and for
//     deterministic filename suffixes (compact style)
package textutil
