// Package pipeline sequences the per-source processing steps: probe the
// media file, extract chapters and split points, resolve and parse any
// timecode specification, run segmentation, and enqueue the source for
// deferred deletion. Each source is independent; nothing computed for one
// file carries over to the next except the trash queue.
package pipeline
