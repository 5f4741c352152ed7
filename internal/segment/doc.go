// Package segment turns chapter lists and timecode ranges into concrete
// transcode jobs and drives them sequentially through the ffmpeg runner.
//
// Two modes share the fade, clamp, and naming logic. Chapter mode produces
// one clip per chapter of the source, named "<stem> - NN - <label><ext>".
// Timecode mode produces one clip per parsed range, named
// "<stem>__tcNN<suffix><ext>", where the suffix optionally encodes the
// range bounds and fade length.
//
// Jobs within one source run strictly in order; numbering is positional and
// stable across runs, so re-running over identical input overwrites the same
// files. A runner failure aborts the source.
package segment
