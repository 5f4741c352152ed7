// Package ffmpeg builds and runs ffmpeg invocations for clip extraction.
//
// The core never inspects ffmpeg internals: callers describe one transcode
// declaratively as a Request and hand it to a Runner. The CLI implementation
// translates the request into argument lists matching the two supported
// shapes, audio re-encode (optional fades, optional cover mux) and lossless
// video stream-copy trim.
package ffmpeg
