// Package fetch wraps yt-dlp to acquire remote media as local files.
//
// Audio downloads land as MP3 with embedded thumbnail and metadata, video
// downloads as the best available stream pair merged into MP4. Uploader and
// channel information is lifted from the sidecar .info.json and written back
// onto audio files as artist tags.
//
// yt-dlp failure output is classified into recovery categories: cookie
// extraction problems retry once without cookies, known extractor breakage
// triggers a self-update and one retry, and some fragment errors still leave
// a usable file behind which is picked up anyway.
package fetch
