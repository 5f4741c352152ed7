// Command ytsplit downloads media via yt-dlp and splits it into clips,
// either along embedded chapters or along a compact timecode specification.
package main
