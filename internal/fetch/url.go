package fetch

import (
	"net/url"
	"strings"
)

var playlistParams = []string{"list", "playlist", "start_radio", "index"}

// NormalizeURL strips playlist-related query parameters from YouTube URLs
// when playlists are disabled, leaving every other parameter untouched.
// Non-YouTube and unparsable URLs pass through unchanged.
func NormalizeURL(raw string, allowPlaylists bool) string {
	if allowPlaylists {
		return raw
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	host := strings.ToLower(parsed.Hostname())
	if host != "youtu.be" && host != "www.youtu.be" && !strings.Contains(host, "youtube.com") {
		return raw
	}
	query := parsed.Query()
	changed := false
	for _, key := range playlistParams {
		if query.Has(key) {
			query.Del(key)
			changed = true
		}
	}
	if !changed {
		return raw
	}
	parsed.RawQuery = query.Encode()
	return parsed.String()
}
