package fetch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// infoJSONCandidates lists the sidecar paths yt-dlp may have written for a
// downloaded file, both the "name.ext.info.json" and "name.info.json" forms.
func infoJSONCandidates(mediaPath string) []string {
	ext := filepath.Ext(mediaPath)
	stem := strings.TrimSuffix(mediaPath, ext)
	return []string{
		mediaPath + ".info.json",
		stem + ".info.json",
	}
}

// ReadUploader extracts the uploader (or channel) name from the sidecar
// .info.json of mediaPath. Missing or unreadable sidecars yield "".
func ReadUploader(mediaPath string) string {
	for _, candidate := range infoJSONCandidates(mediaPath) {
		data, err := os.ReadFile(candidate)
		if err != nil {
			continue
		}
		var payload struct {
			Uploader string `json:"uploader"`
			Channel  string `json:"channel"`
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			continue
		}
		if payload.Uploader != "" {
			return payload.Uploader
		}
		if payload.Channel != "" {
			return payload.Channel
		}
	}
	return ""
}

// RemoveInfoJSON deletes the sidecar .info.json files of mediaPath and
// returns how many were removed.
func RemoveInfoJSON(mediaPath string) int {
	count := 0
	for _, candidate := range infoJSONCandidates(mediaPath) {
		if err := os.Remove(candidate); err == nil {
			count++
		}
	}
	return count
}
