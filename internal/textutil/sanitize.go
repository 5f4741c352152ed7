package textutil

import (
	"strings"
	"unicode/utf8"
)

// maxFileNameLength caps sanitized names so long chapter titles stay within
// typical filesystem limits once the numbering prefix and extension are added.
const maxFileNameLength = 120

// fileNameReplacer replaces filesystem-unsafe characters with underscores.
var fileNameReplacer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
)

// SanitizeFileName replaces filesystem-unsafe characters in a filename with
// underscores, collapses runs of whitespace to a single space, and truncates
// the result to 120 characters.
func SanitizeFileName(name string) string {
	name = fileNameReplacer.Replace(name)
	name = strings.Join(strings.Fields(name), " ")
	if utf8.RuneCountInString(name) > maxFileNameLength {
		runes := []rune(name)
		name = strings.TrimRight(string(runes[:maxFileNameLength]), " ")
	}
	return name
}
