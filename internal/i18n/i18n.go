// Package i18n selects between the German and English user-facing message
// catalogs. The active locale is resolved once from configuration and passed
// explicitly to every component that emits user-facing text; there is no
// global language state.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

var supported = []language.Tag{
	language.German,
	language.English,
}

var matcher = language.NewMatcher(supported)

// Messages chooses localized strings for one resolved locale.
type Messages struct {
	english bool
}

// New resolves a configured language value ("de", "en", "en-US", ...) to a
// message catalog. Unparsable or unsupported values fall back to German, the
// historical default of this tool.
func New(lang string) Messages {
	tag, err := language.Parse(strings.TrimSpace(lang))
	if err != nil {
		return Messages{}
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return Messages{}
	}
	return Messages{english: supported[index] == language.English}
}

// Tr returns the English variant when the locale is English, the German one
// otherwise.
func (m Messages) Tr(de, en string) string {
	if m.english {
		return en
	}
	return de
}

// Code reports the resolved two-letter language code.
func (m Messages) Code() string {
	if m.english {
		return "en"
	}
	return "de"
}
