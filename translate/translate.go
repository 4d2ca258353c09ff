// Package translate localises the user facing messages of bfkit.
package translate

import (
	"log/slog"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Fallback is the language used when the host reports no locale.
const Fallback = "en-US"

var (
	once    sync.Once
	printer *message.Printer
	tag     language.Tag
)

func setup() {
	locales, err := locale.GetLocales()
	if err != nil {
		slog.Debug("translate: locale", "error", err)
	}

	if len(locales) == 0 {
		locales = []string{Fallback}
	}

	tag = message.MatchLanguage(locales...)
	printer = message.NewPrinter(tag)
}

// Language returns the language messages are rendered in.
func Language() language.Tag {
	once.Do(setup)
	return tag
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	once.Do(setup)
	return printer.Sprintf(key, args...)
}
