// Package i18n resolves locale identifiers into language tags and message
// printers backed by the embedded catalogs.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/louisbranch/blackjack/internal/platform/i18n/catalog"
)

var supportedTags = []language.Tag{
	language.English,
	language.MustParse("pt-BR"),
}

var tagMatcher = language.NewMatcher(supportedTags)

// Supported returns the list of supported language tags.
func Supported() []language.Tag {
	tags := make([]language.Tag, len(supportedTags))
	copy(tags, supportedTags)
	return tags
}

// Default returns the default language tag.
func Default() language.Tag {
	return language.English
}

// Bundle returns the embedded message catalogs.
func Bundle() *catalog.Bundle {
	return catalog.Default()
}

// ResolveTag matches a locale identifier against the supported tags, falling
// back to the default when the identifier is blank or unknown.
func ResolveTag(locale string) language.Tag {
	trimmed := strings.TrimSpace(locale)
	if trimmed == "" {
		return Default()
	}
	parsed, err := language.Parse(trimmed)
	if err != nil {
		return Default()
	}
	matched, _, confidence := tagMatcher.Match(parsed)
	if confidence == language.No {
		return Default()
	}
	return matched
}

// Printer returns a message printer for the supplied tag. Importing this
// package registers the embedded catalogs, so the printer resolves catalog
// keys for any supported tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}
