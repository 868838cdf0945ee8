// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"time"

	"github.com/Xuanwo/go-locale"
	"github.com/vorlif/humanize"
	"github.com/vorlif/humanize/locale/de"
	"github.com/vorlif/humanize/locale/fr"
	"github.com/vorlif/spreak"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed locale/*
var locales embed.FS

// Translator bundles everything needed to render user-facing text for one language.
type Translator struct {
	*spreak.Localizer

	tag       language.Tag
	printer   *message.Printer
	humanizer *humanize.Humanizer
}

// New returns a Translator for the given BCP 47 locale string. An empty string detects the
// locale from the environment and falls back to English.
func New(loc string) (*Translator, error) {
	tag := language.Make(loc)
	var err error
	if loc == "" {
		tag, err = locale.Detect()
		if err != nil {
			tag = language.English // Unable to detect locale, fallback to English
		}
	}

	localeFS, err := fs.Sub(locales, "locale")
	if err != nil {
		return nil, fmt.Errorf("failed to load locales: %w", err)
	}

	bundle, err := spreak.NewBundle(
		spreak.WithSourceLanguage(language.English),
		spreak.WithFallbackLanguage(language.English),
		spreak.WithDomainFs("", localeFS),
		spreak.WithLanguage(tag),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create i18n bundle: %w", err)
	}

	humanizers, err := humanize.New(humanize.WithLocale(de.New(), fr.New()))
	if err != nil {
		return nil, fmt.Errorf("failed to create humanizer: %w", err)
	}

	return &Translator{
		Localizer: spreak.NewLocalizer(bundle, tag),
		tag:       tag,
		printer:   message.NewPrinter(tag),
		humanizer: humanizers.CreateHumanizer(tag),
	}, nil
}

// Language returns the language tag the Translator was created for.
func (t *Translator) Language() language.Tag {
	return t.tag
}

// FormatInt renders n with the digits and grouping rules of the Translator's language.
func (t *Translator) FormatInt(n int64) string {
	return t.printer.Sprintf("%d", n)
}

// Getf translates the format string and applies args to it.
func (t *Translator) Getf(format string, args ...any) string {
	return fmt.Sprintf(t.Get(format), args...)
}

// NaturalTime describes ts relative to now, e.g. "5 minutes ago".
func (t *Translator) NaturalTime(ts time.Time) string {
	return t.humanizer.NaturalTime(ts)
}
