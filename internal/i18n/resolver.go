// Package i18n resolves storefront display text per country and formats
// prices with fixed per-currency conversion rates. Resolution is a pure
// lookup over static tables; there is no pluralization or live-rate logic.
package i18n

import (
	"fmt"
	"strings"
)

const baseLanguage = "en"

// Resolver resolves message keys to localized text.
type Resolver struct {
	messages  map[string]map[string]string
	countries map[string]string
}

// NewResolver creates a resolver over the built-in catalog.
func NewResolver() *Resolver {
	return &Resolver{
		messages:  messages,
		countries: countryLanguages,
	}
}

// Language maps a storefront locale (country code like "gb", or a bare
// language code) to the language table it resolves against. Unknown locales
// resolve against the base language.
func (r *Resolver) Language(locale string) string {
	locale = strings.ToLower(locale)
	if lang, ok := r.countries[locale]; ok {
		return lang
	}
	if _, ok := r.messages[locale]; ok {
		return locale
	}
	return baseLanguage
}

// Resolve returns the localized text for key in the given locale. A key
// missing from the locale's table falls back to the base table; a key
// missing there too comes back as the raw key, so a broken translation is
// visibly broken instead of silently empty. Every "{name}" token is replaced
// with the stringified parameter value.
func (r *Resolver) Resolve(key, locale string, params map[string]any) string {
	lang := r.Language(locale)

	text, ok := r.messages[lang][key]
	if !ok {
		text, ok = r.messages[baseLanguage][key]
	}
	if !ok {
		return key
	}

	return interpolate(text, params)
}

// Messages returns the fully resolved message table for a locale: the base
// table with the locale's translations layered on top. Templates keep their
// "{name}" tokens; clients substitute at render time.
func (r *Resolver) Messages(locale string) map[string]string {
	lang := r.Language(locale)

	resolved := make(map[string]string, len(r.messages[baseLanguage]))
	for key, text := range r.messages[baseLanguage] {
		resolved[key] = text
	}
	for key, text := range r.messages[lang] {
		resolved[key] = text
	}
	return resolved
}

// interpolate replaces every occurrence of each "{name}" token.
func interpolate(text string, params map[string]any) string {
	for name, value := range params {
		text = strings.ReplaceAll(text, "{"+name+"}", fmt.Sprint(value))
	}
	return text
}
