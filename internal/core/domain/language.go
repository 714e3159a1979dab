package domain

import "strings"

// Language is a supported interface language.
type Language string

// Supported languages.
const (
	LanguageEnglish Language = "en"
	LanguageGerman  Language = "de"
)

// DefaultLanguage is used when neither the store nor the config names one.
const DefaultLanguage = LanguageEnglish

// SupportedLanguages returns every language in display order.
func SupportedLanguages() []Language {
	return []Language{LanguageEnglish, LanguageGerman}
}

// ParseLanguage converts user input such as "DE" or "en-GB" to a Language.
func ParseLanguage(s string) (Language, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(s, "-_"); i > 0 {
		s = s[:i]
	}
	lang := Language(s)
	if !lang.IsValid() {
		return "", ErrUnsupportedLanguage
	}
	return lang, nil
}

// IsValid returns true if the language is supported.
func (l Language) IsValid() bool {
	switch l {
	case LanguageEnglish, LanguageGerman:
		return true
	default:
		return false
	}
}

// String returns the language key.
func (l Language) String() string {
	return string(l)
}

// DisplayName returns the language name in that language.
func (l Language) DisplayName() string {
	switch l {
	case LanguageEnglish:
		return "English"
	case LanguageGerman:
		return "Deutsch"
	default:
		return unknownDescription
	}
}

// LanguageUpdate is a request to change an owner's language.
type LanguageUpdate struct {
	Language Language
	OwnerID  string
}
