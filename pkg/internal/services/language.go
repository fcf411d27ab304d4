package services

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

var (
	languageDetector     lingua.LanguageDetector
	languageDetectorOnce sync.Once
)

// DetectLanguage guesses the language of post content, returning the
// lower-cased ISO 639-1 code or an empty string when undecidable. The
// detector is heavy to build so it is constructed once, lazily.
func DetectLanguage(content string) string {
	content = strings.TrimSpace(content)
	if len(content) == 0 {
		return ""
	}

	languageDetectorOnce.Do(func() {
		languageDetector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(
				lingua.English,
				lingua.French,
				lingua.Spanish,
				lingua.German,
				lingua.Italian,
				lingua.Portuguese,
			).
			Build()
	})

	language, ok := languageDetector.DetectLanguageOf(content)
	if !ok {
		return ""
	}
	return strings.ToLower(language.IsoCode639_1().String())
}
