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

// DetectLanguage tags a post with the language of its text so clients can
// offer translation. Detection is best effort; short or empty text comes back
// as "unknown".
func DetectLanguage(content string) string {
	content = strings.TrimSpace(content)
	if len(content) == 0 {
		return "unknown"
	}

	languageDetectorOnce.Do(func() {
		languageDetector = lingua.NewLanguageDetectorBuilder().
			FromAllSpokenLanguages().
			WithLowAccuracyMode().
			Build()
	})

	if language, ok := languageDetector.DetectLanguageOf(content); ok {
		return strings.ToLower(language.IsoCode639_1().String())
	}

	return "unknown"
}
