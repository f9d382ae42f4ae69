// Package detector wraps lingua-go language identification for source
// auto-detection and hop-output validation.
package detector

import (
	"strings"

	lingua "github.com/pemistahl/lingua-go"
)

// Detector identifies the language of a text. Building the underlying
// lingua models is expensive; construct once and reuse.
type Detector struct {
	detector lingua.LanguageDetector
}

// New builds a detector over the languages the pipeline encounters:
// the resource-rich pivots plus Yoruba, the one supported target lingua
// has models for.
func New() *Detector {
	det := lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.English,
			lingua.French,
			lingua.Yoruba,
			lingua.German,
			lingua.Spanish,
			lingua.Portuguese,
		).
		Build()
	return &Detector{detector: det}
}

// Detect returns the most likely language of text.
func (d *Detector) Detect(text string) (lingua.Language, bool) {
	if text == "" {
		return lingua.Unknown, false
	}
	return d.detector.DetectLanguageOf(text)
}

// DetectISO returns the ISO 639-1 code of the detected language in lower
// case.
func (d *Detector) DetectISO(text string) (string, bool) {
	language, ok := d.Detect(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(language.IsoCode639_1().String()), true
}
