// Package validator checks that a hop's output is written in the language
// the route expected. Detection only covers languages lingua has models
// for; the remaining low-resource targets pass through unchecked.
package validator

import (
	"fmt"
	"strings"

	"github.com/dossou/afriwiki/internal/detector"
	"github.com/dossou/afriwiki/internal/lang"
)

// minValidationLength is the minimum rune count required to attempt
// detection; shorter texts give unreliable results and pass unvalidated.
const minValidationLength = 20

// detectableCodes maps pipeline language codes to the ISO 639-1 codes the
// detector reports. Codes absent here cannot be validated.
var detectableCodes = map[string]string{
	lang.English: "en",
	lang.French:  "fr",
	lang.Yoruba:  "yo",
}

// Validator checks translation output language. The underlying detector is
// expensive to build; reuse the instance.
type Validator struct {
	det *detector.Detector
}

// New creates a Validator backed by the lingua-go detector.
func New() *Validator {
	return &Validator{det: detector.New()}
}

// IsValid reports whether translated appears to be written in expectedLang.
//
// Empty text fails. Short texts, undetectable expected languages (fon,
// ewe, dindi) and ambiguous detections pass without error. A confident
// mismatch returns false with an error naming both codes.
func (v *Validator) IsValid(translated, expectedLang string) (bool, error) {
	if expectedLang == "" {
		return true, nil
	}

	text := strings.TrimSpace(translated)
	if text == "" {
		return false, fmt.Errorf("translation is empty")
	}

	iso, detectable := detectableCodes[expectedLang]
	if !detectable {
		return true, nil
	}
	if len([]rune(text)) < minValidationLength {
		return true, nil
	}

	detected, ok := v.det.DetectISO(text)
	if !ok {
		return true, nil
	}
	if !strings.EqualFold(detected, iso) {
		return false, fmt.Errorf("expected %s but detected %s", expectedLang, detected)
	}
	return true, nil
}
