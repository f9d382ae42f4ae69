// Package tonal assigns and contextually adjusts suprasegmental tone marks
// for tonal languages. Generic translators do not reliably reproduce tone,
// so translated text is re-marked here from per-language tonal lexicons and
// ordered sandhi-rule sets.
package tonal

import "fmt"

// Tone is a suprasegmental tone level or contour.
type Tone int

const (
	High Tone = iota
	Low
	Mid
	Rising
	Falling
	ExtraHigh
	ExtraLow
)

var toneNames = [...]string{"high", "low", "mid", "rising", "falling", "extra_high", "extra_low"}

func (t Tone) String() string {
	if t < 0 || int(t) >= len(toneNames) {
		return "unknown"
	}
	return toneNames[t]
}

// ParseTone maps a lexicon/rule-file tone name to a Tone.
func ParseTone(name string) (Tone, error) {
	for i, n := range toneNames {
		if n == name {
			return Tone(i), nil
		}
	}
	return Mid, fmt.Errorf("tonal: unknown tone %q", name)
}

// toneMarks maps each tone to its combining diacritical mark.
var toneMarks = map[Tone]rune{
	High:      0x0301, // combining acute
	Low:       0x0300, // combining grave
	Mid:       0x0304, // combining macron
	Rising:    0x030C, // combining caron
	Falling:   0x0302, // combining circumflex
	ExtraHigh: 0x030B, // combining double acute
	ExtraLow:  0x030F, // combining double grave
}

// markTones is the inverse of toneMarks, used when reading diacritics off
// decomposed text.
var markTones = func() map[rune]Tone {
	m := make(map[rune]Tone, len(toneMarks))
	for t, r := range toneMarks {
		m[r] = t
	}
	return m
}()

// Mark returns the combining diacritic for the tone.
func (t Tone) Mark() (rune, bool) {
	r, ok := toneMarks[t]
	return r, ok
}

// Word pairs a surface token with its resolved tone sequence. ApplySandhi
// mutates the Tones slice in place.
type Word struct {
	Surface   string
	BaseForm  string
	Tones     []Tone
	Syllables []string
	POS       string
}
