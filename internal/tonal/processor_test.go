package tonal_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dossou/afriwiki/internal/lang"
	"github.com/dossou/afriwiki/internal/tonal"
)

func newProcessor() *tonal.Processor {
	return tonal.NewProcessor(tonal.Config{})
}

func TestStripToneMarks(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"wá", "wa"},
		{"kò", "ko"},
		{"àzɔ̀n", "azɔn"},
		{"ilé", "ile"},
		{"plain", "plain"},
		{"ọmọ", "ọmọ"}, // dot-below survives, it is not a tone mark
	}
	for _, c := range cases {
		if got := tonal.StripToneMarks(c.in); got != c.want {
			t.Errorf("StripToneMarks(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestLookupWord_MatchesTonelessForm(t *testing.T) {
	p := newProcessor()

	// "wa" reaches the lexicon without diacritics; the entry carries them.
	w, ok := p.LookupWord("wa", lang.Yoruba)
	if !ok {
		t.Fatal("expected lexicon hit for toneless form")
	}
	if len(w.Tones) != 1 || w.Tones[0] != tonal.High {
		t.Errorf("Tones = %v, want [high]", w.Tones)
	}

	// The marked surface form resolves to the same entry.
	w2, ok := p.LookupWord("wá", lang.Yoruba)
	if !ok {
		t.Fatal("expected lexicon hit for marked form")
	}
	if w2.BaseForm != w.BaseForm {
		t.Errorf("base forms differ: %q vs %q", w2.BaseForm, w.BaseForm)
	}
}

func TestApplyToneToWord_RoundTrip(t *testing.T) {
	p := newProcessor()
	got := p.ApplyToneToWord("wa", []tonal.Tone{tonal.High})
	if got != "wá" {
		t.Errorf("ApplyToneToWord = %q, want %q", got, "wá")
	}
	if base := p.ExtractBaseForm(got); base != "wa" {
		t.Errorf("round trip base form = %q, want %q", base, "wa")
	}
}

func TestApplyToneToWord_UppercaseVowels(t *testing.T) {
	p := newProcessor()

	// ASCII and non-ASCII uppercase vowels both take their mark, so
	// sentence-initial words keep their tones.
	got := p.ApplyToneToWord("Ala", []tonal.Tone{tonal.High, tonal.Low})
	if got != "Álà" { // Álà
		t.Errorf("ApplyToneToWord(Ala) = %q, want %q", got, "Álà")
	}

	got = p.ApplyToneToWord("Ɔba", []tonal.Tone{tonal.High, tonal.Low})
	want := "Ɔ́bà" // Ɔ́bà, no precomposed form for Ɔ́
	if got != want {
		t.Errorf("ApplyToneToWord(Ɔba) = %q, want %q", got, want)
	}

	got = p.ApplyToneToWord("Ẹgbọ", []tonal.Tone{tonal.Low, tonal.Mid})
	if base := tonal.StripToneMarks(got); base != "Ẹgbọ" {
		t.Errorf("tone marks not reversible on %q, base = %q", got, base)
	}
	if got == "Ẹgbọ" {
		t.Error("uppercase Ẹ received no tone mark")
	}
}

func TestApplyToneToWord_LengthMismatchIsTolerant(t *testing.T) {
	p := newProcessor()

	// More vowels than tones: trailing vowels stay unmarked.
	got := p.ApplyToneToWord("banana", []tonal.Tone{tonal.High})
	if !strings.Contains(got, "á") {
		t.Errorf("first vowel unmarked in %q", got)
	}
	if strings.Count(got, "́") > 1 {
		t.Errorf("surplus marks in %q", got)
	}

	// More tones than vowels: surplus tones dropped, no panic.
	got = p.ApplyToneToWord("wa", []tonal.Tone{tonal.High, tonal.Low, tonal.Mid})
	if p.ExtractBaseForm(got) != "wa" {
		t.Errorf("base form corrupted: %q", got)
	}
}

func TestCountSyllables(t *testing.T) {
	p := newProcessor()
	cases := []struct {
		in   string
		want int
	}{
		{"wa", 1},
		{"ile", 2},
		{"ọmọ", 2},
		{"xyz", 1}, // no vowels still counts one syllable
		{"aiye", 2}, // consecutive vowels collapse
	}
	for _, c := range cases {
		if got := p.CountSyllables(c.in); got != c.want {
			t.Errorf("CountSyllables(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestDetectTones(t *testing.T) {
	p := newProcessor()

	tones := p.DetectTones("wá")
	if len(tones) != 1 || tones[0] != tonal.High {
		t.Errorf("DetectTones(wá) = %v", tones)
	}

	// Unmarked words default to MID per syllable.
	tones = p.DetectTones("ile")
	if len(tones) != 2 || tones[0] != tonal.Mid || tones[1] != tonal.Mid {
		t.Errorf("DetectTones(ile) = %v", tones)
	}
}

func TestApplySandhi_HighLowSequence(t *testing.T) {
	p := newProcessor()

	left := &tonal.Word{BaseForm: "wa", Tones: []tonal.Tone{tonal.High}}
	right := &tonal.Word{BaseForm: "agba", Tones: []tonal.Tone{tonal.Low, tonal.Low}}

	p.ApplySandhi([]*tonal.Word{left, right}, lang.Yoruba)

	if left.Tones[0] != tonal.Mid {
		t.Errorf("left final tone = %v, want mid after High-Low sequence", left.Tones[0])
	}
	if right.Tones[0] != tonal.Low {
		t.Errorf("right initial tone changed to %v, should stay low", right.Tones[0])
	}
}

func TestApplySandhi_Deterministic(t *testing.T) {
	p := newProcessor()
	mk := func() []*tonal.Word {
		return []*tonal.Word{
			{BaseForm: "wa", Tones: []tonal.Tone{tonal.High}},
			{BaseForm: "obi", Tones: []tonal.Tone{tonal.Low, tonal.High}},
			{BaseForm: "ile", Tones: []tonal.Tone{tonal.Mid, tonal.High}},
		}
	}

	a, b := mk(), mk()
	p.ApplySandhi(a, lang.Yoruba)
	p.ApplySandhi(b, lang.Yoruba)
	for i := range a {
		for j := range a[i].Tones {
			if a[i].Tones[j] != b[i].Tones[j] {
				t.Fatalf("sandhi not deterministic at word %d tone %d", i, j)
			}
		}
	}
}

func TestProcessText_PreservesPunctuationAndSpacing(t *testing.T) {
	p := newProcessor()
	got := p.ProcessText("mo wa, ile!", lang.Yoruba)

	if !strings.Contains(got, ",") || !strings.HasSuffix(got, "!") {
		t.Errorf("punctuation lost: %q", got)
	}
	// "wa" is High in the lexicon; its mark must appear.
	if !strings.Contains(got, "wá") {
		t.Errorf("expected lexicon tone on wa, got %q", got)
	}
}

func TestProcessText_EmptyAndWhitespace(t *testing.T) {
	p := newProcessor()
	for _, in := range []string{"", "   ", "\n\n"} {
		if got := p.ProcessText(in, lang.Yoruba); got != in {
			t.Errorf("ProcessText(%q) = %q, want unchanged", in, got)
		}
	}
}

func TestProcessText_UnknownLanguagePassesThrough(t *testing.T) {
	p := newProcessor()
	in := "some text in an unsupported language"
	if got := p.ProcessText(in, "sw"); got != in {
		t.Errorf("expected pass-through, got %q", got)
	}
}

func TestPreload_FailsOnMalformedLexicon(t *testing.T) {
	dir := t.TempDir()
	lexDir := filepath.Join(dir, "lexicons")
	if err := os.MkdirAll(lexDir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(lexDir, "yor_tonal_lexicon.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	p := tonal.NewProcessor(tonal.Config{DataDir: dir})
	if err := p.Preload(lang.Yoruba); err == nil {
		t.Fatal("expected Preload to fail on malformed lexicon")
	}
}

func TestLoadLexicon_FromFile(t *testing.T) {
	dir := t.TempDir()
	lexDir := filepath.Join(dir, "lexicons")
	if err := os.MkdirAll(lexDir, 0755); err != nil {
		t.Fatal(err)
	}

	file := map[string]interface{}{
		"metadata": map[string]string{
			"language":   "yor",
			"toneSystem": "3-level",
		},
		"words": map[string]interface{}{
			"kú": map[string]interface{}{
				"tones":     []string{"high"},
				"syllables": []string{"kú"},
				"pos":       "verb",
			},
		},
	}
	raw, err := json.Marshal(file)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(lexDir, "yor_tonal_lexicon.json"), raw, 0644); err != nil {
		t.Fatal(err)
	}

	p := tonal.NewProcessor(tonal.Config{DataDir: dir})
	if err := p.Preload(lang.Yoruba); err != nil {
		t.Fatalf("Preload: %v", err)
	}

	// The file replaces the built-in lexicon and is indexed by base form.
	if w, ok := p.LookupWord("ku", lang.Yoruba); !ok || w.Tones[0] != tonal.High {
		t.Errorf("LookupWord(ku) = %v, %v", w, ok)
	}
	if _, ok := p.LookupWord("wa", lang.Yoruba); ok {
		t.Error("built-in entry should be gone after file load")
	}
}

func TestValidateTones(t *testing.T) {
	p := newProcessor()

	// One mark on a two-syllable word.
	diags := p.ValidateTones("ilé", lang.Yoruba)
	if len(diags) == 0 {
		t.Error("expected a mark/syllable mismatch diagnostic")
	}

	// Consistent marking produces no diagnostics.
	diags = p.ValidateTones("wá", lang.Yoruba)
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
}

func TestParseTone(t *testing.T) {
	for _, name := range []string{"high", "low", "mid", "rising", "falling", "extra_high", "extra_low"} {
		tone, err := tonal.ParseTone(name)
		if err != nil {
			t.Errorf("ParseTone(%q): %v", name, err)
		}
		if tone.String() != name {
			t.Errorf("round trip %q -> %q", name, tone.String())
		}
	}
	if _, err := tonal.ParseTone("sforzando"); err == nil {
		t.Error("expected error for unknown tone name")
	}
}
