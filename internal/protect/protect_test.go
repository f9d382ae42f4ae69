package protect_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/dossou/afriwiki/internal/lang"
	"github.com/dossou/afriwiki/internal/protect"
)

func newProtector(t *testing.T, cfg protect.Config) *protect.Protector {
	t.Helper()
	p, err := protect.New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func TestProtect_NoProtectableSpans(t *testing.T) {
	p := newProtector(t, protect.Config{})
	text := "a quiet sentence about nothing in particular"
	got, sess := p.Protect(text, lang.Fon)
	if got != text {
		t.Errorf("expected unchanged text, got %q", got)
	}
	if sess.Len() != 0 {
		t.Errorf("expected 0 terms, got %d", sess.Len())
	}
}

func TestProtect_CulturalTerms(t *testing.T) {
	p := newProtector(t, protect.Config{})
	text := "The vodun ceremony was led by Legba priests in Dahomey."
	got, sess := p.Protect(text, lang.Fon)

	if sess.Len() != 3 {
		for _, term := range sess.Terms() {
			t.Logf("protected: %q as %s (%s)", term.Original, term.Placeholder, term.Category)
		}
		t.Fatalf("expected 3 protected terms, got %d", sess.Len())
	}
	for _, w := range []string{"vodun", "Legba", "Dahomey"} {
		if strings.Contains(got, w) {
			t.Errorf("%q still present in masked text %q", w, got)
		}
	}
}

func TestProtect_PlaceholderFormat(t *testing.T) {
	p := newProtector(t, protect.Config{})
	_, sess := p.Protect("Email via the API at https://example.com costs $5.00.", lang.Yoruba)

	format := regexp.MustCompile(`^__[A-Z]{3,4}_\d{4}__$`)
	seen := make(map[string]bool)
	for _, term := range sess.Terms() {
		if !format.MatchString(term.Placeholder) {
			t.Errorf("placeholder %q does not match the expected format", term.Placeholder)
		}
		if seen[term.Placeholder] {
			t.Errorf("duplicate placeholder %q", term.Placeholder)
		}
		seen[term.Placeholder] = true
	}
	if sess.Len() == 0 {
		t.Fatal("expected at least one protected term")
	}
}

func TestProtect_Idempotent(t *testing.T) {
	p := newProtector(t, protect.Config{})
	text := "The vodun shrine near Abomey holds 1500 artifacts."

	once, sess1 := p.Protect(text, lang.Fon)
	twice, sess2 := p.Protect(once, lang.Fon)

	if twice != once {
		t.Errorf("second pass changed the text:\n first: %q\nsecond: %q", once, twice)
	}
	if sess2.Len() != 0 {
		t.Errorf("second pass protected %d terms, want 0", sess2.Len())
	}
	if sess1.Len() == 0 {
		t.Fatal("first pass protected nothing")
	}
}

func TestProtect_NumericalPlaceholdersNotReWrapped(t *testing.T) {
	base := newProtector(t, protect.Config{})
	masked, sess := base.Protect("The army marched 25 km south.", "")

	var numPH string
	for _, term := range sess.Terms() {
		if term.Category == protect.Numerical {
			numPH = term.Placeholder
		}
	}
	if numPH == "" {
		t.Fatalf("expected a numerical placeholder in %q", masked)
	}

	// A digit-hungry extra pattern must not claim the counter inside an
	// existing __NUM_####__ placeholder.
	aggressive := newProtector(t, protect.Config{
		ExtraPatterns: map[protect.Category][]string{
			protect.Technical: {`\d{4}`},
		},
	})
	again, sess2 := aggressive.Protect(masked, "")
	if sess2.Len() != 0 {
		for _, term := range sess2.Terms() {
			t.Logf("re-protected: %q as %s", term.Original, term.Placeholder)
		}
		t.Errorf("second protector wrapped %d spans inside placeholders", sess2.Len())
	}
	if again != masked {
		t.Errorf("placeholder corrupted:\n before: %q\n after:  %q", masked, again)
	}
}

func TestRestore_RoundTrip(t *testing.T) {
	p := newProtector(t, protect.Config{})
	text := "Orisha worship spread from Ife through the Oyo empire."
	masked, sess := p.Protect(text, lang.Yoruba)

	restored, missing := p.Restore(masked, sess)
	if restored != text {
		t.Errorf("round trip mismatch:\n want %q\n got %q", text, restored)
	}
	if len(missing) != 0 {
		t.Errorf("expected no missing terms, got %v", missing)
	}
}

func TestRestore_ReportsDroppedPlaceholders(t *testing.T) {
	p := newProtector(t, protect.Config{})
	masked, sess := p.Protect("The vodun rite", lang.Fon)
	if sess.Len() != 1 {
		t.Fatalf("expected 1 term, got %d", sess.Len())
	}

	// Simulate a translator that ate the placeholder.
	mangled := strings.ReplaceAll(masked, sess.Terms()[0].Placeholder, "???")
	restored, missing := p.Restore(mangled, sess)

	if len(missing) != 1 {
		t.Fatalf("expected 1 missing term, got %d", len(missing))
	}
	if missing[0].Original != "vodun" {
		t.Errorf("missing term = %q, want %q", missing[0].Original, "vodun")
	}
	if strings.Contains(restored, "__CULT") {
		t.Errorf("unexpected placeholder left in %q", restored)
	}
}

func TestRestore_NumberLocalizer(t *testing.T) {
	localize := func(original, targetLang string) string {
		if targetLang == lang.Fon {
			return strings.ReplaceAll(original, ".", ",")
		}
		return original
	}
	p := newProtector(t, protect.Config{NumberLocalizer: localize})

	masked, sess := p.Protect("It weighs 3.5 kg.", lang.Fon)
	restored, missing := p.Restore(masked, sess)

	if len(missing) != 0 {
		t.Fatalf("missing terms: %v", missing)
	}
	if !strings.Contains(restored, "3,5") {
		t.Errorf("expected localized decimal in %q", restored)
	}
}

func TestProtect_CodeBeforeTechnical(t *testing.T) {
	p := newProtector(t, protect.Config{})
	text := "Run `curl https://api.example.com` to test."
	masked, sess := p.Protect(text, "")

	if strings.Contains(masked, "curl") {
		t.Errorf("inline code not protected: %q", masked)
	}
	// The URL inside the code span must not get a second placeholder.
	for _, term := range sess.Terms() {
		if term.Category == protect.Technical && strings.Contains(term.Original, "api.example.com") {
			t.Errorf("URL inside code span protected separately: %q", term.Original)
		}
	}
}

func TestProtect_ProperNounHeuristic(t *testing.T) {
	p := newProtector(t, protect.Config{})
	text := "Long ago King Behanzin ruled. Many stories survive."
	masked, sess := p.Protect(text, "")

	var found bool
	for _, term := range sess.Terms() {
		if strings.Contains(term.Original, "Behanzin") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected Behanzin protected, masked text: %q", masked)
	}
	// Sentence-initial "Many" is ordinary vocabulary, not a name.
	for _, term := range sess.Terms() {
		if term.Original == "Many" {
			t.Errorf("sentence-initial word %q wrongly protected", term.Original)
		}
	}
}

func TestProtect_ExtraPatterns(t *testing.T) {
	p := newProtector(t, protect.Config{
		ExtraPatterns: map[protect.Category][]string{
			protect.Technical: {`\bISBN [0-9-]+\b`},
		},
	})
	masked, sess := p.Protect("See ISBN 978-0-14-044789-1 for details.", "")
	if strings.Contains(masked, "ISBN") {
		t.Errorf("extra pattern not applied: %q", masked)
	}
	if sess.Len() == 0 {
		t.Fatal("expected a protected term from the extra pattern")
	}
}

func TestNew_BadExtraPattern(t *testing.T) {
	_, err := protect.New(protect.Config{
		ExtraPatterns: map[protect.Category][]string{
			protect.Technical: {`(`},
		},
	})
	if err == nil {
		t.Fatal("expected error for malformed pattern")
	}
}

func TestRestore_EmptySession(t *testing.T) {
	p := newProtector(t, protect.Config{})
	_, sess := p.Protect("", lang.Ewe)
	restored, missing := p.Restore("unchanged", sess)
	if restored != "unchanged" || missing != nil {
		t.Errorf("Restore with empty session = %q, %v", restored, missing)
	}
}
