package segment_test

import (
	"strings"
	"testing"

	"github.com/dossou/afriwiki/internal/segment"
)

func TestSplit_ShortParagraphStaysWhole(t *testing.T) {
	text := "A single short paragraph that fits in one unit."
	units := segment.Split(text, segment.Options{})
	if len(units) != 1 || units[0] != text {
		t.Errorf("Split = %v", units)
	}
}

func TestSplit_ParagraphBoundariesRespected(t *testing.T) {
	text := "First paragraph, comfortably under the limit.\n\nSecond paragraph, also short."
	units := segment.Split(text, segment.Options{})
	if len(units) != 2 {
		t.Fatalf("expected 2 units, got %d: %v", len(units), units)
	}
	if strings.Contains(units[0], "Second") {
		t.Error("paragraphs merged across the blank line")
	}
}

func TestSplit_LongParagraphPackedFromSentences(t *testing.T) {
	sentence := "This sentence is repeated to grow the paragraph well past the limit."
	text := strings.TrimSpace(strings.Repeat(sentence+" ", 20))

	units := segment.Split(text, segment.Options{MaxLen: 150})
	if len(units) < 2 {
		t.Fatalf("expected multiple units, got %d", len(units))
	}
	for i, u := range units {
		if len([]rune(u)) > 150 {
			t.Errorf("unit %d exceeds MaxLen: %d runes", i, len([]rune(u)))
		}
		// Units break at sentence boundaries, so each ends with a terminator.
		if !strings.HasSuffix(u, ".") {
			t.Errorf("unit %d does not end at a sentence boundary: %q", i, u)
		}
	}
}

func TestSplit_TinyFragmentMergedIntoNeighbor(t *testing.T) {
	long := strings.Repeat("Words fill this sentence up to a reasonable length. ", 3)
	text := strings.TrimSpace(long) + "\n\nOk."

	units := segment.Split(text, segment.Options{})
	for _, u := range units {
		if len([]rune(u)) < segment.DefaultMinLen {
			t.Errorf("fragment %q survived below MinLen", u)
		}
	}
}

func TestSplit_OversizedSentenceHardWrapped(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("word ", 100)) // no terminators
	units := segment.Split(text, segment.Options{MaxLen: 80})
	if len(units) < 2 {
		t.Fatalf("expected hard wrap, got %d units", len(units))
	}
	for _, u := range units {
		if len([]rune(u)) > 80 {
			t.Errorf("unit exceeds MaxLen after hard wrap: %q", u)
		}
	}
}

func TestSentences(t *testing.T) {
	got := segment.Sentences("One. Two! Three? Four… and the rest")
	want := []string{"One.", "Two!", "Three?", "Four…", "and the rest"}
	if len(got) != len(want) {
		t.Fatalf("Sentences = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sentence %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSentences_AbbreviationStyleRuns(t *testing.T) {
	got := segment.Sentences("Really?! Yes... truly.")
	if len(got) != 2 {
		t.Errorf("terminator runs should not split: %v", got)
	}
}

func TestExtractContext(t *testing.T) {
	text := "one two three four five six seven eight nine ten"

	if got := segment.ExtractContext(text, 3); got != "eight nine ten" {
		t.Errorf("ExtractContext = %q", got)
	}
	if got := segment.ExtractContext(text, 50); got != text {
		t.Errorf("short text should return whole: %q", got)
	}
	// Non-positive counts select the default window.
	if got := segment.ExtractContext(text, 0); got != text {
		t.Errorf("default window on 10 words = %q", got)
	}
}
