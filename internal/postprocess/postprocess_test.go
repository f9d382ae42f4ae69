package postprocess_test

import (
	"testing"

	"github.com/dossou/afriwiki/internal/postprocess"
)

func TestClean_PlainTextUnchanged(t *testing.T) {
	in := "Une traduction propre sans artefacts."
	if got := postprocess.Clean(in); got != in {
		t.Errorf("Clean = %q, want unchanged", got)
	}
}

func TestClean_ReasoningBlocks(t *testing.T) {
	in := "<thinking>the word order is tricky</thinking>Voici le texte final."
	if got := postprocess.Clean(in); got != "Voici le texte final." {
		t.Errorf("Clean = %q", got)
	}
}

func TestClean_TruncatedReasoning(t *testing.T) {
	in := "Le texte final.<think>and now I will"
	if got := postprocess.Clean(in); got != "Le texte final." {
		t.Errorf("Clean = %q", got)
	}
}

func TestClean_EnglishEcho(t *testing.T) {
	in := "Here is the translation: bonjour le monde"
	if got := postprocess.Clean(in); got != "bonjour le monde" {
		t.Errorf("Clean = %q", got)
	}
}

func TestClean_FrenchEcho(t *testing.T) {
	in := "Voici la traduction: akwaba"
	if got := postprocess.Clean(in); got != "akwaba" {
		t.Errorf("Clean = %q", got)
	}
}

func TestClean_WrapperQuotes(t *testing.T) {
	cases := []struct{ in, want string }{
		{`"quoted output"`, "quoted output"},
		{"«sortie citée»", "sortie citée"},
		{`"only opening quote`, `"only opening quote`},
	}
	for _, c := range cases {
		if got := postprocess.Clean(c.in); got != c.want {
			t.Errorf("Clean(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestClean_EchoThenQuotes(t *testing.T) {
	in := `The translation: "le résultat"`
	if got := postprocess.Clean(in); got != "le résultat" {
		t.Errorf("Clean = %q", got)
	}
}

func TestClean_ColonRequiredForEcho(t *testing.T) {
	// Without a colon the phrase may be legitimate content.
	in := "The translation of this poem took years"
	if got := postprocess.Clean(in); got != in {
		t.Errorf("Clean = %q, want unchanged", got)
	}
}
