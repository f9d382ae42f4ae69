package validator_test

import (
	"testing"

	"github.com/dossou/afriwiki/internal/lang"
	"github.com/dossou/afriwiki/internal/validator"
)

func TestIsValid_EmptyTranslationFails(t *testing.T) {
	v := validator.New()
	ok, err := v.IsValid("   ", lang.French)
	if ok || err == nil {
		t.Error("empty translation should fail validation")
	}
}

func TestIsValid_NoExpectedLanguagePasses(t *testing.T) {
	v := validator.New()
	if ok, err := v.IsValid("anything", ""); !ok || err != nil {
		t.Errorf("IsValid = %v, %v", ok, err)
	}
}

func TestIsValid_UndetectableLanguagesPass(t *testing.T) {
	v := validator.New()
	// No detector models exist for these languages; output passes.
	for _, code := range []string{lang.Fon, lang.Ewe, lang.Dindi} {
		text := "un texte assez long pour que la détection soit possible ici"
		if ok, err := v.IsValid(text, code); !ok {
			t.Errorf("IsValid(%s) = false, %v", code, err)
		}
	}
}

func TestIsValid_ShortTextPasses(t *testing.T) {
	v := validator.New()
	if ok, _ := v.IsValid("oui", lang.French); !ok {
		t.Error("short text should pass without detection")
	}
}

func TestIsValid_DetectsObviousMismatch(t *testing.T) {
	v := validator.New()
	english := "This is clearly an English sentence with many common English words in it."
	ok, err := v.IsValid(english, lang.French)
	if ok {
		t.Error("English output should fail French validation")
	}
	if err == nil {
		t.Error("expected a descriptive error")
	}
}

func TestIsValid_MatchingLanguagePasses(t *testing.T) {
	v := validator.New()
	french := "Ceci est manifestement une phrase française avec beaucoup de mots courants."
	if ok, err := v.IsValid(french, lang.French); !ok {
		t.Errorf("French output failed French validation: %v", err)
	}
}
