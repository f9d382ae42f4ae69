package lang_test

import (
	"testing"

	"github.com/dossou/afriwiki/internal/lang"
)

func TestLookup(t *testing.T) {
	info, ok := lang.Lookup(lang.Fon)
	if !ok {
		t.Fatal("Fon should be known")
	}
	if !info.Tonal || info.ToneLevels != 3 {
		t.Errorf("Fon info = %+v", info)
	}

	if _, ok := lang.Lookup("xx"); ok {
		t.Error("unknown code should miss")
	}
}

func TestIsTonal(t *testing.T) {
	for _, code := range []string{lang.Fon, lang.Yoruba, lang.Ewe, lang.Dindi} {
		if !lang.IsTonal(code) {
			t.Errorf("%s should be tonal", code)
		}
	}
	for _, code := range []string{lang.English, lang.French, "xx"} {
		if lang.IsTonal(code) {
			t.Errorf("%s should not be tonal", code)
		}
	}
}

func TestIsResourceRich(t *testing.T) {
	if !lang.IsResourceRich(lang.English) || !lang.IsResourceRich(lang.French) {
		t.Error("en and fr are resource-rich")
	}
	if lang.IsResourceRich(lang.Fon) {
		t.Error("fon is not resource-rich")
	}
}

func TestTargets(t *testing.T) {
	targets := lang.Targets()
	if len(targets) != 4 {
		t.Fatalf("Targets() = %v", targets)
	}
	for _, code := range targets {
		if lang.IsResourceRich(code) {
			t.Errorf("target %s should not be resource-rich", code)
		}
	}
}
