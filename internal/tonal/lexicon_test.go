package tonal_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dossou/afriwiki/internal/tonal"
)

func writeRules(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.json")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSandhiRules_Structured(t *testing.T) {
	path := writeRules(t, `{
		"language": "yor",
		"rules": [
			{"name": "High-Low Sequence", "final": "high", "nextInitial": "low", "to": "mid", "rewrite": "left"}
		]
	}`)

	rules, skipped, err := tonal.LoadSandhiRules(path)
	if err != nil {
		t.Fatalf("LoadSandhiRules: %v", err)
	}
	if len(skipped) != 0 {
		t.Errorf("unexpected skipped rules: %v", skipped)
	}
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	r := rules[0]
	if r.Final != tonal.High || r.NextInitial != tonal.Low || r.To != tonal.Mid || r.Rewrite != tonal.LeftFinal {
		t.Errorf("rule = %+v", r)
	}
}

func TestLoadSandhiRules_ProseCompilation(t *testing.T) {
	path := writeRules(t, `{
		"language": "ewe",
		"rules": [
			{"name": "Downstep", "pattern": "HIGH + HIGH", "transformation": "Second HIGH -> MID"},
			{"name": "Phrase-final lowering", "pattern": "ANY", "transformation": "lower phrase-final tones"}
		]
	}`)

	rules, skipped, err := tonal.LoadSandhiRules(path)
	if err != nil {
		t.Fatalf("LoadSandhiRules: %v", err)
	}
	if len(rules) != 1 {
		t.Fatalf("expected 1 compiled rule, got %d", len(rules))
	}
	if rules[0].Rewrite != tonal.RightInitial || rules[0].To != tonal.Mid {
		t.Errorf("prose rule compiled to %+v", rules[0])
	}
	if len(skipped) != 1 || skipped[0] != "Phrase-final lowering" {
		t.Errorf("skipped = %v, want the non-executable rule", skipped)
	}
}

func TestLoadSandhiRules_BadTone(t *testing.T) {
	path := writeRules(t, `{
		"language": "yor",
		"rules": [
			{"name": "Broken", "final": "sharp", "nextInitial": "low", "to": "mid"}
		]
	}`)

	if _, _, err := tonal.LoadSandhiRules(path); err == nil {
		t.Fatal("expected error for unknown tone name in structured rule")
	}
}
