package detector_test

import (
	"testing"

	"github.com/dossou/afriwiki/internal/detector"
)

func TestDetectISO(t *testing.T) {
	d := detector.New()

	cases := []struct {
		text string
		want string
	}{
		{"The kingdom of Dahomey was located in present-day Benin.", "en"},
		{"Le royaume du Dahomey était situé dans l'actuel Bénin.", "fr"},
	}
	for _, c := range cases {
		got, ok := d.DetectISO(c.text)
		if !ok || got != c.want {
			t.Errorf("DetectISO(%q) = %q, %v; want %q", c.text, got, ok, c.want)
		}
	}
}

func TestDetect_EmptyInput(t *testing.T) {
	d := detector.New()
	if _, ok := d.Detect(""); ok {
		t.Error("empty text should not detect")
	}
}
