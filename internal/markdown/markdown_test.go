package markdown_test

import (
	"strings"
	"testing"

	"github.com/dossou/afriwiki/internal/markdown"
)

func TestToHTML(t *testing.T) {
	got := markdown.ToHTML([]byte("# Dahomey\n\nA **historic** kingdom."))
	if !strings.Contains(got, "<h1") || !strings.Contains(got, "<strong>historic</strong>") {
		t.Errorf("ToHTML = %q", got)
	}
}

func TestToPlainText_FlattensArticleMarkup(t *testing.T) {
	src := []byte("# Dahomey\n\nA **historic** kingdom in [West Africa](https://example.org/wa).\n\n- palace\n- throne\n")
	got := markdown.ToPlainText(src)

	for _, want := range []string{"Dahomey", "historic kingdom", "West Africa", "palace", "throne"} {
		if !strings.Contains(got, want) {
			t.Errorf("plain text missing %q:\n%s", want, got)
		}
	}
	for _, bad := range []string{"<", "**", "#", "https://example.org"} {
		if strings.Contains(got, bad) {
			t.Errorf("markup %q survived flattening:\n%s", bad, got)
		}
	}
}

func TestStripHTMLTags(t *testing.T) {
	got := markdown.StripHTMLTags(`<p>Le <em>royaume</em> du Dahomey</p>`)
	if got != "Le royaume du Dahomey" {
		t.Errorf("StripHTMLTags = %q", got)
	}
}
