// Package markdown prepares exported wiki articles for translation by
// flattening Markdown and inline HTML into plain paragraphs. Formatting
// is reconstructed downstream, never round-tripped through the engines.
package markdown

import (
	"bytes"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// ToHTML renders Markdown source with the common extension set.
func ToHTML(md []byte) string {
	opts := html.RendererOptions{
		Flags: html.CommonFlags,
	}
	renderer := html.NewRenderer(opts)
	ext := parser.CommonExtensions | parser.Attributes
	p := parser.NewWithExtensions(ext)
	doc := p.Parse(md)
	return string(markdown.Render(doc, renderer))
}

// ToPlainText flattens a Markdown article to plain text suitable for
// segmentation: headings, emphasis and links lose their markup, block
// boundaries survive as blank lines.
func ToPlainText(md []byte) string {
	return StripHTMLTags(ToHTML(md))
}

// StripHTMLTags removes HTML tags, keeping only text content.
func StripHTMLTags(htmlContent string) string {
	var result bytes.Buffer
	inTag := false

	for _, ch := range htmlContent {
		switch ch {
		case '<':
			inTag = true
		case '>':
			inTag = false
		default:
			if !inTag {
				result.WriteRune(ch)
			}
		}
	}

	return result.String()
}
