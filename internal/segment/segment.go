// Package segment splits cleaned article text into translation units while
// preserving paragraph and sentence integrity, and extracts sliding-window
// context snippets so LLM translators keep continuity across units.
package segment

import (
	"strings"
	"unicode"
)

const (
	// DefaultMaxLen is the default maximum unit length in runes.
	DefaultMaxLen = 500
	// DefaultMinLen is the threshold below which a unit is merged into its
	// neighbor instead of being sent through the pipeline on its own.
	DefaultMinLen = 20
	// DefaultContextWords is the default sliding-window size for
	// ExtractContext.
	DefaultContextWords = 25
)

// Options tunes segmentation. The zero value selects the defaults.
type Options struct {
	MaxLen int
	MinLen int
}

func (o Options) withDefaults() Options {
	if o.MaxLen <= 0 {
		o.MaxLen = DefaultMaxLen
	}
	if o.MinLen <= 0 {
		o.MinLen = DefaultMinLen
	}
	return o
}

// Split segments text into translation units. Paragraphs are split first;
// paragraphs longer than MaxLen are packed greedily from sentences; units
// shorter than MinLen are merged into the previous unit of the same
// paragraph so the translator never sees contextless fragments.
func Split(text string, opts Options) []string {
	opts = opts.withDefaults()

	var units []string
	for _, para := range paragraphs(text) {
		if len([]rune(para)) <= opts.MaxLen {
			units = appendUnit(units, para, opts.MinLen)
			continue
		}

		var current strings.Builder
		for _, sent := range Sentences(para) {
			if current.Len() > 0 && len([]rune(current.String()))+len([]rune(sent))+1 > opts.MaxLen {
				units = appendUnit(units, current.String(), opts.MinLen)
				current.Reset()
			}
			// A single sentence beyond MaxLen is hard-wrapped at word
			// boundaries rather than truncated.
			if len([]rune(sent)) > opts.MaxLen {
				for _, piece := range hardWrap(sent, opts.MaxLen) {
					units = appendUnit(units, piece, opts.MinLen)
				}
				continue
			}
			if current.Len() > 0 {
				current.WriteByte(' ')
			}
			current.WriteString(sent)
		}
		if current.Len() > 0 {
			units = appendUnit(units, current.String(), opts.MinLen)
		}
	}
	return units
}

// appendUnit adds a trimmed unit, merging fragments under minLen into the
// previous unit.
func appendUnit(units []string, unit string, minLen int) []string {
	unit = strings.TrimSpace(unit)
	if unit == "" {
		return units
	}
	if len([]rune(unit)) < minLen && len(units) > 0 {
		units[len(units)-1] = units[len(units)-1] + " " + unit
		return units
	}
	return append(units, unit)
}

// paragraphs splits on blank lines, tolerating CRLF.
func paragraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Sentences splits a paragraph on terminal punctuation (. ! ? …) followed
// by whitespace. Abbreviation handling is deliberately minimal: segment
// boundaries only need to be plausible cut points, not linguistically
// perfect.
func Sentences(paragraph string) []string {
	var out []string
	runes := []rune(paragraph)
	start := 0
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '.' && r != '!' && r != '?' && r != '…' {
			continue
		}
		// Consume a run of terminators ("?!", "...").
		j := i
		for j+1 < len(runes) && isTerminator(runes[j+1]) {
			j++
		}
		if j+1 < len(runes) && !unicode.IsSpace(runes[j+1]) {
			i = j
			continue
		}
		sent := strings.TrimSpace(string(runes[start : j+1]))
		if sent != "" {
			out = append(out, sent)
		}
		start = j + 1
		i = j
	}
	if rest := strings.TrimSpace(string(runes[start:])); rest != "" {
		out = append(out, rest)
	}
	return out
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?' || r == '…'
}

// hardWrap cuts text into pieces of at most maxLen runes, preferring word
// boundaries and falling back to a hard cut when a single word exceeds the
// budget.
func hardWrap(text string, maxLen int) []string {
	var out []string
	remaining := strings.TrimSpace(text)
	for len([]rune(remaining)) > maxLen {
		runes := []rune(remaining)
		cut := maxLen
		for i := maxLen; i > 0; i-- {
			if unicode.IsSpace(runes[i]) {
				cut = i
				break
			}
		}
		out = append(out, strings.TrimSpace(string(runes[:cut])))
		remaining = strings.TrimSpace(string(runes[cut:]))
	}
	if remaining != "" {
		out = append(out, remaining)
	}
	return out
}

// ExtractContext returns the last wordCount words of text joined by single
// spaces, for use as a continuity snippet in LLM prompts. Texts shorter
// than the window are returned whole; wordCount ≤ 0 selects the default.
func ExtractContext(text string, wordCount int) string {
	if wordCount <= 0 {
		wordCount = DefaultContextWords
	}
	words := strings.Fields(text)
	if len(words) <= wordCount {
		return strings.TrimSpace(text)
	}
	return strings.Join(words[len(words)-wordCount:], " ")
}
