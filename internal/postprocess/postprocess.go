// Package postprocess strips LLM artifacts from raw hop output before it
// re-enters the pipeline: leaked reasoning blocks, echoed instructions in
// English or French, and wrapper quotes.
package postprocess

import (
	"regexp"
	"strings"
)

// Clean returns text with translation artifacts removed, in three phases:
// reasoning-block removal, instruction-echo removal, quote unwrapping.
func Clean(text string) string {
	text = stripReasoningBlocks(text)
	text = stripEchoes(text)
	text = unwrapQuotes(text)
	return strings.TrimSpace(text)
}

// reasoningBlockRe matches complete <thinking>…</thinking>-style blocks.
// RE2 has no backreferences, so each tag variant is spelled out.
var reasoningBlockRe = regexp.MustCompile(
	`(?is)<thinking>.*?</thinking>|<think>.*?</think>|<reasoning>.*?</reasoning>|<reflection>.*?</reflection>`,
)

// openReasoningRe matches a reasoning tag whose closing tag never arrived
// (model truncated mid-thought); everything from the tag on is dropped.
var openReasoningRe = regexp.MustCompile(
	`(?is)(?:<thinking>|<think>|<reasoning>|<reflection>).*$`,
)

func stripReasoningBlocks(text string) string {
	text = reasoningBlockRe.ReplaceAllString(text, "")
	text = openReasoningRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// echoRes match introductory phrases models prepend even when told not to.
// The pipeline prompts in English and relays through French, so both
// phrasings appear in practice. Anchored at the start and requiring a
// colon to avoid eating legitimate content.
var echoRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^here(?:'s| is)(?: the)? (?:final |literal )?translation(?: in \p{L}+)?\s*:`),
	regexp.MustCompile(`(?i)^(?:the )?translation(?: in(?:to)? \p{L}+)?\s*:`),
	regexp.MustCompile(`(?i)^(?:sure|certainly|of course)[,.]? here(?:'s| is)(?: the)? translation\s*:`),
	regexp.MustCompile(`(?i)^voici(?: la)? traduction(?: en \p{L}+)?\s*:`),
	regexp.MustCompile(`(?i)^(?:la )?traduction(?: en \p{L}+)?\s*:`),
}

func stripEchoes(text string) string {
	for _, re := range echoRes {
		if loc := re.FindStringIndex(text); loc != nil && loc[0] == 0 {
			text = strings.TrimSpace(text[loc[1]:])
		}
	}
	return text
}

// quotePairs are wrapper quotes models add around a whole answer. French
// guillemets included; relays through fr produce them regularly.
var quotePairs = [][2]rune{
	{'"', '"'},
	{'\'', '\''},
	{'«', '»'},
	{'“', '”'},
	{'‘', '’'},
}

// unwrapQuotes removes one matching pair of outer quotes when the entire
// text is wrapped in them.
func unwrapQuotes(text string) string {
	runes := []rune(text)
	if len(runes) < 2 {
		return text
	}
	first, last := runes[0], runes[len(runes)-1]
	for _, pair := range quotePairs {
		if first == pair[0] && last == pair[1] {
			return strings.TrimSpace(string(runes[1 : len(runes)-1]))
		}
	}
	return text
}
