package tonal

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Lexicon maps toneless base forms of one language to their canonical tone
// sequences. Lookups go through the base form, so surface keys in the
// source file may carry diacritics.
type Lexicon struct {
	Language    string
	ToneSystem  string
	Description string
	words       map[string]LexiconEntry
}

// LexiconEntry is one known word.
type LexiconEntry struct {
	BaseForm  string
	Tones     []Tone
	Syllables []string
	POS       string
}

// Entry returns the lexicon entry for a base form (lower-cased, toneless).
func (l *Lexicon) Entry(baseForm string) (LexiconEntry, bool) {
	e, ok := l.words[baseForm]
	return e, ok
}

// Len returns the number of known words.
func (l *Lexicon) Len() int { return len(l.words) }

// lexiconFile is the on-disk shape:
//
//	{"metadata": {"language": ..., "toneSystem": ..., "description": ...},
//	 "words": {"wá": {"tones": ["high"], "syllables": ["wá"], "pos": "verb"}}}
type lexiconFile struct {
	Metadata struct {
		Language    string `json:"language"`
		ToneSystem  string `json:"toneSystem"`
		Description string `json:"description"`
	} `json:"metadata"`
	Words map[string]struct {
		Tones     []string `json:"tones"`
		Syllables []string `json:"syllables"`
		POS       string   `json:"pos,omitempty"`
	} `json:"words"`
}

// LoadLexicon reads and indexes a lexicon file. Malformed files fail here,
// at load time, never during text processing.
func LoadLexicon(path string) (*Lexicon, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tonal: read lexicon: %w", err)
	}
	var f lexiconFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("tonal: parse lexicon %s: %w", path, err)
	}
	return buildLexicon(f)
}

func buildLexicon(f lexiconFile) (*Lexicon, error) {
	lex := &Lexicon{
		Language:    f.Metadata.Language,
		ToneSystem:  f.Metadata.ToneSystem,
		Description: f.Metadata.Description,
		words:       make(map[string]LexiconEntry, len(f.Words)),
	}
	for surface, w := range f.Words {
		tones := make([]Tone, 0, len(w.Tones))
		for _, name := range w.Tones {
			t, err := ParseTone(name)
			if err != nil {
				return nil, fmt.Errorf("tonal: lexicon %s, word %q: %w", lex.Language, surface, err)
			}
			tones = append(tones, t)
		}
		syllables := w.Syllables
		if len(syllables) == 0 {
			syllables = []string{surface}
		}
		// Index by toneless lower-case base form so marked and unmarked
		// spellings of the same word both resolve.
		base := strings.ToLower(StripToneMarks(surface))
		lex.words[base] = LexiconEntry{
			BaseForm:  base,
			Tones:     tones,
			Syllables: syllables,
			POS:       w.POS,
		}
	}
	return lex, nil
}

// Side selects which of the two triggering tones a sandhi rule rewrites.
type Side int

const (
	// LeftFinal rewrites the final tone of the word before the boundary.
	LeftFinal Side = iota
	// RightInitial rewrites the initial tone of the word after the boundary.
	RightInitial
)

// SandhiRule is a structured word-boundary tone rule: when the left word
// ends in Final and the right word starts with NextInitial, the tone on the
// Rewrite side becomes To. Rules are ordered; later rules see the effect of
// earlier ones.
type SandhiRule struct {
	Name        string
	Final       Tone
	NextInitial Tone
	To          Tone
	Rewrite     Side
}

// ruleFile is the on-disk shape. Rules may carry either the structured
// trigger fields or the legacy prose pattern/transformation pair, which is
// compiled into the structured form at load time.
type ruleFile struct {
	Language string `json:"language"`
	Rules    []struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
		// Structured trigger.
		Final       string `json:"final,omitempty"`
		NextInitial string `json:"nextInitial,omitempty"`
		To          string `json:"to,omitempty"`
		Rewrite     string `json:"rewrite,omitempty"` // "left" | "right"
		// Legacy prose form, e.g. pattern "HIGH + LOW",
		// transformation "HIGH -> MID / _LOW".
		Pattern        string   `json:"pattern,omitempty"`
		Context        string   `json:"context,omitempty"`
		Transformation string   `json:"transformation,omitempty"`
		Examples       []string `json:"examples,omitempty"`
	} `json:"rules"`
}

// LoadSandhiRules reads a rule file and compiles its executable rules in
// order. Prose rules that do not describe a word-boundary tone rewrite
// (the legacy files document a few such) are reported in skipped rather
// than guessed at.
func LoadSandhiRules(path string) (rules []SandhiRule, skipped []string, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("tonal: read sandhi rules: %w", err)
	}
	var f ruleFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, nil, fmt.Errorf("tonal: parse sandhi rules %s: %w", path, err)
	}

	for _, r := range f.Rules {
		if r.Final != "" && r.NextInitial != "" && r.To != "" {
			rule, err := buildStructuredRule(r.Name, r.Final, r.NextInitial, r.To, r.Rewrite)
			if err != nil {
				return nil, nil, fmt.Errorf("tonal: rules %s: %w", f.Language, err)
			}
			rules = append(rules, rule)
			continue
		}
		rule, ok := compileProseRule(r.Name, r.Pattern, r.Transformation)
		if !ok {
			skipped = append(skipped, r.Name)
			continue
		}
		rules = append(rules, rule)
	}
	return rules, skipped, nil
}

func buildStructuredRule(name, final, nextInitial, to, rewrite string) (SandhiRule, error) {
	var rule SandhiRule
	var err error
	rule.Name = name
	if rule.Final, err = ParseTone(final); err != nil {
		return rule, fmt.Errorf("rule %q: %w", name, err)
	}
	if rule.NextInitial, err = ParseTone(nextInitial); err != nil {
		return rule, fmt.Errorf("rule %q: %w", name, err)
	}
	if rule.To, err = ParseTone(to); err != nil {
		return rule, fmt.Errorf("rule %q: %w", name, err)
	}
	switch rewrite {
	case "", "left":
		rule.Rewrite = LeftFinal
	case "right":
		rule.Rewrite = RightInitial
	default:
		return rule, fmt.Errorf("rule %q: unknown rewrite side %q", name, rewrite)
	}
	return rule, nil
}

// compileProseRule turns the legacy "HIGH + LOW" / "HIGH -> MID" prose
// fields into a structured rule. It recognizes only boundary tone rewrites;
// anything else (tone spreading, phrase-final lowering, "ANY" wildcards)
// returns ok == false.
func compileProseRule(name, pattern, transformation string) (SandhiRule, bool) {
	var rule SandhiRule
	rule.Name = name

	left, right, ok := strings.Cut(pattern, "+")
	if !ok {
		return rule, false
	}
	final, err1 := parseProseTone(left)
	nextInitial, err2 := parseProseTone(right)
	if err1 != nil || err2 != nil {
		return rule, false
	}
	rule.Final, rule.NextInitial = final, nextInitial

	// Transformation: "<tone> -> <tone>[ / context]" or
	// "Second <tone> -> <tone>" for the right-hand side.
	from, to, ok := strings.Cut(transformation, "->")
	if !ok {
		return rule, false
	}
	from = strings.TrimSpace(from)
	if rest, found := strings.CutPrefix(from, "Second "); found {
		rule.Rewrite = RightInitial
		from = rest
	} else {
		rule.Rewrite = LeftFinal
	}

	fromTone, err := parseProseTone(from)
	if err != nil {
		return rule, false
	}
	// The rewritten tone must be the triggering tone on its side.
	if rule.Rewrite == LeftFinal && fromTone != rule.Final {
		return rule, false
	}
	if rule.Rewrite == RightInitial && fromTone != rule.NextInitial {
		return rule, false
	}

	toField := strings.TrimSpace(to)
	if i := strings.IndexByte(toField, '/'); i >= 0 {
		toField = toField[:i]
	}
	target, err := parseProseTone(toField)
	if err != nil {
		return rule, false
	}
	rule.To = target
	return rule, true
}

func parseProseTone(s string) (Tone, error) {
	return ParseTone(strings.ToLower(strings.TrimSpace(s)))
}
