// Package protect masks spans that must survive machine translation
// unchanged (technical tokens, proper nouns, numbers, code, formulas,
// currency amounts, curated cultural vocabulary) behind opaque placeholders
// (__TECH_0001__, __CULT_0002__, …) and restores them afterwards.
//
// Placeholders use a delimiter sequence that does not occur in natural text
// and a fixed-width zero-padded counter, so no placeholder is ever a
// substring of another and a second Protect pass finds nothing new to wrap.
package protect

import (
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
)

// Category classifies a protected span and selects its restoration rule.
type Category int

const (
	Technical Category = iota
	ProperNoun
	Numerical
	Code
	Formula
	Cultural
	Currency
)

var categoryNames = [...]string{"technical", "proper_noun", "numerical", "code", "formula", "cultural", "currency"}
var categoryTokens = [...]string{"TECH", "NAME", "NUM", "CODE", "FORM", "CULT", "CURR"}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "unknown"
	}
	return categoryNames[c]
}

// token returns the short tag embedded in placeholders for this category.
func (c Category) token() string {
	if c < 0 || int(c) >= len(categoryTokens) {
		return "TERM"
	}
	return categoryTokens[c]
}

// Term is one protected span captured during Protect.
type Term struct {
	Original    string
	Placeholder string
	Category    Category
	Confidence  float64
	Metadata    map[string]string
}

// Session holds the placeholder → Term mapping produced by a single Protect
// call. Sessions are never shared between calls and never persisted.
type Session struct {
	terms      map[string]Term
	order      []string
	counter    int
	targetLang string
}

func newSession(targetLang string) *Session {
	return &Session{terms: make(map[string]Term), targetLang: targetLang}
}

// next allocates the next placeholder for the session. The counter is
// session-scoped and monotonically increasing, so output is deterministic
// for identical input and dictionary state.
func (s *Session) next(c Category) string {
	s.counter++
	return fmt.Sprintf("__%s_%04d__", c.token(), s.counter)
}

func (s *Session) add(t Term) {
	s.terms[t.Placeholder] = t
	s.order = append(s.order, t.Placeholder)
}

// Len returns the number of protected terms in the session.
func (s *Session) Len() int { return len(s.terms) }

// Terms returns the protected terms in allocation order.
func (s *Session) Terms() []Term {
	out := make([]Term, 0, len(s.order))
	for _, ph := range s.order {
		out = append(out, s.terms[ph])
	}
	return out
}

// Lookup returns the term behind a placeholder.
func (s *Session) Lookup(placeholder string) (Term, bool) {
	t, ok := s.terms[placeholder]
	return t, ok
}

// NumberLocalizer rewrites a numeric or currency span for the target
// language's formatting conventions during Restore.
type NumberLocalizer func(original, targetLang string) string

// Config customizes a Protector. The zero value gives the built-in pattern
// battery, the default cultural dictionary and no numeric localization.
type Config struct {
	// CulturalTerms maps a target language code to the vocabulary that must
	// never be translated. Replaces the built-in dictionary when non-nil.
	CulturalTerms map[string][]string

	// ExtraPatterns are appended to the built-in detector patterns for
	// their category. Compilation errors surface at New, never per-text.
	ExtraPatterns map[Category][]string

	// NumberLocalizer, when set, is applied to Numerical and Currency terms
	// at restore time.
	NumberLocalizer NumberLocalizer

	Logger *slog.Logger
}

// detector is one compiled category scanner in the ordered battery.
type detector struct {
	name       string
	category   Category
	confidence float64
	patterns   []*regexp.Regexp
	// scan, when set, replaces the pattern battery for detectors that need
	// more context than a regexp can express (proper-noun heuristics).
	scan func(text string) [][]int
}

// Protector detects protectable spans and substitutes placeholders. Its
// tables are built once at New and read-only afterwards, so a single
// instance is safe for concurrent use on different texts.
type Protector struct {
	detectors []detector
	cultural  map[string][]culturalTerm
	localize  NumberLocalizer
	log       *slog.Logger
}

type culturalTerm struct {
	term string
	re   *regexp.Regexp
}

// New builds a Protector. It fails only on malformed extra patterns;
// everything else has working defaults.
func New(cfg Config) (*Protector, error) {
	p := &Protector{
		detectors: builtinDetectors(),
		localize:  cfg.NumberLocalizer,
		log:       cfg.Logger,
	}
	if p.log == nil {
		p.log = slog.Default()
	}

	for cat, raws := range cfg.ExtraPatterns {
		for _, raw := range raws {
			re, err := regexp.Compile(raw)
			if err != nil {
				return nil, fmt.Errorf("protect: bad %s pattern %q: %w", cat, raw, err)
			}
			for i := range p.detectors {
				if p.detectors[i].category == cat && p.detectors[i].scan == nil {
					p.detectors[i].patterns = append(p.detectors[i].patterns, re)
					break
				}
			}
		}
	}

	terms := cfg.CulturalTerms
	if terms == nil {
		terms = defaultCulturalTerms
	}
	p.cultural = make(map[string][]culturalTerm, len(terms))
	for code, list := range terms {
		compiled := make([]culturalTerm, 0, len(list))
		for _, t := range list {
			re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(t) + `\b`)
			compiled = append(compiled, culturalTerm{term: t, re: re})
		}
		p.cultural[code] = compiled
	}

	return p, nil
}

// placeholderRe recognizes placeholders already present in a text; spans
// overlapping one are never re-wrapped. Category tokens are three or four
// letters (NUM vs TECH).
var placeholderRe = regexp.MustCompile(`__[A-Z]{3,4}_\d{4,}__`)

// Protect runs the ordered detector battery over text and replaces every
// protectable span with a placeholder. targetLang selects the cultural
// dictionary; pass "" to skip cultural protection. The returned Session is
// required to Restore the spans after translation.
func (p *Protector) Protect(text, targetLang string) (string, *Session) {
	sess := newSession(targetLang)
	if text == "" {
		return text, sess
	}

	for _, d := range p.detectors {
		text = p.runDetector(text, d, sess)
	}
	if targetLang != "" {
		text = p.protectCultural(text, targetLang, sess)
	}
	return text, sess
}

// runDetector applies one detector to text. A panicking detector is
// isolated: its partial work is kept and the remaining detectors still run.
func (p *Protector) runDetector(text string, d detector, sess *Session) (out string) {
	out = text
	defer func() {
		if r := recover(); r != nil {
			p.log.Warn("term detector failed", "detector", d.name, "error", fmt.Sprint(r))
		}
	}()

	if d.scan != nil {
		out = p.splice(out, d.scan(out), d, sess, nil)
		return out
	}
	for _, re := range d.patterns {
		out = p.splice(out, re.FindAllStringIndex(out, -1), d, sess, map[string]string{"pattern": re.String()})
	}
	return out
}

// splice replaces matches with fresh placeholders, walking in reverse text
// order so earlier offsets stay valid. Matches overlapping an existing
// placeholder are skipped (idempotence guard).
func (p *Protector) splice(text string, matches [][]int, d detector, sess *Session, meta map[string]string) string {
	if len(matches) == 0 {
		return text
	}
	protected := placeholderRe.FindAllStringIndex(text, -1)

	for i := len(matches) - 1; i >= 0; i-- {
		start, end := matches[i][0], matches[i][1]
		if overlaps(start, end, protected) {
			continue
		}
		original := text[start:end]
		ph := sess.next(d.category)

		md := map[string]string{"detector": d.name}
		for k, v := range meta {
			md[k] = v
		}
		sess.add(Term{
			Original:    original,
			Placeholder: ph,
			Category:    d.category,
			Confidence:  d.confidence,
			Metadata:    md,
		})
		text = text[:start] + ph + text[end:]
	}
	return text
}

func (p *Protector) protectCultural(text, targetLang string, sess *Session) string {
	// Target-language vocabulary first, then the other curated lists:
	// heritage terms travel across the region's languages.
	lists := [][]culturalTerm{p.cultural[targetLang]}
	for code, list := range p.cultural {
		if code != targetLang {
			lists = append(lists, list)
		}
	}

	seen := make(map[string]bool)
	for _, list := range lists {
		for _, ct := range list {
			if seen[strings.ToLower(ct.term)] {
				continue
			}
			seen[strings.ToLower(ct.term)] = true

			matches := ct.re.FindAllStringIndex(text, -1)
			protected := placeholderRe.FindAllStringIndex(text, -1)
			for i := len(matches) - 1; i >= 0; i-- {
				start, end := matches[i][0], matches[i][1]
				if overlaps(start, end, protected) {
					continue
				}
				ph := sess.next(Cultural)
				sess.add(Term{
					Original:    text[start:end],
					Placeholder: ph,
					Category:    Cultural,
					Confidence:  0.9,
					Metadata:    map[string]string{"cultural_context": targetLang},
				})
				text = text[:start] + ph + text[end:]
			}
		}
	}
	return text
}

func overlaps(start, end int, spans [][]int) bool {
	for _, s := range spans {
		if start < s[1] && end > s[0] {
			return true
		}
	}
	return false
}

// Restore replaces the session's placeholders in translated text with the
// original spans, longest placeholder first to prevent prefix collisions.
// Placeholders the translator dropped or mangled are returned as the second
// value so the caller gets an honest diagnostic instead of silent loss.
func (p *Protector) Restore(translated string, sess *Session) (string, []Term) {
	if translated == "" || sess == nil || sess.Len() == 0 {
		return translated, nil
	}

	placeholders := make([]string, len(sess.order))
	copy(placeholders, sess.order)
	sort.Slice(placeholders, func(i, j int) bool {
		return len(placeholders[i]) > len(placeholders[j])
	})

	var missing []Term
	for _, ph := range placeholders {
		term := sess.terms[ph]
		if !strings.Contains(translated, ph) {
			p.log.Warn("placeholder missing from translation", "placeholder", ph, "original", term.Original)
			missing = append(missing, term)
			continue
		}
		translated = strings.ReplaceAll(translated, ph, p.restoreTerm(term, sess.targetLang))
	}
	return translated, missing
}

// restoreTerm applies the per-category restoration rule. Cultural, proper
// noun, technical, code and formula spans reinsert verbatim; numeric and
// currency spans pass through the registered locale transform when present.
func (p *Protector) restoreTerm(t Term, targetLang string) string {
	switch t.Category {
	case Numerical, Currency:
		if p.localize != nil {
			return p.localize(t.Original, targetLang)
		}
	}
	return t.Original
}
