package tonal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/dossou/afriwiki/internal/lang"
)

// vowels is the nucleus inventory shared by the supported languages.
var vowels = map[rune]bool{
	'a': true, 'e': true, 'i': true, 'o': true, 'u': true,
	'ɛ': true, 'ɔ': true, 'ẹ': true, 'ọ': true,
}

// StripToneMarks removes the recognized tone diacritics from a word and
// recomposes it. Non-tonal marks (like the dot under ẹ and ọ) survive.
func StripToneMarks(word string) string {
	decomposed := norm.NFD.String(word)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if _, isTone := markTones[r]; isTone {
			continue
		}
		b.WriteRune(r)
	}
	return norm.NFC.String(b.String())
}

// Config assembles a Processor.
type Config struct {
	// DataDir holds per-language lexicon and rule files:
	//   <dir>/lexicons/<lang>_tonal_lexicon.json
	//   <dir>/sandhi_rules/<lang>_sandhi_rules.json
	// Languages without files fall back to the built-in data. Empty means
	// built-in data only.
	DataDir string
	Logger  *slog.Logger
}

// langData is the per-language table set, loaded once on first use.
type langData struct {
	once    sync.Once
	lexicon *Lexicon
	rules   []SandhiRule
	err     error
}

// Processor applies per-language tone systems to running text. Lexicons
// and rule sets are lazily loaded with a compute-once-per-key pattern and
// immutable afterwards, so a single Processor serves concurrent callers.
type Processor struct {
	dataDir string
	log     *slog.Logger

	mu    sync.Mutex
	langs map[string]*langData
}

// NewProcessor builds a Processor; no files are touched until a language
// is first used (or Preload is called).
func NewProcessor(cfg Config) *Processor {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Processor{
		dataDir: cfg.DataDir,
		log:     log,
		langs:   make(map[string]*langData),
	}
}

// Preload eagerly loads the given languages so malformed data files fail
// at startup rather than on the first processed text.
func (p *Processor) Preload(languages ...string) error {
	for _, language := range languages {
		if _, _, err := p.tables(language); err != nil {
			return err
		}
	}
	return nil
}

func (p *Processor) tables(language string) (*Lexicon, []SandhiRule, error) {
	p.mu.Lock()
	data, ok := p.langs[language]
	if !ok {
		data = &langData{}
		p.langs[language] = data
	}
	p.mu.Unlock()

	data.once.Do(func() {
		data.lexicon, data.rules, data.err = p.load(language)
	})
	return data.lexicon, data.rules, data.err
}

func (p *Processor) load(language string) (*Lexicon, []SandhiRule, error) {
	lexicon := defaultLexicon(language)
	rules := defaultSandhiRules(language)

	if p.dataDir == "" {
		return lexicon, rules, nil
	}

	lexPath := filepath.Join(p.dataDir, "lexicons", language+"_tonal_lexicon.json")
	if fileExists(lexPath) {
		loaded, err := LoadLexicon(lexPath)
		if err != nil {
			return nil, nil, err
		}
		lexicon = loaded
		p.log.Info("tonal lexicon loaded", "language", language, "words", loaded.Len())
	}

	rulePath := filepath.Join(p.dataDir, "sandhi_rules", language+"_sandhi_rules.json")
	if fileExists(rulePath) {
		loaded, skipped, err := LoadSandhiRules(rulePath)
		if err != nil {
			return nil, nil, err
		}
		rules = loaded
		for _, name := range skipped {
			p.log.Warn("sandhi rule not executable, skipped", "language", language, "rule", name)
		}
	}

	return lexicon, rules, nil
}

// ExtractBaseForm strips all recognized tone diacritics from a word. Used
// for lexicon lookups and for round-tripping tone application.
func (p *Processor) ExtractBaseForm(word string) string {
	return StripToneMarks(word)
}

// CountSyllables approximates the syllable count of a word by counting
// vowel nuclei, collapsing consecutive vowels into one. Every word counts
// as at least one syllable.
func (p *Processor) CountSyllables(word string) int {
	base := strings.ToLower(StripToneMarks(word))
	count := 0
	prevVowel := false
	for _, r := range base {
		isVowel := vowels[r]
		if isVowel && !prevVowel {
			count++
		}
		prevVowel = isVowel
	}
	if count == 0 {
		return 1
	}
	return count
}

// DetectTones reads the tone diacritics present in a word. A word carrying
// none defaults to one MID tone per detected syllable.
func (p *Processor) DetectTones(word string) []Tone {
	tones := markedTones(word)
	if len(tones) > 0 {
		return tones
	}
	n := p.CountSyllables(word)
	tones = make([]Tone, n)
	for i := range tones {
		tones[i] = Mid
	}
	return tones
}

// markedTones returns only the tones explicitly marked on the word.
func markedTones(word string) []Tone {
	var tones []Tone
	for _, r := range norm.NFD.String(word) {
		if t, ok := markTones[r]; ok {
			tones = append(tones, t)
		}
	}
	return tones
}

// LookupWord resolves a token against the language's lexicon via its base
// form. A miss returns (nil, false); callers fall back to DetectTones.
func (p *Processor) LookupWord(word, language string) (*Word, bool) {
	lexicon, _, err := p.tables(language)
	if err != nil || lexicon == nil {
		return nil, false
	}
	base := strings.ToLower(StripToneMarks(word))
	entry, ok := lexicon.Entry(base)
	if !ok {
		return nil, false
	}
	tones := make([]Tone, len(entry.Tones))
	copy(tones, entry.Tones)
	return &Word{
		Surface:   word,
		BaseForm:  base,
		Tones:     tones,
		Syllables: entry.Syllables,
		POS:       entry.POS,
	}, true
}

// ApplyToneToWord walks the vowels of base left to right, attaching
// tones[i]'s diacritic to the i-th vowel. Vowels beyond len(tones) stay
// unmarked; surplus tones are dropped. Never errors on a length mismatch.
func (p *Processor) ApplyToneToWord(base string, tones []Tone) string {
	if len(tones) == 0 {
		return base
	}
	var b strings.Builder
	b.Grow(len(base) * 2)
	vi := 0
	for _, r := range base {
		b.WriteRune(r)
		if vowels[unicode.ToLower(r)] {
			if vi < len(tones) {
				if mark, ok := tones[vi].Mark(); ok {
					b.WriteRune(mark)
				}
			}
			vi++
		}
	}
	return norm.NFC.String(b.String())
}

// ApplySandhi applies the language's ordered sandhi rules once, left to
// right over word boundaries, mutating the words in place. Later rules see
// the effect of earlier ones. The same rule set and tone sequence always
// produce the same output.
func (p *Processor) ApplySandhi(words []*Word, language string) []*Word {
	_, rules, err := p.tables(language)
	if err != nil || len(rules) == 0 || len(words) < 2 {
		return words
	}

	for _, rule := range rules {
		for i := 0; i+1 < len(words); i++ {
			left, right := words[i], words[i+1]
			if len(left.Tones) == 0 || len(right.Tones) == 0 {
				continue
			}
			if left.Tones[len(left.Tones)-1] != rule.Final || right.Tones[0] != rule.NextInitial {
				continue
			}
			switch rule.Rewrite {
			case LeftFinal:
				left.Tones[len(left.Tones)-1] = rule.To
			case RightInitial:
				right.Tones[0] = rule.To
			}
		}
	}
	return words
}

// wordRe matches a token of letters plus any combining marks.
var wordRe = regexp.MustCompile(`[\p{L}\p{M}]+`)

// ProcessText applies the language's tone system to running text: each
// token is resolved through the lexicon (or defaulted to MID tones per
// syllable), the sandhi rules run over the whole sequence, and diacritics
// are reapplied per word. Inter-word punctuation and whitespace are
// untouched. A language with no tonal data loaded passes text through
// unchanged.
func (p *Processor) ProcessText(text, language string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	lexicon, rules, err := p.tables(language)
	if err != nil {
		p.log.Warn("tonal data unavailable, passing text through", "language", language, "error", err)
		return text
	}
	if (lexicon == nil || lexicon.Len() == 0) && len(rules) == 0 {
		return text
	}

	spans := wordRe.FindAllStringIndex(text, -1)
	if len(spans) == 0 {
		return text
	}

	words := make([]*Word, len(spans))
	for i, span := range spans {
		token := text[span[0]:span[1]]
		if w, ok := p.LookupWord(token, language); ok {
			words[i] = w
			continue
		}
		// Lexicon miss: default to MID per syllable.
		tones := make([]Tone, p.CountSyllables(token))
		for j := range tones {
			tones[j] = Mid
		}
		words[i] = &Word{
			Surface:  token,
			BaseForm: StripToneMarks(token),
			Tones:    tones,
		}
	}

	p.ApplySandhi(words, language)

	var b strings.Builder
	b.Grow(len(text) * 2)
	prev := 0
	for i, span := range spans {
		b.WriteString(text[prev:span[0]])
		b.WriteString(p.ApplyToneToWord(words[i].BaseForm, words[i].Tones))
		prev = span[1]
	}
	b.WriteString(text[prev:])
	return b.String()
}

// ValidateTones flags tone/syllable-count mismatches and implausible tone
// sequences. Diagnostics are advisory; validation never fails a text.
func (p *Processor) ValidateTones(text, language string) []string {
	var diags []string
	for _, token := range wordRe.FindAllString(text, -1) {
		marked := markedTones(token)
		if len(marked) == 0 {
			continue
		}
		syllables := p.CountSyllables(token)
		if len(marked) != syllables {
			diags = append(diags, fmt.Sprintf("%q: %d tone marks for %d syllables", token, len(marked), syllables))
		}
		if language == lang.Yoruba {
			run := 0
			for _, t := range marked {
				if t == High {
					run++
				} else {
					run = 0
				}
				if run >= 3 {
					diags = append(diags, fmt.Sprintf("%q: three or more consecutive high tones is unusual in Yoruba", token))
					break
				}
			}
		}
	}
	return diags
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
