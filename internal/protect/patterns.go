package protect

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/dossou/afriwiki/internal/lang"
)

// builtinDetectors returns the ordered detector battery. More specific
// categories run first so that, e.g., a currency amount is not claimed by
// the plain number patterns and code spans are not chewed up by the
// proper-noun heuristic.
func builtinDetectors() []detector {
	return []detector{
		{
			name:       "code",
			category:   Code,
			confidence: 0.8,
			patterns: []*regexp.Regexp{
				// Fenced blocks before inline spans: longest match first.
				regexp.MustCompile("(?s)```.*?```"),
				regexp.MustCompile("`[^`\n]+`"),
				regexp.MustCompile(`\b(?:def|class|import|from|return|func|package)\s+\w+`),
				regexp.MustCompile(`\b[a-zA-Z_]\w*\(\s*\w*\s*\)`),
			},
		},
		{
			name:       "technical",
			category:   Technical,
			confidence: 0.8,
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`\b(?:API|HTTP|HTTPS|URL|JSON|XML|HTML|CSS|SQL|REST|SOAP)\b`),
				regexp.MustCompile(`\b(?:GitHub|Wikipedia|Google|Microsoft|OpenAI)\b`),
				regexp.MustCompile(`\bwww\.[\w-]+\.\w+\b`),
				regexp.MustCompile(`\b[\w-]+\.(?:com|org|net|edu|gov)\b`),
			},
		},
		{
			name:       "currency",
			category:   Currency,
			confidence: 0.8,
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`\b\d{1,3}(?:[, ]\d{3})*(?:\.\d{2})?\s?(?:USD|EUR|GBP|FCFA|CFA|\$|€|£)`),
				regexp.MustCompile(`(?:\$|€|£|USD|EUR|GBP)\s?\d{1,3}(?:[, ]\d{3})*(?:\.\d{2})?\b`),
			},
		},
		{
			name:       "numerical",
			category:   Numerical,
			confidence: 0.8,
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`\b\d{1,3}(?:,\d{3})*(?:\.\d+)?\s?(?:%|percent|pour\s?cent)`),
				regexp.MustCompile(`\b\d+(?:\.\d+)?\s?(?:km|cm|mm|kg|ml|m|g|l)\b`),
				regexp.MustCompile(`\b\d{4}[-/]\d{1,2}[-/]\d{1,2}\b`),
				regexp.MustCompile(`\b\d{1,2}:\d{2}(?::\d{2})?\b`),
			},
		},
		{
			name:       "formula",
			category:   Formula,
			confidence: 0.8,
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?s)\$\$.*?\$\$`),
				regexp.MustCompile(`\$[^$\n]{1,60}\$`),
				regexp.MustCompile(`\b[a-zA-Z]\s*=\s*[a-zA-Z0-9+\-*/()²³]+`),
			},
		},
		{
			name:       "gazetteer",
			category:   ProperNoun,
			confidence: 0.85,
			patterns:   gazetteerPatterns(),
		},
		{
			name:       "proper_noun",
			category:   ProperNoun,
			confidence: 0.7,
			scan:       scanProperNouns,
		},
	}
}

// gazetteerPatterns lists named entities of the region the pipeline covers:
// places, historical figures and organizations that translators routinely
// mangle. Case-sensitive on purpose.
func gazetteerPatterns() []*regexp.Regexp {
	return []*regexp.Regexp{
		regexp.MustCompile(`\b(?:Bénin|Benin|Nigeria|Togo|Ghana|Burkina\s+Faso|Mali|Niger|Sénégal|Senegal)\b`),
		regexp.MustCompile(`\b(?:Cotonou|Lagos|Abuja|Accra|Lomé|Lome|Ouagadougou|Bamako|Niamey|Dakar)\b`),
		regexp.MustCompile(`\b(?:Porto-Novo|Kano|Ibadan|Kumasi|Sokoto|Zaria|Kaduna)\b`),
		regexp.MustCompile(`\b(?:Béhanzin|Behanzin|Glélé|Glele|Agadja|Tegbessou|Agonglo)\b`),
		regexp.MustCompile(`\b(?:Félix\s+Houphouët-Boigny|Kwame\s+Nkrumah|Patrice\s+Lumumba)\b`),
		regexp.MustCompile(`\b(?:CEDEAO|ECOWAS|UNESCO|ONU|UA|AU)\b`),
		regexp.MustCompile(`\b(?:Université\s+\w+|University\s+of\s+\w+)\b`),
	}
}

var properNounRun = regexp.MustCompile(`\p{Lu}\p{Ll}+(?:[-\s]\p{Lu}\p{Ll}+)*`)

// scanProperNouns implements the capitalization heuristic: runs of two or
// more capitalized words always count; a lone capitalized word counts only
// when it is not sentence-initial, since there capitalization carries no
// signal.
func scanProperNouns(text string) [][]int {
	var out [][]int
	for _, m := range properNounRun.FindAllStringIndex(text, -1) {
		word := text[m[0]:m[1]]
		if strings.ContainsAny(word, " -") {
			out = append(out, m)
			continue
		}
		if !sentenceInitial(text, m[0]) {
			out = append(out, m)
		}
	}
	return out
}

// sentenceInitial reports whether the rune starting at offset opens a
// sentence (start of text, or preceded only by space since a terminator).
func sentenceInitial(text string, offset int) bool {
	for i := offset - 1; i >= 0; i-- {
		r := rune(text[i])
		if text[i] < 0x80 && unicode.IsSpace(r) {
			continue
		}
		switch text[i] {
		case '.', '!', '?', ':', ';', '"', '(', '[':
			return true
		}
		return false
	}
	return true
}

// MergeCulturalTerms overlays extra vocabulary onto the built-in heritage
// dictionary, returning a fresh map suitable for Config.CulturalTerms.
func MergeCulturalTerms(extra map[string][]string) map[string][]string {
	merged := make(map[string][]string, len(defaultCulturalTerms))
	for code, list := range defaultCulturalTerms {
		merged[code] = append([]string(nil), list...)
	}
	for code, list := range extra {
		merged[code] = append(merged[code], list...)
	}
	return merged
}

// defaultCulturalTerms is the curated heritage vocabulary per target
// language. These words name deities, institutions and places that must
// reach the reader untranslated.
var defaultCulturalTerms = map[string][]string{
	lang.Fon: {
		"vodun", "legba", "mami wata", "dahomey", "abomey", "ouidah",
		"agassou", "sakpata", "heviesso", "dan", "agbo", "bo",
	},
	lang.Yoruba: {
		"orisha", "ifa", "ogun", "shango", "yemoja", "oshun", "obatala",
		"egungun", "ori", "ase", "iyalocha", "babalocha", "ile-ife",
	},
	lang.Ewe: {
		"vodu", "trowo", "afa", "legba", "sogbo", "nyigbla",
		"mawu", "lisa", "gbetsi", "amedzro", "dufia",
	},
	lang.Dindi: {
		"zima", "holle", "borey", "gourma", "zarma", "songhai",
	},
}
