package tonal

import (
	"strings"

	"github.com/dossou/afriwiki/internal/lang"
)

// Built-in lexicons and sandhi rules for the supported target languages.
// They cover the high-frequency vocabulary (pronouns, common verbs and
// nouns, TAM markers) and the attested boundary rules; a configured data
// directory overrides them per language.

type defaultWord struct {
	tones     []Tone
	syllables []string
	pos       string
}

func defaultLexicon(language string) *Lexicon {
	var (
		system string
		words  map[string]defaultWord
	)

	switch language {
	case lang.Yoruba:
		system = "3-level"
		words = map[string]defaultWord{
			"mo":     {[]Tone{Mid}, []string{"mo"}, "pronoun"},
			"ó":      {[]Tone{High}, []string{"ó"}, "pronoun"},
			"a":      {[]Tone{Mid}, []string{"a"}, "pronoun"},
			"ẹ":      {[]Tone{Mid}, []string{"ẹ"}, "pronoun"},
			"wọ́n":    {[]Tone{High}, []string{"wọ́n"}, "pronoun"},
			"jẹ":     {[]Tone{Mid}, []string{"jẹ"}, "verb"},
			"lọ":     {[]Tone{Mid}, []string{"lọ"}, "verb"},
			"wá":     {[]Tone{High}, []string{"wá"}, "verb"},
			"sọ":     {[]Tone{Mid}, []string{"sọ"}, "verb"},
			"rí":     {[]Tone{High}, []string{"rí"}, "verb"},
			"ilé":    {[]Tone{Mid, High}, []string{"i", "lé"}, "noun"},
			"ọmọ":    {[]Tone{Mid, Mid}, []string{"ọ", "mọ"}, "noun"},
			"obì":    {[]Tone{Mid, Low}, []string{"o", "bì"}, "noun"},
			"àgbà":   {[]Tone{Low, Low}, []string{"à", "gbà"}, "noun"},
			"ti":     {[]Tone{Mid}, []string{"ti"}, "aux"},
			"yóò":    {[]Tone{High, Low}, []string{"yó", "ò"}, "aux"},
			"dára":   {[]Tone{High, Mid}, []string{"dá", "ra"}, "adj"},
			"pupa":   {[]Tone{Mid, Mid}, []string{"pu", "pa"}, "adj"},
			"funfun": {[]Tone{Mid, Mid}, []string{"fun", "fun"}, "adj"},
		}
	case lang.Fon:
		system = "3-level"
		words = map[string]defaultWord{
			"un":   {[]Tone{Mid}, []string{"un"}, "pronoun"},
			"à":    {[]Tone{Low}, []string{"à"}, "pronoun"},
			"é":    {[]Tone{High}, []string{"é"}, "pronoun"},
			"mí":   {[]Tone{High}, []string{"mí"}, "pronoun"},
			"yé":   {[]Tone{High}, []string{"yé"}, "pronoun"},
			"ɖu":   {[]Tone{Mid}, []string{"ɖu"}, "verb"},
			"yi":   {[]Tone{Mid}, []string{"yi"}, "verb"},
			"wá":   {[]Tone{High}, []string{"wá"}, "verb"},
			"ɖɔ":   {[]Tone{Mid}, []string{"ɖɔ"}, "verb"},
			"xwé":  {[]Tone{High}, []string{"xwé"}, "noun"},
			"vi":   {[]Tone{Mid}, []string{"vi"}, "noun"},
			"àzɔ̀n": {[]Tone{Low, Low}, []string{"à", "zɔ̀n"}, "noun"},
			"kò":   {[]Tone{Low}, []string{"kò"}, "aux"},
			"ná":   {[]Tone{High}, []string{"ná"}, "aux"},
		}
	case lang.Ewe:
		system = "2-level"
		words = map[string]defaultWord{
			"me":  {[]Tone{Mid}, []string{"me"}, "pronoun"},
			"nè":  {[]Tone{Low}, []string{"nè"}, "pronoun"},
			"é":   {[]Tone{High}, []string{"é"}, "pronoun"},
			"ɖu":  {[]Tone{Mid}, []string{"ɖu"}, "verb"},
			"yi":  {[]Tone{Mid}, []string{"yi"}, "verb"},
			"va":  {[]Tone{Mid}, []string{"va"}, "verb"},
			"aƒe": {[]Tone{Mid, Mid}, []string{"a", "ƒe"}, "noun"},
			"ame": {[]Tone{Mid, Mid}, []string{"a", "me"}, "noun"},
		}
	case lang.Dindi:
		system = "2-level"
		words = map[string]defaultWord{
			"ay":  {[]Tone{Mid}, []string{"ay"}, "pronoun"},
			"ni":  {[]Tone{Mid}, []string{"ni"}, "pronoun"},
			"a":   {[]Tone{Mid}, []string{"a"}, "pronoun"},
			"tɛ":  {[]Tone{Mid}, []string{"tɛ"}, "verb"},
			"koy": {[]Tone{Mid}, []string{"koy"}, "verb"},
		}
	default:
		return nil
	}

	lex := &Lexicon{
		Language:   language,
		ToneSystem: system,
		words:      make(map[string]LexiconEntry, len(words)),
	}
	for surface, w := range words {
		base := strings.ToLower(StripToneMarks(surface))
		lex.words[base] = LexiconEntry{
			BaseForm:  base,
			Tones:     w.tones,
			Syllables: w.syllables,
			POS:       w.pos,
		}
	}
	return lex
}

func defaultSandhiRules(language string) []SandhiRule {
	switch language {
	case lang.Yoruba:
		return []SandhiRule{
			{Name: "High-Low Sequence", Final: High, NextInitial: Low, To: Mid, Rewrite: LeftFinal},
		}
	case lang.Fon:
		return []SandhiRule{
			{Name: "Tone Assimilation", Final: Low, NextInitial: High, To: Mid, Rewrite: LeftFinal},
		}
	case lang.Ewe:
		return []SandhiRule{
			{Name: "Downstep", Final: High, NextInitial: High, To: Mid, Rewrite: RightInitial},
		}
	default:
		return nil
	}
}
