// Package lang holds the language inventory shared by the routing, tonal
// and protection packages: ISO-style short codes, tonal flags and the
// resource-rich set used for pivot candidate selection.
package lang

// Supported low-resource target languages.
const (
	Fon    = "fon"
	Yoruba = "yor"
	Ewe    = "ewe"
	Dindi  = "dindi"
)

// Resource-rich languages usable as pivots.
const (
	English = "en"
	French  = "fr"
)

type Info struct {
	Code       string
	Name       string
	Tonal      bool
	ToneLevels int // 0 for non-tonal languages
}

var registry = map[string]Info{
	English: {Code: English, Name: "English"},
	French:  {Code: French, Name: "French"},
	Fon:     {Code: Fon, Name: "Fon", Tonal: true, ToneLevels: 3},
	Yoruba:  {Code: Yoruba, Name: "Yoruba", Tonal: true, ToneLevels: 3},
	Ewe:     {Code: Ewe, Name: "Ewe", Tonal: true, ToneLevels: 2},
	Dindi:   {Code: Dindi, Name: "Dindi", Tonal: true, ToneLevels: 2},
}

// Lookup returns the registry entry for code. Unknown codes return a
// zero-valued Info with ok == false; callers treat those as non-tonal,
// resource-poor languages.
func Lookup(code string) (Info, bool) {
	info, ok := registry[code]
	return info, ok
}

// IsTonal reports whether code names a tonal language known to the registry.
func IsTonal(code string) bool {
	info, ok := registry[code]
	return ok && info.Tonal
}

// IsResourceRich reports whether code belongs to the pivot candidate set.
func IsResourceRich(code string) bool {
	return code == English || code == French
}

// ResourceRich returns the ordered pivot candidate set.
func ResourceRich() []string {
	return []string{English, French}
}

// Targets returns the supported low-resource target codes.
func Targets() []string {
	return []string{Fon, Yoruba, Ewe, Dindi}
}
