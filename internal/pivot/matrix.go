package pivot

import (
	"fmt"
	"strings"

	"github.com/dossou/afriwiki/internal/lang"
)

// reverseDiscount is applied when only the opposite direction of a language
// pair has a known score.
const reverseDiscount = 0.9

type edge struct{ src, tgt string }

// Matrix holds directed translation-quality scores Q(src,tgt) in [0,1].
// Missing entries are inferred from the reverse edge with a fixed discount,
// then from a coarse resource-rich/resource-poor default, so lookups always
// produce a usable estimate.
type Matrix struct {
	edges map[edge]float64
}

// NewMatrix builds a Matrix from "src>tgt" keys, the shape the pair scores
// take in configuration files. Scores outside [0,1] are rejected at load
// time.
func NewMatrix(scores map[string]float64) (*Matrix, error) {
	m := &Matrix{edges: make(map[edge]float64, len(scores))}
	for key, q := range scores {
		src, tgt, ok := strings.Cut(key, ">")
		if !ok {
			return nil, fmt.Errorf("pivot: quality key %q is not of the form src>tgt", key)
		}
		if q < 0 || q > 1 {
			return nil, fmt.Errorf("pivot: quality %q=%v outside [0,1]", key, q)
		}
		m.edges[edge{strings.TrimSpace(src), strings.TrimSpace(tgt)}] = q
	}
	return m, nil
}

// DefaultMatrix returns the built-in pair estimates for the supported
// languages. French scores higher than English into Fon, Ewe and Dindi
// (francophone contact languages); the reverse holds for Yoruba.
func DefaultMatrix() *Matrix {
	m, _ := NewMatrix(map[string]float64{
		"en>fr":    0.95,
		"fr>en":    0.95,
		"en>fon":   0.3,
		"fr>fon":   0.7,
		"en>yor":   0.4,
		"fr>yor":   0.3,
		"en>ewe":   0.3,
		"fr>ewe":   0.6,
		"en>dindi": 0.2,
		"fr>dindi": 0.5,
	})
	return m
}

// Quality returns the estimated translation quality from src to tgt.
func (m *Matrix) Quality(src, tgt string) float64 {
	if src == tgt {
		return 1.0
	}
	if q, ok := m.edges[edge{src, tgt}]; ok {
		return q
	}
	if q, ok := m.edges[edge{tgt, src}]; ok {
		return q * reverseDiscount
	}
	switch {
	case lang.IsResourceRich(src) && lang.IsResourceRich(tgt):
		return 0.95
	case lang.IsResourceRich(src) || lang.IsResourceRich(tgt):
		return 0.4
	default:
		return 0.2
	}
}

// Set overrides a single directed edge. Intended for tests and for glossary
// feedback loops that refine estimates after evaluation runs.
func (m *Matrix) Set(src, tgt string, q float64) {
	m.edges[edge{src, tgt}] = q
}

// Merge overlays other's edges onto m, overriding existing entries.
func (m *Matrix) Merge(other *Matrix) {
	for e, q := range other.edges {
		m.edges[e] = q
	}
}

// Affinity holds symmetric cultural-affinity scores between target
// languages sharing vocabulary and heritage. It biases pivot selection for
// the CulturalPivot strategy.
type Affinity struct {
	pairs map[edge]float64
}

// NewAffinity builds an Affinity table from "a>b" keys.
func NewAffinity(scores map[string]float64) (*Affinity, error) {
	a := &Affinity{pairs: make(map[edge]float64, len(scores))}
	for key, v := range scores {
		l1, l2, ok := strings.Cut(key, ">")
		if !ok {
			return nil, fmt.Errorf("pivot: affinity key %q is not of the form a>b", key)
		}
		if v < 0 || v > 1 {
			return nil, fmt.Errorf("pivot: affinity %q=%v outside [0,1]", key, v)
		}
		a.pairs[edge{strings.TrimSpace(l1), strings.TrimSpace(l2)}] = v
	}
	return a, nil
}

// DefaultAffinity returns the built-in affinity estimates: Fon and Yoruba
// share a large stock of religious and cultural vocabulary, the Gbe
// languages (Fon, Ewe) somewhat less, Dindi stands apart.
func DefaultAffinity() *Affinity {
	a, _ := NewAffinity(map[string]float64{
		"fon>yor":   0.8,
		"fon>ewe":   0.6,
		"fon>dindi": 0.4,
		"yor>ewe":   0.5,
		"yor>dindi": 0.3,
		"ewe>dindi": 0.3,
	})
	return a
}

// Merge overlays other's pairs onto a, overriding existing entries.
func (a *Affinity) Merge(other *Affinity) {
	for e, v := range other.pairs {
		a.pairs[e] = v
	}
}

// Score returns the affinity between two languages, looking up both
// directions. Identical languages score 1.0, unknown pairs 0.1.
func (a *Affinity) Score(l1, l2 string) float64 {
	if l1 == l2 {
		return 1.0
	}
	if v, ok := a.pairs[edge{l1, l2}]; ok {
		return v
	}
	if v, ok := a.pairs[edge{l2, l1}]; ok {
		return v
	}
	return 0.1
}
