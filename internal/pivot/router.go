// Package pivot decides whether a translation should relay through
// intermediate resource-rich languages and executes the chosen route hop by
// hop. Route selection is a scored search over the (small, fixed) candidate
// path space: every candidate's quality is the product of its hop qualities
// times a per-hop complexity penalty, and the best scorer wins.
package pivot

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/dossou/afriwiki/internal/lang"
)

// Strategy selects how candidate routes are generated.
type Strategy int

const (
	// Direct forces a zero-hop route.
	Direct Strategy = iota
	// SinglePivot relays through one pivot even when the direct edge is good.
	SinglePivot
	// DualPivot relays through an ordered pair of pivots.
	DualPivot
	// QualityPivot picks whichever of direct/single-pivot scores best.
	QualityPivot
	// CulturalPivot restricts pivots to the target's preferred contact
	// languages and credits cultural affinity between source and target.
	CulturalPivot
)

var strategyNames = [...]string{"direct", "single_pivot", "dual_pivot", "quality_pivot", "cultural_pivot"}

func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return "unknown"
	}
	return strategyNames[s]
}

// ParseStrategy maps a configuration/CLI name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	for i, n := range strategyNames {
		if n == name {
			return Strategy(i), nil
		}
	}
	return Direct, fmt.Errorf("pivot: unknown strategy %q", name)
}

// Strategies returns all strategies in declaration order.
func Strategies() []Strategy {
	return []Strategy{Direct, SinglePivot, DualPivot, QualityPivot, CulturalPivot}
}

// Path is a chosen route from Source to Target through zero or more pivots.
type Path struct {
	Source           string
	Target           string
	Pivots           []string
	Strategy         Strategy
	EstimatedQuality float64
	ComplexityScore  float64
}

// Hops expands the path into its (from, to) pairs in execution order.
func (p Path) Hops() [][2]string {
	langs := append(append([]string{p.Source}, p.Pivots...), p.Target)
	hops := make([][2]string, 0, len(langs)-1)
	for i := 0; i+1 < len(langs); i++ {
		hops = append(hops, [2]string{langs[i], langs[i+1]})
	}
	return hops
}

func (p Path) String() string {
	langs := append(append([]string{p.Source}, p.Pivots...), p.Target)
	return strings.Join(langs, " -> ")
}

const (
	// directThreshold short-circuits route search when the direct edge is
	// already this good.
	directThreshold = 0.8
	// hopPenalty compounds per pivot hop: every relay loses a little.
	hopPenalty = 0.95
	// failurePenalty multiplies cumulative quality when a hop fails.
	failurePenalty = 0.1
	// affinityWeight scales the cultural-affinity bonus.
	affinityWeight = 0.2
	// confidenceCeiling keeps reported confidence conservative.
	confidenceCeiling = 0.9
)

// failureSentinelRe recognizes error markers that upstream translators emit
// in-band instead of failing.
var failureSentinelRe = regexp.MustCompile(`^\s*(?:ERROR_|ERREUR_|TRADUCTION_IMPOSSIBLE)`)

// Failed reports whether a hop result counts as a failed translation:
// empty output or a known failure sentinel.
func Failed(result string) bool {
	return strings.TrimSpace(result) == "" || failureSentinelRe.MatchString(result)
}

// TranslateFunc is the injected translate capability. It may block; any
// timeout or cancellation it honors surfaces as an error, which the
// executor converts into a hop failure rather than an abort.
type TranslateFunc func(ctx context.Context, text, source, target string) (string, error)

// Config assembles a Router. Zero-valued fields fall back to the built-in
// tables.
type Config struct {
	Matrix          *Matrix
	Affinity        *Affinity
	PivotCandidates []string
	// PreferredPivots lists, per target language, the pivots the
	// CulturalPivot strategy may use, most preferred first.
	PreferredPivots map[string][]string
	Logger          *slog.Logger
}

// Router scores and executes pivot routes. Its tables are read-only after
// New, so one Router serves concurrent callers.
type Router struct {
	matrix     *Matrix
	affinity   *Affinity
	candidates []string
	preferred  map[string][]string
	log        *slog.Logger
}

// New builds a Router from cfg, filling defaults for anything unset.
func New(cfg Config) *Router {
	r := &Router{
		matrix:     cfg.Matrix,
		affinity:   cfg.Affinity,
		candidates: cfg.PivotCandidates,
		preferred:  cfg.PreferredPivots,
		log:        cfg.Logger,
	}
	if r.matrix == nil {
		r.matrix = DefaultMatrix()
	}
	if r.affinity == nil {
		r.affinity = DefaultAffinity()
	}
	if r.candidates == nil {
		r.candidates = lang.ResourceRich()
	}
	if r.preferred == nil {
		r.preferred = map[string][]string{
			lang.Fon:    {lang.French, lang.English},
			lang.Yoruba: {lang.English, lang.French},
			lang.Ewe:    {lang.French, lang.English},
			lang.Dindi:  {lang.French, lang.English},
		}
	}
	if r.log == nil {
		r.log = slog.Default()
	}
	return r
}

// Quality exposes the underlying matrix estimate for a directed pair.
func (r *Router) Quality(src, tgt string) float64 {
	return r.matrix.Quality(src, tgt)
}

// FindPath returns the best route from source to target under the given
// strategy. It never fails: when no candidate route beats the direct
// estimate, or none exists at all, the zero-hop path is returned.
func (r *Router) FindPath(source, target string, strategy Strategy) Path {
	direct := Path{
		Source:           source,
		Target:           target,
		Strategy:         Direct,
		EstimatedQuality: r.matrix.Quality(source, target),
	}
	if strategy == Direct {
		return direct
	}
	if direct.EstimatedQuality >= directThreshold && strategy != SinglePivot {
		return direct
	}

	candidates := r.candidatePaths(source, target, strategy)
	if len(candidates) == 0 {
		return direct
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].EstimatedQuality != candidates[j].EstimatedQuality {
			return candidates[i].EstimatedQuality > candidates[j].EstimatedQuality
		}
		return len(candidates[i].Pivots) < len(candidates[j].Pivots)
	})

	if candidates[0].EstimatedQuality <= direct.EstimatedQuality {
		return direct
	}
	return candidates[0]
}

// candidatePaths enumerates the scored route space for a strategy. The
// pivot candidate set is small and fixed, so exhaustive enumeration is
// exact and cheap.
func (r *Router) candidatePaths(source, target string, strategy Strategy) []Path {
	var paths []Path

	switch strategy {
	case SinglePivot, QualityPivot:
		for _, pv := range r.candidates {
			if pv == source || pv == target {
				continue
			}
			paths = append(paths, Path{
				Source:           source,
				Target:           target,
				Pivots:           []string{pv},
				Strategy:         strategy,
				EstimatedQuality: r.chainQuality(source, []string{pv}, target),
				ComplexityScore:  1,
			})
		}

	case DualPivot:
		for _, p1 := range r.candidates {
			for _, p2 := range r.candidates {
				if p1 == p2 || p1 == source || p1 == target || p2 == source || p2 == target {
					continue
				}
				paths = append(paths, Path{
					Source:           source,
					Target:           target,
					Pivots:           []string{p1, p2},
					Strategy:         strategy,
					EstimatedQuality: r.chainQuality(source, []string{p1, p2}, target),
					ComplexityScore:  2,
				})
			}
		}

	case CulturalPivot:
		pivots := r.preferred[target]
		if pivots == nil {
			pivots = r.candidates
		}
		bonus := r.affinity.Score(source, target) * affinityWeight
		for _, pv := range pivots {
			if pv == source || pv == target {
				continue
			}
			q := r.chainQuality(source, []string{pv}, target) + bonus
			if q > 1 {
				q = 1
			}
			paths = append(paths, Path{
				Source:           source,
				Target:           target,
				Pivots:           []string{pv},
				Strategy:         strategy,
				EstimatedQuality: q,
				ComplexityScore:  1 + bonus,
			})
		}
	}

	return paths
}

// chainQuality is the product of the chain's hop qualities times the
// per-hop complexity penalty. Adding a hop can only win when the product
// strictly improves on the alternatives.
func (r *Router) chainQuality(source string, pivots []string, target string) float64 {
	q := 1.0
	from := source
	for _, pv := range pivots {
		q *= r.matrix.Quality(from, pv)
		from = pv
	}
	q *= r.matrix.Quality(from, target)
	for range pivots {
		q *= hopPenalty
	}
	return q
}

// Hop records one executed leg of a route.
type Hop struct {
	From    string
	To      string
	Text    string
	Quality float64
	Err     string
}

// Result is the outcome of executing a full path: a best-effort final text
// plus an honest quality signal, even when hops failed along the way.
type Result struct {
	FinalText         string
	Hops              []Hop
	CumulativeQuality float64
	Confidence        float64
}

// ExecutePath runs text through every hop of path in strict sequence using
// the injected translate capability. A hop that errors, returns empty text
// or emits a failure sentinel does not abort the route: the hop's input is
// carried forward and the cumulative quality takes the failure penalty, so
// the caller always receives a usable text and a score that reflects what
// happened.
func (r *Router) ExecutePath(ctx context.Context, text string, path Path, translate TranslateFunc) *Result {
	res := &Result{CumulativeQuality: 1.0}
	current := text

	for _, hop := range path.Hops() {
		from, to := hop[0], hop[1]
		edgeQuality := r.matrix.Quality(from, to)

		out, err := translate(ctx, current, from, to)
		h := Hop{From: from, To: to, Quality: edgeQuality}

		switch {
		case err != nil:
			h.Err = err.Error()
			h.Text = current
			res.CumulativeQuality *= failurePenalty
			r.log.Warn("hop translation failed", "from", from, "to", to, "error", err)
		case Failed(out):
			h.Err = "empty or sentinel result"
			h.Text = current
			res.CumulativeQuality *= failurePenalty
			r.log.Warn("hop produced unusable result", "from", from, "to", to)
		default:
			h.Text = out
			current = out
			res.CumulativeQuality *= edgeQuality
		}
		res.Hops = append(res.Hops, h)
	}

	res.FinalText = current
	res.Confidence = res.CumulativeQuality
	if res.Confidence > confidenceCeiling {
		res.Confidence = confidenceCeiling
	}
	return res
}

// Recommendation pairs a strategy with the path it would take and the
// quality it expects, for diagnostics.
type Recommendation struct {
	Strategy         Strategy
	Path             Path
	EstimatedQuality float64
	Recommended      bool
}

// Recommendations evaluates every strategy for a language pair and returns
// them ranked by estimated quality.
func (r *Router) Recommendations(source, target string) []Recommendation {
	recs := make([]Recommendation, 0, len(Strategies()))
	for _, s := range Strategies() {
		p := r.FindPath(source, target, s)
		recs = append(recs, Recommendation{
			Strategy:         s,
			Path:             p,
			EstimatedQuality: p.EstimatedQuality,
			Recommended:      p.EstimatedQuality > 0.5,
		})
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].EstimatedQuality > recs[j].EstimatedQuality
	})
	return recs
}
