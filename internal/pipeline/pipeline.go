// Package pipeline runs the full translation flow: segmentation, term
// protection, pivot routing, restoration and tonal processing, with
// translation memory and checkpointing layered around it.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dossou/afriwiki/internal/lang"
	"github.com/dossou/afriwiki/internal/pivot"
	"github.com/dossou/afriwiki/internal/protect"
	"github.com/dossou/afriwiki/internal/segment"
	"github.com/dossou/afriwiki/internal/store"
	"github.com/dossou/afriwiki/internal/tonal"
	"github.com/dossou/afriwiki/internal/validator"
)

// Config assembles a Pipeline. Protector, Router and Tonal are required;
// Store, Validator and Checkpoints are optional layers.
type Config struct {
	Protector *protect.Protector
	Router    *pivot.Router
	// Engine executes individual hops.
	Engine    pivot.TranslateFunc
	Tonal     *tonal.Processor
	Store     *store.Store
	Validator *validator.Validator
	Logger    *slog.Logger

	// Workers bounds concurrent segment translation. Zero means 4.
	Workers int
	// SegmentOptions tunes unit splitting. The zero value uses defaults.
	SegmentOptions segment.Options
	// FuzzyThreshold enables fuzzy memory lookups when > 0.
	FuzzyThreshold float64
}

// Pipeline is safe for concurrent use once constructed.
type Pipeline struct {
	protector *protect.Protector
	router    *pivot.Router
	engine    pivot.TranslateFunc
	tonal     *tonal.Processor
	store     *store.Store
	validator *validator.Validator
	log       *slog.Logger

	workers        int
	segOpts        segment.Options
	fuzzyThreshold float64
}

func New(cfg Config) (*Pipeline, error) {
	if cfg.Protector == nil || cfg.Router == nil || cfg.Engine == nil || cfg.Tonal == nil {
		return nil, fmt.Errorf("pipeline: protector, router, engine and tonal processor are required")
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	return &Pipeline{
		protector:      cfg.Protector,
		router:         cfg.Router,
		engine:         cfg.Engine,
		tonal:          cfg.Tonal,
		store:          cfg.Store,
		validator:      cfg.Validator,
		log:            log,
		workers:        workers,
		segOpts:        cfg.SegmentOptions,
		fuzzyThreshold: cfg.FuzzyThreshold,
	}, nil
}

// Request is one article or text to translate end to end.
type Request struct {
	Text       string
	SourceLang string
	TargetLang string
	Strategy   pivot.Strategy
	// CheckpointID resumes a previous run; already-translated segments are
	// reused from the checkpoint.
	CheckpointID string
}

// SegmentReport describes how one translation unit was produced.
type SegmentReport struct {
	Index      int
	SourceText string
	FinalText  string
	Path       string
	Quality    float64
	Confidence float64
	FromCache  bool
	Protected  int
	Unrestored []protect.Term
	Diagnostics []string
}

// Result is the assembled translation plus per-segment detail.
type Result struct {
	Text       string
	Segments   []SegmentReport
	Quality    float64
	Confidence float64
}

// Translate runs the full flow over req. Segments are translated by a
// bounded worker pool and reassembled in input order. Individual segment
// problems degrade that segment, never the whole run.
func (p *Pipeline) Translate(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("pipeline: empty input text")
	}
	if req.SourceLang == "" || req.TargetLang == "" {
		return nil, fmt.Errorf("pipeline: source and target languages are required")
	}

	units := segment.Split(req.Text, p.segOpts)
	if len(units) == 0 {
		return nil, fmt.Errorf("pipeline: no translatable content")
	}

	var resumed map[int]string
	if p.store != nil && req.CheckpointID != "" {
		var err error
		resumed, err = p.store.GetSegments(ctx, req.CheckpointID)
		if err != nil {
			return nil, fmt.Errorf("pipeline: failed to load checkpoint %s: %w", req.CheckpointID, err)
		}
	}

	glossary := p.loadGlossary(ctx, req.SourceLang, req.TargetLang)

	reports := make([]SegmentReport, len(units))
	sem := make(chan struct{}, p.workers)
	var wg sync.WaitGroup

	for i, unit := range units {
		if done, ok := resumed[i]; ok {
			reports[i] = SegmentReport{Index: i, SourceText: unit, FinalText: done, FromCache: true, Quality: 1.0, Confidence: 1.0}
			continue
		}
		var prev string
		if i > 0 {
			prev = units[i-1]
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int, text, prev string) {
			defer wg.Done()
			defer func() { <-sem }()
			reports[idx] = p.translateSegment(ctx, idx, text, prev, req, glossary)
			if p.store != nil && req.CheckpointID != "" {
				if err := p.store.SaveSegment(ctx, req.CheckpointID, idx, reports[idx].FinalText, reports[idx].Quality); err != nil {
					p.log.Warn("failed to checkpoint segment", "index", idx, "error", err)
				}
			}
		}(i, unit, prev)
	}
	wg.Wait()

	sort.Slice(reports, func(a, b int) bool { return reports[a].Index < reports[b].Index })

	parts := make([]string, len(reports))
	quality, confidence := 0.0, 0.0
	for i, r := range reports {
		parts[i] = r.FinalText
		quality += r.Quality
		confidence += r.Confidence
	}
	return &Result{
		Text:       strings.Join(parts, "\n\n"),
		Segments:   reports,
		Quality:    quality / float64(len(reports)),
		Confidence: confidence / float64(len(reports)),
	}, nil
}

func (p *Pipeline) translateSegment(ctx context.Context, idx int, text, prev string, req Request, glossary map[string]string) SegmentReport {
	report := SegmentReport{Index: idx, SourceText: text}

	if p.store != nil {
		if cached, ok, err := p.store.GetCachedTranslation(ctx, text, req.SourceLang, req.TargetLang); err == nil && ok {
			report.FinalText = cached
			report.FromCache = true
			report.Quality = 1.0
			report.Confidence = 1.0
			return report
		}
		if p.fuzzyThreshold > 0 {
			if cached, ok, err := p.store.FuzzyGetCachedTranslation(ctx, text, req.SourceLang, req.TargetLang, p.fuzzyThreshold); err == nil && ok {
				report.FinalText = cached
				report.FromCache = true
				report.Quality = p.fuzzyThreshold
				report.Confidence = p.fuzzyThreshold
				return report
			}
		}
	}

	masked, sess := p.protector.Protect(text, req.TargetLang)
	report.Protected = sess.Len()

	path := p.router.FindPath(req.SourceLang, req.TargetLang, req.Strategy)
	report.Path = path.String()

	// The preceding unit's tail rides along so prompt-building engines
	// keep continuity across segment boundaries.
	hopCtx := ctx
	if prev != "" {
		hopCtx = pivot.WithContinuity(ctx, segment.ExtractContext(prev, 0))
	}
	translate := p.engine
	if p.store != nil {
		translate = p.cachedHops(p.engine)
	}

	res := p.router.ExecutePath(hopCtx, masked, path, translate)
	report.Quality = res.CumulativeQuality
	report.Confidence = res.Confidence

	restored, missing := p.protector.Restore(res.FinalText, sess)
	report.Unrestored = missing

	restored = applyGlossary(restored, glossary)

	if lang.IsTonal(req.TargetLang) {
		restored = p.tonal.ProcessText(restored, req.TargetLang)
		report.Diagnostics = p.tonal.ValidateTones(restored, req.TargetLang)
	}
	report.FinalText = restored

	if p.validator != nil {
		if ok, err := p.validator.IsValid(restored, req.TargetLang); !ok {
			p.log.Warn("output failed language validation", "segment", idx, "error", err)
			report.Diagnostics = append(report.Diagnostics, fmt.Sprintf("language validation: %v", err))
		}
	}

	p.record(ctx, text, req, path, res, restored)
	return report
}

// cachedHops wraps the hop engine with the store's hop cache so repeated
// routes through the same pivot reuse earlier work instead of re-querying
// the engines. Failed hops are never cached.
func (p *Pipeline) cachedHops(next pivot.TranslateFunc) pivot.TranslateFunc {
	return func(ctx context.Context, text, source, target string) (string, error) {
		if cached, ok, err := p.store.GetHop(ctx, text, source, target); err == nil && ok {
			return cached, nil
		}
		out, err := next(ctx, text, source, target)
		if err == nil && !pivot.Failed(out) {
			if serr := p.store.SaveHop(ctx, text, source, target, out); serr != nil {
				p.log.Warn("failed to cache hop", "error", serr)
			}
		}
		return out, err
	}
}

// record persists the run, its hops and the memory entry. Store failures
// are logged and otherwise ignored; persistence never fails a translation.
func (p *Pipeline) record(ctx context.Context, sourceText string, req Request, path pivot.Path, res *pivot.Result, finalText string) {
	if p.store == nil {
		return
	}
	runID := uuid.NewString()
	err := p.store.SaveRouteRun(ctx, store.RouteRun{
		ID:         runID,
		SourceText: sourceText,
		SourceLang: req.SourceLang,
		TargetLang: req.TargetLang,
		Strategy:   path.Strategy.String(),
		Path:       path.String(),
		FinalText:  finalText,
		Quality:    res.CumulativeQuality,
		Confidence: res.Confidence,
	})
	if err != nil {
		p.log.Warn("failed to record route run", "error", err)
		return
	}
	for i, hop := range res.Hops {
		if err := p.store.SaveHopRecord(ctx, runID, i, hop.From, hop.To, hop.Text, hop.Quality, hop.Err); err != nil {
			p.log.Warn("failed to record hop", "hop", i, "error", err)
		}
	}
	if err := p.store.SaveToMemory(ctx, sourceText, req.SourceLang, req.TargetLang, finalText, path.String()); err != nil {
		p.log.Warn("failed to save translation memory", "error", err)
	}
}

func (p *Pipeline) loadGlossary(ctx context.Context, sourceLang, targetLang string) map[string]string {
	if p.store == nil {
		return nil
	}
	terms, err := p.store.GetGlossaryTerms(ctx, sourceLang, targetLang)
	if err != nil {
		p.log.Warn("failed to load glossary", "error", err)
		return nil
	}
	return terms
}

// applyGlossary enforces user terminology on the restored text. Longer
// terms are replaced first so nested terms cannot clobber each other.
func applyGlossary(text string, glossary map[string]string) string {
	if len(glossary) == 0 {
		return text
	}
	terms := make([]string, 0, len(glossary))
	for term := range glossary {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(a, b int) bool { return len(terms[a]) > len(terms[b]) })
	for _, term := range terms {
		text = strings.ReplaceAll(text, term, glossary[term])
	}
	return text
}
