package translator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dossou/afriwiki/internal/pivot"
)

// Engine dispatches each hop of a route to the first registered service
// that covers both endpoint languages. Registration order is priority
// order. An Engine is safe for concurrent use; the pipeline's worker pool
// runs hops through it in parallel.
type Engine struct {
	services []TranslationService
	configs  map[string]ServiceConfig
	log      *slog.Logger

	// coverage caches SupportedLanguages per service name, populated once
	// per service under mu.
	mu       sync.Mutex
	coverage map[string]map[string]bool
}

// NewEngine builds an Engine over the given services. configs is keyed by
// service name; services without an entry run with a zero ServiceConfig.
func NewEngine(services []TranslationService, configs map[string]ServiceConfig, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if configs == nil {
		configs = make(map[string]ServiceConfig)
	}
	return &Engine{
		services: services,
		configs:  configs,
		log:      logger,
		coverage: make(map[string]map[string]bool),
	}
}

func (e *Engine) covers(ctx context.Context, svc TranslationService, source, target string) bool {
	e.mu.Lock()
	set, ok := e.coverage[svc.Name()]
	if !ok {
		langs, err := svc.SupportedLanguages(ctx)
		if err != nil {
			e.mu.Unlock()
			return false
		}
		set = make(map[string]bool, len(langs))
		for _, l := range langs {
			set[l] = true
		}
		e.coverage[svc.Name()] = set
	}
	e.mu.Unlock()
	// An empty declared set means the service takes any pair.
	if len(set) == 0 {
		return true
	}
	return set[source] && set[target]
}

// pick returns the highest-priority service covering the hop.
func (e *Engine) pick(ctx context.Context, source, target string) (TranslationService, error) {
	for _, svc := range e.services {
		if e.covers(ctx, svc, source, target) {
			return svc, nil
		}
	}
	return nil, fmt.Errorf("no engine covers %s -> %s", source, target)
}

// Translate runs one hop, picking an engine by coverage.
func (e *Engine) Translate(ctx context.Context, text, source, target string) (string, error) {
	svc, err := e.pick(ctx, source, target)
	if err != nil {
		return "", err
	}
	res, err := svc.Translate(ctx, e.configs[svc.Name()], TranslateRequest{
		Text:       text,
		SourceLang: source,
		TargetLang: target,
		Context:    pivot.Continuity(ctx),
	})
	if err != nil {
		e.log.Warn("hop engine failed", "engine", svc.Name(), "source", source, "target", target, "error", err)
		return "", err
	}
	if res.Error != "" {
		return "", fmt.Errorf("%s: %s", svc.Name(), res.Error)
	}
	return res.TranslatedText, nil
}

// Func adapts the Engine to the router's hop-execution signature.
func (e *Engine) Func() pivot.TranslateFunc {
	return e.Translate
}
