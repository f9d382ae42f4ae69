/*
Copyright © 2025 The afriwiki authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dossou/afriwiki/internal/config"
	"github.com/dossou/afriwiki/internal/pipeline"
	"github.com/dossou/afriwiki/internal/pivot"
	"github.com/dossou/afriwiki/internal/protect"
	"github.com/dossou/afriwiki/internal/segment"
	"github.com/dossou/afriwiki/internal/store"
	"github.com/dossou/afriwiki/internal/tonal"
	"github.com/dossou/afriwiki/internal/translator"
	"github.com/dossou/afriwiki/internal/validator"
)

// buildServices constructs the engine priority list from service names.
func buildServices(cfg *config.Config) ([]translator.TranslationService, error) {
	var list []translator.TranslationService

	for _, name := range cfg.Services {
		switch name {
		case "google":
			list = append(list, translator.NewGoogleService())
		case "mymemory":
			var email string
			if ec, ok := cfg.Engines["mymemory"]; ok {
				email = ec.APIKey
			}
			list = append(list, translator.NewMyMemoryService(email))
		case "ollama":
			var baseURL string
			if ec, ok := cfg.Engines["ollama"]; ok {
				baseURL = ec.BaseURL
			}
			list = append(list, translator.NewOllamaTranslator(baseURL, nil))
		default:
			fmt.Fprintf(os.Stderr, "Unknown service: %s, skipping\n", name)
		}
	}

	if len(list) == 0 {
		return nil, fmt.Errorf("no valid services configured")
	}
	return list, nil
}

// openStore opens the SQLite database, creating its directory first so a
// fresh checkout works with the default ./data path.
func openStore(path string) (*store.Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	return store.New(path)
}

// buildRouter assembles the pivot router from configuration.
func buildRouter(cfg *config.Config) (*pivot.Router, error) {
	matrix, err := cfg.Matrix()
	if err != nil {
		return nil, err
	}
	affinity, err := cfg.AffinityTable()
	if err != nil {
		return nil, err
	}
	return pivot.New(pivot.Config{
		Matrix:          matrix,
		Affinity:        affinity,
		PivotCandidates: cfg.PivotCandidates,
		PreferredPivots: cfg.PreferredPivots,
	}), nil
}

// buildPipeline wires every layer together. The returned store is nil
// when caching is disabled; the caller owns closing it.
func buildPipeline(cfg *config.Config, dbPath string, noCache bool) (*pipeline.Pipeline, *store.Store, error) {
	protector, err := protect.New(protect.Config{
		CulturalTerms: protect.MergeCulturalTerms(cfg.CulturalTerms),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build protector: %w", err)
	}

	router, err := buildRouter(cfg)
	if err != nil {
		return nil, nil, err
	}

	services, err := buildServices(cfg)
	if err != nil {
		return nil, nil, err
	}
	engine := translator.NewEngine(services, cfg.Engines, slog.Default())

	processor := tonal.NewProcessor(tonal.Config{DataDir: cfg.TonalDataDir})

	var db *store.Store
	if !noCache && dbPath != "" {
		db, err = openStore(dbPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
	}

	p, err := pipeline.New(pipeline.Config{
		Protector:      protector,
		Router:         router,
		Engine:         engine.Func(),
		Tonal:          processor,
		Store:          db,
		Validator:      validator.New(),
		Workers:        cfg.Workers,
		SegmentOptions: segment.Options{MaxLen: cfg.SegmentMaxLen},
		FuzzyThreshold: cfg.FuzzyThreshold,
	})
	if err != nil {
		if db != nil {
			db.Close()
		}
		return nil, nil, err
	}
	return p, db, nil
}
