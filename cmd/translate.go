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
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dossou/afriwiki/internal/config"
	"github.com/dossou/afriwiki/internal/detector"
	"github.com/dossou/afriwiki/internal/markdown"
	"github.com/dossou/afriwiki/internal/pipeline"
	"github.com/dossou/afriwiki/internal/pivot"
)

var (
	inputFile    string
	outputFile   string
	sourceLang   string
	targetLang   string
	strategyName string
	checkpointID string

	dbPath       string
	noCache      bool
	workers      int
	fromMarkdown bool
)

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate an article into a low-resource target language",
	Long: `Translate a text file into Fon, Yoruba, Ewe or Dindi.

The text is segmented, culturally significant terms are replaced with
placeholders, each segment is routed through the best-scoring chain of
pivot languages, placeholders are restored and tone diacritics applied.

Routing strategies:
  - direct          No pivots, one hop from source to target
  - single_pivot    Always relay through one pivot
  - dual_pivot      Relay through an ordered pair of pivots
  - quality_pivot   Best of direct and single-pivot by estimated quality
  - cultural_pivot  Prefer the target's contact languages as pivots`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if inputFile == outputFile {
			return fmt.Errorf("input file and output file cannot be the same")
		}

		strategy, err := pivot.ParseStrategy(strategyName)
		if err != nil {
			return err
		}

		raw, err := os.ReadFile(inputFile)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
		text := string(raw)
		if fromMarkdown {
			text = markdown.ToPlainText(raw)
		}

		ctx := context.Background()

		if sourceLang == "auto" {
			det := detector.New()
			if detected, ok := det.DetectISO(text); ok {
				sourceLang = detected
				fmt.Fprintf(os.Stderr, "Detected source language: %s\n", sourceLang)
			} else {
				return fmt.Errorf("could not detect source language, pass --source")
			}
		}

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if workers > 0 {
			cfg.Workers = workers
		}

		p, db, err := buildPipeline(cfg, dbPath, noCache)
		if err != nil {
			return err
		}
		if db != nil {
			defer db.Close()
		}

		cpID := checkpointID
		if db != nil && cpID == "" {
			cpID, err = db.CreateCheckpoint(ctx, inputFile, outputFile, sourceLang, targetLang)
			if err != nil {
				return fmt.Errorf("failed to create checkpoint: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Checkpoint: %s\n", cpID)
		}

		result, err := p.Translate(ctx, pipeline.Request{
			Text:         text,
			SourceLang:   sourceLang,
			TargetLang:   targetLang,
			Strategy:     strategy,
			CheckpointID: cpID,
		})
		if err != nil {
			return err
		}

		if db != nil && cpID != "" {
			_ = db.CompleteCheckpoint(ctx, cpID)
		}

		if dir := filepath.Dir(outputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		if err := os.WriteFile(outputFile, []byte(result.Text), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}

		fmt.Printf("Successfully translated %s to %s\n", sourceLang, targetLang)
		fmt.Printf("Segments: %d  Quality: %.2f  Confidence: %.2f\n",
			len(result.Segments), result.Quality, result.Confidence)
		for _, seg := range result.Segments {
			if len(seg.Unrestored) > 0 {
				fmt.Fprintf(os.Stderr, "Segment %d: %d protected terms missing from output\n",
					seg.Index, len(seg.Unrestored))
			}
			for _, d := range seg.Diagnostics {
				fmt.Fprintf(os.Stderr, "Segment %d: %s\n", seg.Index, d)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file to translate (required)")
	translateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file for translation (required)")
	translateCmd.Flags().StringVarP(&sourceLang, "source", "s", "auto", "Source language code")
	translateCmd.Flags().StringVarP(&targetLang, "target", "t", "", "Target language code (required)")
	translateCmd.Flags().StringVar(&strategyName, "strategy", "quality_pivot", "Routing strategy")
	translateCmd.Flags().StringVar(&checkpointID, "resume", "", "Resume a previous run by checkpoint ID")

	translateCmd.Flags().StringVar(&dbPath, "db", "./data/afriwiki.db", "Database path for translation memory")
	translateCmd.Flags().BoolVar(&noCache, "no-cache", false, "Disable translation memory and checkpoints")
	translateCmd.Flags().IntVar(&workers, "workers", 0, "Concurrent segment workers (0 = config default)")
	translateCmd.Flags().BoolVar(&fromMarkdown, "markdown", false, "Flatten Markdown input to plain text before translating")

	translateCmd.MarkFlagRequired("input")
	translateCmd.MarkFlagRequired("output")
	translateCmd.MarkFlagRequired("target")
}
