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
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dossou/afriwiki/internal/config"
	"github.com/dossou/afriwiki/internal/lang"
	"github.com/dossou/afriwiki/internal/tonal"
)

var (
	tonesLang     string
	tonesFile     string
	tonesValidate bool
)

var tonesCmd = &cobra.Command{
	Use:   "tones [text]",
	Short: "Apply tone diacritics to text",
	Long: `Run the tonal processor on text for a tonal target language:
lexicon lookup, sandhi rules and diacritic application.

Reads from --file when given, otherwise from the argument.

Example:
  afriwiki tones --lang yor "mo wa ile"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !lang.IsTonal(tonesLang) {
			return fmt.Errorf("%s is not a tonal language", tonesLang)
		}

		var text string
		switch {
		case tonesFile != "":
			raw, err := os.ReadFile(tonesFile)
			if err != nil {
				return fmt.Errorf("failed to read input file: %w", err)
			}
			text = string(raw)
		case len(args) == 1:
			text = args[0]
		default:
			return fmt.Errorf("pass text as an argument or use --file")
		}

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		processor := tonal.NewProcessor(tonal.Config{DataDir: cfg.TonalDataDir})
		if err := processor.Preload(tonesLang); err != nil {
			return fmt.Errorf("failed to load tonal data: %w", err)
		}

		out := processor.ProcessText(text, tonesLang)
		fmt.Println(strings.TrimRight(out, "\n"))

		if tonesValidate {
			for _, d := range processor.ValidateTones(out, tonesLang) {
				fmt.Fprintf(os.Stderr, "warning: %s\n", d)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tonesCmd)

	tonesCmd.Flags().StringVarP(&tonesLang, "lang", "l", "", "Tonal language code (required)")
	tonesCmd.Flags().StringVarP(&tonesFile, "file", "f", "", "Read text from file instead of the argument")
	tonesCmd.Flags().BoolVar(&tonesValidate, "validate", false, "Print tone diagnostics after processing")

	tonesCmd.MarkFlagRequired("lang")
}
