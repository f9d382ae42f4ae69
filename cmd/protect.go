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
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dossou/afriwiki/internal/config"
	"github.com/dossou/afriwiki/internal/protect"
)

var protectTarget string

var protectCmd = &cobra.Command{
	Use:   "protect <text>",
	Short: "Show which terms would be protected in a text",
	Long: `Run term detection on a text and print the placeholder each
detected term would receive. Useful for tuning cultural term lists.

Example:
  afriwiki protect --target fon "The vodun ceremony in Dahomey"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		protector, err := protect.New(protect.Config{
			CulturalTerms: protect.MergeCulturalTerms(cfg.CulturalTerms),
		})
		if err != nil {
			return err
		}

		masked, sess := protector.Protect(args[0], protectTarget)

		fmt.Printf("Masked text:\n%s\n\n", masked)
		if sess.Len() == 0 {
			fmt.Println("No terms protected.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PLACEHOLDER\tCATEGORY\tORIGINAL\tCONFIDENCE")
		for _, term := range sess.Terms() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\n",
				term.Placeholder, term.Category, term.Original, term.Confidence)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(protectCmd)

	protectCmd.Flags().StringVarP(&protectTarget, "target", "t", "", "Target language code (required)")

	protectCmd.MarkFlagRequired("target")
}
