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
)

var (
	routeSource string
	routeTarget string
)

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Show routing options for a language pair",
	Long: `Evaluate every routing strategy for a language pair and print the
path each would take with its estimated quality.

Example:
  afriwiki route --source en --target fon`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		router, err := buildRouter(cfg)
		if err != nil {
			return err
		}

		fmt.Printf("Direct quality %s -> %s: %.2f\n\n",
			routeSource, routeTarget, router.Quality(routeSource, routeTarget))

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "STRATEGY\tPATH\tQUALITY\tRECOMMENDED")
		for _, rec := range router.Recommendations(routeSource, routeTarget) {
			mark := ""
			if rec.Recommended {
				mark = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\n",
				rec.Strategy, rec.Path.String(), rec.EstimatedQuality, mark)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(routeCmd)

	routeCmd.Flags().StringVarP(&routeSource, "source", "s", "", "Source language code (required)")
	routeCmd.Flags().StringVarP(&routeTarget, "target", "t", "", "Target language code (required)")

	routeCmd.MarkFlagRequired("source")
	routeCmd.MarkFlagRequired("target")
}
