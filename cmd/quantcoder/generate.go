// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quantcoder/quantcoder/internal/store"
)

var generateCmd = &cobra.Command{
	Use:     "generate <index>",
	Aliases: []string{"generate-code"},
	Short:   "Generate QuantConnect algorithm code from a downloaded article",
	Long: `Generate runs the full pipeline tail for a previously downloaded PDF:
text extraction, the strategy-extraction agent, the code-generation
agent, and the bounded validate-and-refine loop. The resulting Python
algorithm is written under the generated/ directory. Code that is still
syntactically invalid after the refine cap is written anyway, with a
warning.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid article index %q", args[0])
		}

		st := store.New(articlesFile)
		article, err := st.Get(index)
		if err != nil {
			return err
		}

		recorder, closeLedger := openLedger()
		defer closeLedger()

		ctx := cmd.Context()
		summary, err := extractSummary(ctx, pdfPathFor(index), recorder)
		if err != nil {
			return err
		}
		fmt.Printf("Extracted %d signal(s) and %d risk rule(s) from %q\n",
			len(summary.Signals), len(summary.RiskRules), article.Title)

		outPath := filepath.Join(generationConfig().OutputDir, fmt.Sprintf("algorithm_%d.py", index))
		return generateFromSummary(ctx, summary, outPath, recorder)
	},
}

var processCmd = &cobra.Command{
	Use:   "process <pdf-path>",
	Short: "Generate algorithm code directly from a local PDF",
	Long: `Process runs the same pipeline as generate but starts from an arbitrary
PDF on disk, bypassing the search and download stages.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pdfPath := args[0]

		recorder, closeLedger := openLedger()
		defer closeLedger()

		ctx := cmd.Context()
		summary, err := extractSummary(ctx, pdfPath, recorder)
		if err != nil {
			return err
		}
		fmt.Printf("Extracted %d signal(s) and %d risk rule(s)\n",
			len(summary.Signals), len(summary.RiskRules))

		stem := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
		outPath := filepath.Join(generationConfig().OutputDir, stem+".py")
		return generateFromSummary(ctx, summary, outPath, recorder)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(processCmd)
}
