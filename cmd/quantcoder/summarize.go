// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/quantcoder/quantcoder/internal/store"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <index>",
	Short: "Extract the trading strategy from a downloaded article",
	Long: `Summarize runs text extraction and the strategy-extraction agent on a
previously downloaded PDF and writes the summary next to it, as plain
text plus a YAML sidecar. The article must have been downloaded first.`,
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

		summary, err := extractSummary(cmd.Context(), pdfPathFor(index), recorder)
		if err != nil {
			return err
		}

		txtPath := filepath.Join(downloadConfig().DownloadsDir, fmt.Sprintf("article_%d_summary.txt", index))
		if err := writeSummary(summary, txtPath); err != nil {
			return err
		}

		fmt.Printf("Summary for %q written to %s\n", article.Title, txtPath)
		fmt.Printf("  %d signal(s), %d risk rule(s)\n", len(summary.Signals), len(summary.RiskRules))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
}
