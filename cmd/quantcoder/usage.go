// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/quantcoder/quantcoder/internal/usage"
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Report recorded LLM token usage and cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		ledger, err := usage.Open(usageConfig())
		if err != nil {
			return err
		}
		defer ledger.Close()
		return ledger.Report(os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(usageCmd)
}
