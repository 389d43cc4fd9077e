// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quantcoder/quantcoder/internal/search"
	"github.com/quantcoder/quantcoder/internal/store"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the articles from the last search",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := store.New(articlesFile).Load()
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No articles found. Run a search first.")
			return nil
		}
		fmt.Println("Articles:")
		search.FormatTable(records, os.Stdout)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
