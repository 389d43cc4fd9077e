// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/quantcoder/quantcoder/internal/download"
	"github.com/quantcoder/quantcoder/internal/store"
)

var openCmd = &cobra.Command{
	Use:   "open <index>",
	Short: "Open an article's webpage in the default browser",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid article index %q", args[0])
		}
		article, err := store.New(articlesFile).Get(index)
		if err != nil {
			return err
		}
		if err := download.OpenInBrowser(article.URL); err != nil {
			return err
		}
		fmt.Printf("Opened article URL: %s\n", article.URL)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
