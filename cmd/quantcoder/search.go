// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/quantcoder/quantcoder/internal/search"
	"github.com/quantcoder/quantcoder/internal/store"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the article index for candidate papers",
	Long: `Search queries bibliographic APIs (CrossRef, optionally OpenAlex) for
papers matching the query, saves the results as the current article
snapshot, and prints them. Each search overwrites the previous snapshot;
article numbers shown here are the handles download and generate use.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("num", 5, "number of results to return")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().String("html", "", "also write results to an HTML file")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	num, _ := cmd.Flags().GetInt("num")
	asJSON, _ := cmd.Flags().GetBool("json")
	htmlPath, _ := cmd.Flags().GetString("html")

	cfg := searchConfig()
	client := &http.Client{Timeout: cfg.Timeout}

	var backends []search.Backend
	if cfg.EnableCrossRef {
		backends = append(backends, &search.CrossRefBackend{Client: client})
	}
	if cfg.EnableOpenAlex {
		backends = append(backends, &search.OpenAlexBackend{Client: client})
	}

	out, err := search.Search(cmd.Context(), args[0], num, backends, cfg, os.Stderr)
	if err != nil {
		return err
	}

	if err := store.New(articlesFile).Save(out.Records); err != nil {
		return fmt.Errorf("saving article snapshot: %w", err)
	}

	if len(out.Records) == 0 {
		fmt.Println("No articles found.")
		return nil
	}

	fmt.Printf("Found %d article(s):\n", len(out.Records))
	if asJSON {
		if err := search.FormatJSON(out.Records, os.Stdout); err != nil {
			return err
		}
	} else {
		search.FormatTable(out.Records, os.Stdout)
	}

	if htmlPath != "" {
		if err := search.WriteHTML(out.Records, htmlPath); err != nil {
			return err
		}
		fmt.Printf("Results written to %s\n", htmlPath)
	}
	return nil
}
