// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quantcoder/quantcoder/internal/download"
	"github.com/quantcoder/quantcoder/internal/store"
)

var downloadCmd = &cobra.Command{
	Use:   "download <index>",
	Short: "Download an article's PDF by its list position",
	Long: `Download resolves the article by the number shown in "list", validates
its URL, and downloads the PDF into the downloads directory. A failed
download (paywall, network error) is recoverable: the article URL can be
opened in the browser for manual download instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().Bool("open-on-failure", false, "open the article URL in the browser when the download fails")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid article index %q", args[0])
	}

	article, err := store.New(articlesFile).Get(index)
	if err != nil {
		return err
	}

	cfg := downloadConfig()
	client := &http.Client{Timeout: cfg.Timeout}

	pdf, err := download.Download(cmd.Context(), client, article, cfg, os.Stdout)
	if err == nil {
		fmt.Printf("Article downloaded to %s (%d bytes, via %s)\n", pdf.Path, pdf.Size, pdf.Source)
		return nil
	}

	if errors.Is(err, download.ErrUnsafeURL) {
		return fmt.Errorf("article %d has an unsafe URL, refusing to fetch or open it: %w", index, err)
	}
	if !errors.Is(err, download.ErrDownloadFailed) {
		return err
	}

	fmt.Printf("Failed to download the PDF: %v\n", err)
	openOnFailure, _ := cmd.Flags().GetBool("open-on-failure")
	if !openOnFailure {
		openOnFailure = confirm("Open the article URL in your browser for manual download?")
	}
	if openOnFailure {
		if err := download.OpenInBrowser(article.URL); err != nil {
			return err
		}
		fmt.Println("Opened the article URL in your default browser.")
		return nil
	}
	return err
}

// confirm asks a yes/no question on the terminal, defaulting to yes.
func confirm(question string) bool {
	fmt.Printf("%s [Y/n] ", question)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "" || answer == "y" || answer == "yes"
}
