// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package download fetches article PDFs and guards every outbound URL.
package download

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/quantcoder/quantcoder/pkg/types"
)

var (
	// ErrUnsafeURL is returned for empty, malformed, or non-http(s)
	// URLs. No network or browser action is taken for such URLs.
	ErrUnsafeURL = errors.New("unsafe URL")

	// ErrDownloadFailed is returned on non-2xx responses, network
	// errors, or when no PDF could be located. Recoverable: the caller
	// may offer a manual browser open instead.
	ErrDownloadFailed = errors.New("download failed")
)

// pdfMagic is the PDF file signature.
var pdfMagic = []byte("%PDF")

// ValidateURL rejects any URL that is not a well-formed http or https
// URL with a host. It must pass before any network call or browser open.
func ValidateURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("%w: empty URL", ErrUnsafeURL)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsafeURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme %q not allowed", ErrUnsafeURL, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", ErrUnsafeURL)
	}
	return nil
}

// Download validates the article URL, fetches its PDF into
// cfg.DownloadsDir, and returns the file record. When the direct fetch
// does not yield a PDF and the article has a DOI, it falls back to the
// Unpaywall open-access lookup before giving up with ErrDownloadFailed.
func Download(ctx context.Context, client *http.Client, article types.ArticleRecord, cfg types.DownloadConfig, w io.Writer) (types.DownloadedPDF, error) {
	if err := ValidateURL(article.URL); err != nil {
		return types.DownloadedPDF{}, err
	}

	if err := os.MkdirAll(cfg.DownloadsDir, 0o755); err != nil {
		return types.DownloadedPDF{}, fmt.Errorf("creating downloads directory: %w", err)
	}
	destPath := filepath.Join(cfg.DownloadsDir, fmt.Sprintf("article_%d.pdf", article.Index))

	fmt.Fprintf(w, "downloading: article %d (%s)\n", article.Index, article.URL)

	size, err := fetchPDF(ctx, client, article.URL, destPath, cfg)
	if err == nil {
		return types.DownloadedPDF{ArticleIndex: article.Index, Path: destPath, Size: size, Source: "direct"}, nil
	}
	directErr := err

	if article.DOI != "" && cfg.UnpaywallEmail != "" {
		log.Debug().Str("doi", article.DOI).Msg("direct download failed, trying Unpaywall")
		oaURL, oaErr := resolveUnpaywall(ctx, client, article.DOI, cfg)
		if oaErr == nil && oaURL != "" {
			if vErr := ValidateURL(oaURL); vErr == nil {
				size, err = fetchPDF(ctx, client, oaURL, destPath, cfg)
				if err == nil {
					return types.DownloadedPDF{ArticleIndex: article.Index, Path: destPath, Size: size, Source: "unpaywall"}, nil
				}
			}
		}
	}

	return types.DownloadedPDF{}, fmt.Errorf("%w: %v", ErrDownloadFailed, directErr)
}

// fetchPDF downloads url to destPath using a temporary file and rename.
// A response that is not a PDF (by Content-Type and magic bytes) is an
// error: landing pages and paywalls answer 200 with HTML.
func fetchPDF(ctx context.Context, client *http.Client, rawURL, destPath string, cfg types.DownloadConfig) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("HTTP %d from %s", resp.StatusCode, rawURL)
	}

	head := make([]byte, 4)
	n, _ := io.ReadFull(resp.Body, head)
	isPDF := strings.Contains(resp.Header.Get("Content-Type"), "application/pdf") ||
		bytes.Equal(head[:n], pdfMagic)
	if !isPDF {
		return 0, fmt.Errorf("response from %s is not a PDF", rawURL)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".download-*.tmp")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	written, copyErr := io.Copy(tmpFile, io.MultiReader(bytes.NewReader(head[:n]), resp.Body))
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("renaming temp file: %w", err)
	}
	return written, nil
}
