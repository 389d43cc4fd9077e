// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries bibliographic APIs and returns a unified,
// deduplicated article list ready to be saved as a snapshot.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/quantcoder/quantcoder/pkg/types"
)

// ErrUnavailable is returned when no backend could be reached.
var ErrUnavailable = errors.New("article index unavailable")

// Backend searches a single bibliographic API. Each backend (CrossRef,
// OpenAlex) implements this interface per the Strategy pattern.
type Backend interface {
	Name() string
	Search(ctx context.Context, query string, limit int, cfg types.SearchConfig) ([]types.ArticleRecord, error)
}

// Output holds the merged results and per-backend failures.
type Output struct {
	Records       []types.ArticleRecord
	DupsRemoved   int
	BackendErrors []string
}

// Search queries each backend in turn, deduplicates the merged results,
// caps them at limit, and assigns 1-based indices. A failing backend is
// reported as a warning on w; only when every backend fails does Search
// return ErrUnavailable. An empty result set is not an error.
func Search(ctx context.Context, query string, limit int, backends []Backend, cfg types.SearchConfig, w io.Writer) (Output, error) {
	if strings.TrimSpace(query) == "" {
		return Output{}, fmt.Errorf("query is empty")
	}
	if len(backends) == 0 {
		return Output{}, fmt.Errorf("no search backends configured")
	}
	if limit <= 0 {
		limit = cfg.MaxResults
	}
	if limit <= 0 {
		limit = 5
	}

	var all []types.ArticleRecord
	var backendErrors []string
	for i, b := range backends {
		if i > 0 && cfg.InterBackendDelay > 0 {
			select {
			case <-ctx.Done():
				return Output{}, ctx.Err()
			case <-time.After(cfg.InterBackendDelay):
			}
		}
		records, err := b.Search(ctx, query, limit, cfg)
		if err != nil {
			backendErrors = append(backendErrors, fmt.Sprintf("%s: %v", b.Name(), err))
			fmt.Fprintf(w, "warning: backend %s failed: %v\n", b.Name(), err)
			continue
		}
		all = append(all, records...)
	}

	if len(backendErrors) == len(backends) {
		return Output{BackendErrors: backendErrors},
			fmt.Errorf("%w: %s", ErrUnavailable, strings.Join(backendErrors, "; "))
	}

	deduped, removed := deduplicate(all)
	if len(deduped) > limit {
		deduped = deduped[:limit]
	}
	for i := range deduped {
		deduped[i].Index = i + 1
	}

	return Output{
		Records:       deduped,
		DupsRemoved:   removed,
		BackendErrors: backendErrors,
	}, nil
}

// deduplicate merges records that share a DOI or normalized title,
// keeping first-seen field values and filling gaps from later duplicates.
func deduplicate(records []types.ArticleRecord) ([]types.ArticleRecord, int) {
	seen := make(map[string]int) // dedup key → index in deduped
	var deduped []types.ArticleRecord
	removed := 0

	for _, r := range records {
		doiKey := ""
		if r.DOI != "" {
			doiKey = "doi:" + strings.ToLower(r.DOI)
		}
		titleKey := ""
		if t := normalizeTitle(r.Title); t != "" {
			titleKey = "title:" + t
		}

		if idx, ok := lookup(seen, doiKey, titleKey); ok {
			mergeInto(&deduped[idx], r)
			removed++
			continue
		}

		idx := len(deduped)
		deduped = append(deduped, r)
		if doiKey != "" {
			seen[doiKey] = idx
		}
		if titleKey != "" {
			seen[titleKey] = idx
		}
	}
	return deduped, removed
}

func lookup(seen map[string]int, keys ...string) (int, bool) {
	for _, k := range keys {
		if k == "" {
			continue
		}
		if idx, ok := seen[k]; ok {
			return idx, true
		}
	}
	return 0, false
}

// mergeInto fills empty fields of dst from src.
func mergeInto(dst *types.ArticleRecord, src types.ArticleRecord) {
	if dst.Title == "" {
		dst.Title = src.Title
	}
	if len(dst.Authors) == 0 {
		dst.Authors = src.Authors
	}
	if dst.URL == "" {
		dst.URL = src.URL
	}
	if dst.DOI == "" {
		dst.DOI = src.DOI
	}
	if dst.Published == "" {
		dst.Published = src.Published
	}
	if src.Source != "" && dst.Source != src.Source && !strings.Contains(dst.Source, src.Source) {
		dst.Source = dst.Source + "," + src.Source
	}
}

// normalizeTitle returns a lowercased, punctuation-stripped version of the title.
func normalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// FormatTable writes the records as a human-readable listing to w, with
// the same numbering the snapshot stores.
func FormatTable(records []types.ArticleRecord, w io.Writer) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No articles found.")
		return
	}
	for _, r := range records {
		published := ""
		if r.Published != "" {
			published = " (" + r.Published + ")"
		}
		fmt.Fprintf(w, "%d: %s by %s%s\n", r.Index, r.Title, formatAuthors(r.Authors), published)
	}
}

// FormatJSON writes the records as indented JSON to w.
func FormatJSON(records []types.ArticleRecord, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return "unknown"
	case 1:
		return authors[0]
	case 2:
		return authors[0] + " and " + authors[1]
	default:
		return authors[0] + " et al."
	}
}
