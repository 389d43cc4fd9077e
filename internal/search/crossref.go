// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/quantcoder/quantcoder/pkg/types"
)

// crossRefSearchBase is the CrossRef Works search endpoint. Declared as
// a var so tests can substitute an httptest server.
var crossRefSearchBase = "https://api.crossref.org/works"

// CrossRefBackend queries the CrossRef REST API.
type CrossRefBackend struct {
	Client *http.Client
}

// Name returns the backend identifier.
func (b *CrossRefBackend) Name() string { return "crossref" }

// Search queries CrossRef and returns article records in relevance order.
func (b *CrossRefBackend) Search(ctx context.Context, query string, limit int, cfg types.SearchConfig) ([]types.ArticleRecord, error) {
	if limit <= 0 {
		limit = 5
	}
	if limit > 100 {
		limit = 100
	}

	params := url.Values{
		"query": {query},
		"rows":  {fmt.Sprintf("%d", limit)},
	}
	if cfg.MailTo != "" {
		params.Set("mailto", cfg.MailTo)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, crossRefSearchBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := b.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("CrossRef API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("CrossRef API returned HTTP %d", resp.StatusCode)
	}

	var cr crossRefResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("parsing CrossRef response: %w", err)
	}

	var records []types.ArticleRecord
	for _, item := range cr.Message.Items {
		r := types.ArticleRecord{
			URL:    item.URL,
			DOI:    item.DOI,
			Source: "crossref",
		}
		if len(item.Title) > 0 {
			r.Title = strings.TrimSpace(item.Title[0])
		}
		if r.Title == "" {
			continue
		}
		for _, a := range item.Author {
			name := strings.TrimSpace(a.Given + " " + a.Family)
			if name != "" {
				r.Authors = append(r.Authors, name)
			}
		}
		if year := firstDatePart(item.Issued); year > 0 {
			r.Published = fmt.Sprintf("%d", year)
		}
		// CrossRef's URL field is the DOI resolver; keep it even when
		// the DOI is also set so download has a fetchable target.
		if r.URL == "" && r.DOI != "" {
			r.URL = "https://doi.org/" + r.DOI
		}
		records = append(records, r)
	}
	return records, nil
}

// CrossRef API JSON structures.
type crossRefResponse struct {
	Message crossRefMessage `json:"message"`
}

type crossRefMessage struct {
	Items []crossRefItem `json:"items"`
}

type crossRefItem struct {
	Title  []string         `json:"title"`
	Author []crossRefAuthor `json:"author"`
	DOI    string           `json:"DOI"`
	URL    string           `json:"URL"`
	Issued crossRefDate     `json:"issued"`
}

type crossRefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

type crossRefDate struct {
	DateParts [][]int `json:"date-parts"`
}

// firstDatePart returns the year from a CrossRef date, or 0.
func firstDatePart(d crossRefDate) int {
	if len(d.DateParts) > 0 && len(d.DateParts[0]) > 0 {
		return d.DateParts[0][0]
	}
	return 0
}
