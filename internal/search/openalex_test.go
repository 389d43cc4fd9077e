// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/quantcoder/quantcoder/pkg/types"
)

const sampleOpenAlexJSON = `{
  "results": [
    {
      "id": "https://openalex.org/W100",
      "title": "Betting Against Beta",
      "doi": "https://doi.org/10.1016/j.jfineco.2013.10.005",
      "publication_year": 2014,
      "authorships": [
        {"author": {"display_name": "Andrea Frazzini"}},
        {"author": {"display_name": "Lasse Pedersen"}}
      ],
      "open_access": {"is_oa": true, "oa_url": "https://example.org/bab.pdf"}
    },
    {
      "id": "https://openalex.org/W200",
      "title": "Closed Access Paper",
      "doi": "https://doi.org/10.5555/closed",
      "publication_year": 2021,
      "authorships": [],
      "open_access": {"is_oa": false, "oa_url": ""}
    },
    {
      "id": "https://openalex.org/W300",
      "title": "No Identifiers At All",
      "publication_year": 0,
      "open_access": {"is_oa": false}
    }
  ]
}`

func TestOpenAlexSearch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("search"); got != "beta" {
			t.Errorf("search param = %q, want %q", got, "beta")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleOpenAlexJSON))
	}))
	defer ts.Close()

	old := openAlexSearchBase
	openAlexSearchBase = ts.URL
	defer func() { openAlexSearchBase = old }()

	b := &OpenAlexBackend{Client: ts.Client()}
	records, err := b.Search(context.Background(), "beta", 5, types.SearchConfig{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Search() = %d records, want 3", len(records))
	}

	// Open-access URL wins over the DOI resolver.
	if records[0].URL != "https://example.org/bab.pdf" {
		t.Errorf("OA record URL = %q", records[0].URL)
	}
	if records[0].DOI != "10.1016/j.jfineco.2013.10.005" {
		t.Errorf("DOI = %q, want resolver prefix stripped", records[0].DOI)
	}
	if len(records[0].Authors) != 2 {
		t.Errorf("authors = %v", records[0].Authors)
	}

	// Closed access falls back to the DOI resolver.
	if records[1].URL != "https://doi.org/10.5555/closed" {
		t.Errorf("closed record URL = %q", records[1].URL)
	}

	// Nothing else available falls back to the OpenAlex work ID.
	if records[2].URL != "https://openalex.org/W300" {
		t.Errorf("bare record URL = %q", records[2].URL)
	}
	if records[2].Published != "" {
		t.Errorf("published = %q, want empty for year 0", records[2].Published)
	}
}
