// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the records and per-stage configuration shared
// across the quantcoder pipeline.
package types

// ArticleRecord is one entry in the article snapshot produced by a
// search. Index is the 1-based list position and is the only handle
// other commands use to reference the article; indices are stable
// within one snapshot and re-assigned wholesale by the next search.
type ArticleRecord struct {
	// Index is the 1-based position in the snapshot.
	Index int `json:"index" yaml:"index"`

	// Title is the article title.
	Title string `json:"title" yaml:"title"`

	// Authors lists the article authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// URL is the landing-page or full-text URL reported by the index.
	URL string `json:"url" yaml:"url"`

	// DOI is the bare DOI (no https://doi.org/ prefix), when known.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Published is the publication year or date string, when known.
	Published string `json:"published,omitempty" yaml:"published,omitempty"`

	// Source identifies which backend returned the record (e.g. "crossref").
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
}

// DownloadedPDF records where an article's PDF landed on disk.
type DownloadedPDF struct {
	// ArticleIndex is the snapshot index of the source article.
	ArticleIndex int `json:"article_index" yaml:"article_index"`

	// Path is the local filesystem path to the PDF.
	Path string `json:"path" yaml:"path"`

	// Size is the downloaded byte count.
	Size int64 `json:"size" yaml:"size"`

	// Source identifies how the PDF was obtained: "direct" or "unpaywall".
	Source string `json:"source" yaml:"source"`
}
