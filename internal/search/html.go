// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/quantcoder/quantcoder/pkg/types"
)

// resultsTmpl renders the search results as a standalone HTML page for
// browsing outside the terminal.
var resultsTmpl = template.Must(template.New("results").Funcs(template.FuncMap{
	"join": func(s []string) string { return strings.Join(s, ", ") },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>quantcoder search results</title>
<style>
body { font-family: sans-serif; margin: 2em; }
li { margin-bottom: 0.8em; }
.authors { color: #555; }
</style>
</head>
<body>
<h1>Search results</h1>
<ol>
{{range .}}<li>
<a href="{{.URL}}">{{.Title}}</a>{{if .Published}} ({{.Published}}){{end}}<br>
<span class="authors">{{join .Authors}}</span>{{if .DOI}} &mdash; doi:{{.DOI}}{{end}}
</li>
{{end}}</ol>
</body>
</html>
`))

// WriteHTML renders the records to an HTML file at path.
func WriteHTML(records []types.ArticleRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := resultsTmpl.Execute(f, records); err != nil {
		return fmt.Errorf("rendering results HTML: %w", err)
	}
	return nil
}
