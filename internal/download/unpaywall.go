// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package download

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/quantcoder/quantcoder/pkg/types"
)

// unpaywallAPIBase is the Unpaywall DOI lookup endpoint. Declared as a
// var so tests can substitute an httptest server.
var unpaywallAPIBase = "https://api.unpaywall.org/v2/"

// Unpaywall API JSON structures.
type unpaywallResponse struct {
	IsOA           bool               `json:"is_oa"`
	BestOALocation *unpaywallLocation `json:"best_oa_location"`
}

type unpaywallLocation struct {
	URLForPDF string `json:"url_for_pdf"`
}

// resolveUnpaywall asks Unpaywall for an open-access PDF URL for the
// DOI. An empty string with nil error means no open-access copy exists.
func resolveUnpaywall(ctx context.Context, client *http.Client, doi string, cfg types.DownloadConfig) (string, error) {
	params := url.Values{"email": {cfg.UnpaywallEmail}}
	reqURL := unpaywallAPIBase + url.PathEscape(doi) + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("Unpaywall API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Unpaywall API returned HTTP %d", resp.StatusCode)
	}

	var ur unpaywallResponse
	if err := json.NewDecoder(resp.Body).Decode(&ur); err != nil {
		return "", fmt.Errorf("parsing Unpaywall response: %w", err)
	}

	if !ur.IsOA || ur.BestOALocation == nil {
		return "", nil
	}
	return ur.BestOALocation.URLForPDF, nil
}
