// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/paperwatch/internal/httputil"
	"github.com/pdiddy/paperwatch/pkg/types"
)

// semanticAPIBase is the Semantic Scholar paper search endpoint.
// Declared as a var so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1/paper/search"

const semanticFields = "title,abstract,authors,externalIds,publicationDate,url,venue,openAccessPdf"

// SemanticScholarSource queries the Semantic Scholar graph API, one
// configured query at a time, restricted to papers published since the
// cutoff.
type SemanticScholarSource struct {
	Client  *http.Client
	APIKey  string
	Limiter *rate.Limiter
}

// Name returns the source identifier.
func (s *SemanticScholarSource) Name() string { return "s2" }

// Fetch runs every configured query. A failing query is skipped with
// only its contribution lost; the remaining queries still run.
func (s *SemanticScholarSource) Fetch(ctx context.Context, cutoff time.Time, cfg types.FetchConfig) ([]*types.PaperRecord, error) {
	maxResults := cfg.MaxResultsPerQuery
	if maxResults <= 0 {
		maxResults = 100
	}

	seen := make(map[string]bool)
	var papers []*types.PaperRecord
	var lastErr error
	failed := 0

	for _, query := range cfg.SemanticQueries {
		if s.Limiter != nil {
			if err := s.Limiter.Wait(ctx); err != nil {
				return papers, fmt.Errorf("rate limiter: %w", err)
			}
		}

		items, err := s.runQuery(ctx, query, cutoff, maxResults, cfg)
		if err != nil {
			failed++
			lastErr = fmt.Errorf("query %q: %w", query, err)
			continue
		}

		for _, item := range items {
			if item.PaperID == "" || seen[item.PaperID] {
				continue
			}
			seen[item.PaperID] = true

			title := collapseSpace(item.Title)
			if title == "" {
				continue
			}

			p := &types.PaperRecord{
				Title:     title,
				Abstract:  collapseSpace(item.Abstract),
				Published: item.PublicationDate,
				Comment:   item.Venue,
				DOI:       item.ExternalIDs.DOI,
				Source:    "s2",
			}

			// Prefer the arXiv identity; fall back to a marked
			// corpus-internal ID that never enters arXiv-ID matching.
			if item.ExternalIDs.ArXiv != "" {
				p.ID = item.ExternalIDs.ArXiv
				p.URL = "https://arxiv.org/abs/" + item.ExternalIDs.ArXiv
				p.PDFURL = "https://arxiv.org/pdf/" + item.ExternalIDs.ArXiv
			} else {
				p.ID = types.SecondarySourcePrefix + item.PaperID
				p.URL = item.URL
				if p.URL == "" {
					p.URL = "https://www.semanticscholar.org/paper/" + item.PaperID
				}
				p.PDFURL = item.OpenAccessPDF.URL
				if p.PDFURL == "" {
					p.PDFURL = p.URL
				}
			}

			for _, a := range item.Authors {
				p.Authors = append(p.Authors, a.Name)
			}
			papers = append(papers, p)
		}
	}

	// All queries failing means the source failed; partial failure is
	// tolerated and already reflected in the thinner result.
	if failed == len(cfg.SemanticQueries) && failed > 0 {
		return papers, lastErr
	}
	return papers, nil
}

// runQuery issues a single search query and decodes the response.
func (s *SemanticScholarSource) runQuery(ctx context.Context, query string, cutoff time.Time, maxResults int, cfg types.FetchConfig) ([]semanticPaper, error) {
	params := url.Values{
		"query":                 {query},
		"limit":                 {fmt.Sprintf("%d", maxResults)},
		"fields":                {semanticFields},
		"publicationDateOrYear": {cutoff.Format("2006-01-02") + ":"},
		"fieldsOfStudy":         {"Computer Science"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, semanticAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	if s.APIKey != "" {
		req.Header.Set("x-api-key", s.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, s.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Semantic Scholar API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Semantic Scholar API returned HTTP %d", resp.StatusCode)
	}

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing Semantic Scholar response: %w", err)
	}
	return sr.Data, nil
}

// Semantic Scholar API JSON structures.
type semanticResponse struct {
	Total  int             `json:"total"`
	Offset int             `json:"offset"`
	Data   []semanticPaper `json:"data"`
}

type semanticPaper struct {
	PaperID         string              `json:"paperId"`
	Title           string              `json:"title"`
	Abstract        string              `json:"abstract"`
	PublicationDate string              `json:"publicationDate"`
	URL             string              `json:"url"`
	Venue           string              `json:"venue"`
	Authors         []semanticAuthor    `json:"authors"`
	ExternalIDs     semanticExternalIDs `json:"externalIds"`
	OpenAccessPDF   semanticOpenAccess  `json:"openAccessPdf"`
}

type semanticAuthor struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}

type semanticExternalIDs struct {
	DOI   string `json:"DOI"`
	ArXiv string `json:"ArXiv"`
}

type semanticOpenAccess struct {
	URL string `json:"url"`
}
