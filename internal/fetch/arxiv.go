// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/paperwatch/internal/httputil"
	"github.com/pdiddy/paperwatch/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// ArxivSource queries the arXiv Atom API, one configured query at a
// time, newest submissions first.
type ArxivSource struct {
	Client  *http.Client
	Limiter *rate.Limiter
}

// Name returns the source identifier.
func (s *ArxivSource) Name() string { return "arxiv" }

// Fetch runs every configured query and returns papers submitted at or
// after cutoff. Results are sorted by submission date descending, so
// each query stops at the first entry older than the cutoff. Papers
// already seen under an earlier query are skipped. A failing query is
// skipped with only its contribution lost; the remaining queries still
// run.
func (s *ArxivSource) Fetch(ctx context.Context, cutoff time.Time, cfg types.FetchConfig) ([]*types.PaperRecord, error) {
	maxResults := cfg.MaxResultsPerQuery
	if maxResults <= 0 {
		maxResults = 100
	}

	seen := make(map[string]bool)
	var papers []*types.PaperRecord
	var lastErr error
	failed := 0

	for _, query := range cfg.ArxivQueries {
		if s.Limiter != nil {
			if err := s.Limiter.Wait(ctx); err != nil {
				return papers, fmt.Errorf("rate limiter: %w", err)
			}
		}

		entries, err := s.runQuery(ctx, query, maxResults, cfg)
		if err != nil {
			failed++
			lastErr = fmt.Errorf("query %q: %w", query, err)
			continue
		}

		for _, entry := range entries {
			id := arxivEntryID(entry.ID)
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true

			published, err := time.Parse(time.RFC3339, entry.Published)
			if err != nil {
				continue
			}
			// Sorted descending by submission date: everything after
			// this entry is older still.
			if published.Before(cutoff) {
				break
			}

			p := &types.PaperRecord{
				ID:        id,
				Title:     collapseSpace(entry.Title),
				Abstract:  collapseSpace(entry.Summary),
				Published: published.Format("2006-01-02"),
				URL:       "https://arxiv.org/abs/" + id,
				PDFURL:    "https://arxiv.org/pdf/" + id,
				Comment:   collapseSpace(entry.Comment),
				Source:    "arxiv",
			}
			for _, a := range entry.Authors {
				p.Authors = append(p.Authors, strings.TrimSpace(a.Name))
			}
			for _, c := range entry.Categories {
				p.Categories = append(p.Categories, c.Term)
			}
			papers = append(papers, p)
		}
	}

	// All queries failing means the source failed; partial failure is
	// tolerated and already reflected in the thinner result.
	if failed == len(cfg.ArxivQueries) && failed > 0 {
		return papers, lastErr
	}
	return papers, nil
}

// runQuery issues a single search query and decodes the Atom feed.
func (s *ArxivSource) runQuery(ctx context.Context, query string, maxResults int, cfg types.FetchConfig) ([]arxivEntry, error) {
	reqURL := fmt.Sprintf("%s?search_query=%s&start=0&max_results=%d&sortBy=submittedDate&sortOrder=descending",
		arxivAPIBase, url.QueryEscape(query), maxResults)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, s.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}
	return feed.Entries, nil
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID         string          `xml:"id"`
	Title      string          `xml:"title"`
	Summary    string          `xml:"summary"`
	Published  string          `xml:"published"`
	Comment    string          `xml:"comment"`
	Authors    []arxivAuthor   `xml:"author"`
	Categories []arxivCategory `xml:"category"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

type arxivCategory struct {
	Term string `xml:"term,attr"`
}

// arxivEntryID pulls the paper ID from the entry's <id> URL, keeping
// any version suffix (e.g. "http://arxiv.org/abs/2301.07041v1" →
// "2301.07041v1"). The reconciliation layer normalizes versions away.
func arxivEntryID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	return idURL[idx+len(prefix):]
}
