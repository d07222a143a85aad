// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/paperwatch/internal/httputil"
	"github.com/pdiddy/paperwatch/pkg/types"
)

// hfAPIBase is the Hugging Face daily-papers endpoint. Declared as a
// var so tests can substitute an httptest server.
var hfAPIBase = "https://huggingface.co/api/daily_papers"

// HuggingFaceSource fetches the Hugging Face daily-papers trending
// feed. The feed covers only the current day, so the run cutoff does
// not apply; a keyword filter keeps the feed on topic instead.
type HuggingFaceSource struct {
	Client *http.Client
}

// Name returns the source identifier.
func (s *HuggingFaceSource) Name() string { return "hf" }

// Fetch returns today's trending papers whose title or abstract
// matches a configured keyword. Upvote counts carry through so the
// reconciliation merge can keep the popularity signal.
func (s *HuggingFaceSource) Fetch(ctx context.Context, _ time.Time, cfg types.FetchConfig) ([]*types.PaperRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, hfAPIBase, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, s.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("daily papers request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("daily papers returned HTTP %d", resp.StatusCode)
	}

	var entries []hfEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("parsing daily papers response: %w", err)
	}

	seen := make(map[string]bool)
	var papers []*types.PaperRecord

	for _, entry := range entries {
		id := entry.Paper.ID
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true

		title := collapseSpace(entry.Paper.Title)
		abstract := collapseSpace(entry.Paper.Summary)
		if title == "" || !matchesKeywords(title, abstract, cfg.HFKeywords) {
			continue
		}

		upvotes := entry.Paper.Upvotes
		if upvotes == 0 {
			upvotes = entry.NumUpvotes
		}

		p := &types.PaperRecord{
			ID:        id,
			Title:     title,
			Abstract:  abstract,
			Published: published(entry.Paper.PublishedAt),
			URL:       "https://arxiv.org/abs/" + id,
			PDFURL:    "https://arxiv.org/pdf/" + id,
			Source:    "hf",
			HFUpvotes: upvotes,
		}
		for _, a := range entry.Paper.Authors {
			p.Authors = append(p.Authors, a.Name)
		}
		papers = append(papers, p)
	}
	return papers, nil
}

// matchesKeywords reports whether any keyword appears in the title or
// abstract, case-insensitively. An empty keyword list matches nothing:
// the trending feed is broad and an unfiltered pull would swamp the
// digest with off-topic papers.
func matchesKeywords(title, abstract string, keywords []string) bool {
	text := strings.ToLower(title + " " + abstract)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// published trims an RFC 3339 timestamp to its date part.
func published(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}

// Hugging Face daily-papers JSON structures.
type hfEntry struct {
	Paper      hfPaper `json:"paper"`
	NumUpvotes int     `json:"numUpvotes"`
}

type hfPaper struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary"`
	PublishedAt string     `json:"publishedAt"`
	Upvotes     int        `json:"upvotes"`
	Authors     []hfAuthor `json:"authors"`
}

type hfAuthor struct {
	Name string `json:"name"`
}
