// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dedup reconciles paper records gathered from multiple sources
// into a single sequence of unique papers.
//
// Identity is resolved in three layers, checked in order and
// short-circuiting: arXiv ID, then DOI, then normalized title. The ID
// layers are unambiguous; the title layer is heuristic and must never
// override a stronger signal. The first record seen under an identity
// becomes the canonical record; later matches are merged into it.
package dedup

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pdiddy/paperwatch/internal/identity"
	"github.com/pdiddy/paperwatch/pkg/types"
)

// Deduplicate collapses duplicate records in papers, which must be
// ordered by source priority (richest metadata first) so the canonical
// record for each paper comes from the most authoritative source.
// It returns the unique records, preserving first-seen order, and the
// number of duplicates folded in. Progress is reported on w.
//
// Malformed records never fail: a record with no usable identity key
// participates in no layer and survives as its own singleton.
func Deduplicate(papers []*types.PaperRecord, w io.Writer) ([]*types.PaperRecord, int) {
	seenArxiv := make(map[string]int) // normalized arXiv ID → index in result
	seenDOI := make(map[string]int)   // normalized DOI → index in result
	seenTitle := make(map[string]int) // normalized title → index in result
	var result []*types.PaperRecord

	for _, p := range papers {
		arxivID := identity.NormalizeArxivID(p.ID)
		if !arxivEligible(arxivID) {
			arxivID = ""
		}
		if arxivID != "" {
			if idx, ok := seenArxiv[arxivID]; ok {
				merge(result[idx], p)
				continue
			}
		}

		doi := identity.NormalizeDOI(p.DOI)
		if doi != "" {
			if idx, ok := seenDOI[doi]; ok {
				merge(result[idx], p)
				continue
			}
		}

		title := identity.NormalizeTitle(p.Title)
		if len(title) < identity.MinTitleMatchLen {
			title = ""
		}
		if title != "" {
			if idx, ok := seenTitle[title]; ok {
				merge(result[idx], p)
				continue
			}
		}

		idx := len(result)
		result = append(result, p)
		if arxivID != "" {
			seenArxiv[arxivID] = idx
		}
		if doi != "" {
			seenDOI[doi] = idx
		}
		if title != "" {
			seenTitle[title] = idx
		}
	}

	removed := len(papers) - len(result)
	fmt.Fprintf(w, "dedup: %d papers in, %d unique out (%d duplicates removed)\n",
		len(papers), len(result), removed)
	return result, removed
}

// arxivEligible reports whether id may enter the arXiv-ID layer.
// Secondary-source fallback IDs are synthetic and excluded.
func arxivEligible(id string) bool {
	return id != "" && !strings.HasPrefix(id, types.SecondarySourcePrefix)
}

// merge folds dup into the canonical record. Enrichment is strictly
// one-directional: a field already present on the canonical record is
// never overwritten, except where a longer/larger value wins.
func merge(canonical, dup *types.PaperRecord) {
	if len(dup.Abstract) > len(canonical.Abstract) {
		canonical.Abstract = dup.Abstract
	}
	canonical.Source = unionTags(canonical.Source, dup.Source)
	if dup.HFUpvotes > canonical.HFUpvotes {
		canonical.HFUpvotes = dup.HFUpvotes
	}
	if dup.DOI != "" && canonical.DOI == "" {
		canonical.DOI = dup.DOI
	}
	if len(dup.Categories) > 0 && len(canonical.Categories) == 0 {
		canonical.Categories = dup.Categories
	}
}

// unionTags merges two comma-joined tag sets, sorted, empties dropped.
func unionTags(a, b string) string {
	set := make(map[string]bool)
	for _, tag := range strings.Split(a+","+b, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			set[tag] = true
		}
	}
	tags := make([]string, 0, len(set))
	for tag := range set {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return strings.Join(tags, ",")
}
