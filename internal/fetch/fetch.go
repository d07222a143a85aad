// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch queries the upstream paper sources and returns raw,
// source-tagged paper records for reconciliation.
//
// Sources run strictly one at a time, in the order given, so the
// combined output is ordered by source priority: the caller lists the
// richest metadata source first and the reconciliation engine keeps the
// first record seen under each identity.
package fetch

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pdiddy/paperwatch/pkg/types"
)

// Source fetches recent papers from one upstream API. Each source
// (arXiv, Semantic Scholar, Hugging Face) implements this interface
// per the Strategy pattern.
type Source interface {
	Name() string
	Fetch(ctx context.Context, cutoff time.Time, cfg types.FetchConfig) ([]*types.PaperRecord, error)
}

// FetchAll queries each source in order and concatenates the results.
// A failing source contributes nothing: the error is reported on w and
// the run continues with the remaining sources.
func FetchAll(ctx context.Context, sources []Source, cutoff time.Time, cfg types.FetchConfig, w io.Writer) []*types.PaperRecord {
	var all []*types.PaperRecord
	for _, src := range sources {
		papers, err := src.Fetch(ctx, cutoff, cfg)
		if err != nil {
			fmt.Fprintf(w, "warning: source %s failed: %v\n", src.Name(), err)
			continue
		}
		fmt.Fprintf(w, "%s: fetched %d papers\n", src.Name(), len(papers))
		all = append(all, papers...)
	}
	return all
}

// collapseSpace flattens newlines and runs of whitespace to single
// spaces; source APIs wrap titles and abstracts at arbitrary columns.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
