// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify annotates reconciled papers with an industry/academia
// label via an external LLM, treated as an unreliable dependency: calls
// run in fixed-size batches under a hard budget, every attempt spends a
// budget unit whether or not it succeeds, and a malformed response
// costs that batch its annotations, never the run.
package classify

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/paperwatch/pkg/types"
)

// Verdict is the annotator's decision for one paper in a batch.
type Verdict struct {
	// PaperIndex refers to a position within the submitted batch.
	PaperIndex int `json:"paper_index"`

	// Relevant gates the classification: nil is treated as relevant,
	// matching an annotator that omits the field.
	Relevant *bool `json:"relevant"`

	Classification string `json:"classification"`
	Company        string `json:"company"`
	Reason         string `json:"reason"`
}

// SummaryItem is one generated summary keyed by batch position.
type SummaryItem struct {
	PaperIndex int    `json:"paper_index"`
	Summary    string `json:"summary"`
}

// Annotator abstracts the LLM API so tests can supply a mock.
type Annotator interface {
	ClassifyBatch(ctx context.Context, papers []*types.PaperRecord) ([]Verdict, error)
	Summarize(ctx context.Context, papers []*types.PaperRecord) ([]SummaryItem, error)
}

// Budget is the shared call counter passed through the classification
// stages. It is the only mutable state the stage carries and is never
// touched concurrently.
type Budget struct {
	used int
	max  int
}

// NewBudget returns a budget allowing max annotation calls.
func NewBudget(max int) *Budget {
	return &Budget{max: max}
}

// Exhausted reports whether no further calls may be attempted.
func (b *Budget) Exhausted() bool { return b.used >= b.max }

// Spend records one attempted call, successful or not.
func (b *Budget) Spend() { b.used++ }

// Used and Max expose the counter for run reporting.
func (b *Budget) Used() int { return b.used }
func (b *Budget) Max() int  { return b.max }

// ClassifyAll annotates papers in contiguous batches of cfg.BatchSize,
// in order, stopping as soon as the budget is exhausted. Batches whose
// call fails are left unannotated and reported on w. After the passes a
// post-pass defaults every unannotated record to "unknown", so no
// record ever leaves this stage unclassified.
func ClassifyAll(ctx context.Context, ann Annotator, papers []*types.PaperRecord, cfg types.ClassifyConfig, budget *Budget, w io.Writer) {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 10
	}

	for start := 0; start < len(papers); start += batchSize {
		if budget.Exhausted() {
			fmt.Fprintf(w, "warning: annotation call budget (%d) reached, %d papers left unclassified\n",
				budget.Max(), len(papers)-start)
			break
		}

		end := start + batchSize
		if end > len(papers) {
			end = len(papers)
		}
		batch := papers[start:end]

		fmt.Fprintf(w, "annotation call %d: classifying papers %d-%d of %d\n",
			budget.Used()+1, start, end-1, len(papers))

		verdicts, err := ann.ClassifyBatch(ctx, batch)
		budget.Spend()
		if err != nil {
			fmt.Fprintf(w, "warning: batch %d-%d failed: %v\n", start, end-1, err)
			continue
		}

		for _, v := range verdicts {
			if v.PaperIndex < 0 || v.PaperIndex >= len(batch) {
				continue
			}
			p := batch[v.PaperIndex]
			if v.Relevant != nil && !*v.Relevant {
				p.Classification = types.ClassIrrelevant
				p.Company = ""
			} else {
				p.Classification = v.Classification
				if p.Classification == "" {
					p.Classification = types.ClassUnknown
				}
				p.Company = v.Company
			}
			p.ClassificationReason = v.Reason
		}
	}

	for _, p := range papers {
		if p.Classification == "" {
			p.Classification = types.ClassUnknown
		}
	}
}

// Summarize generates short summaries for the given papers in a single
// annotation call, capped at cfg.SummaryCap papers. It is skipped
// entirely when the budget is exhausted; a failed call costs one unit
// and leaves the papers without summaries.
func Summarize(ctx context.Context, ann Annotator, papers []*types.PaperRecord, cfg types.ClassifyConfig, budget *Budget, w io.Writer) {
	if len(papers) == 0 || budget.Exhausted() {
		return
	}

	limit := cfg.SummaryCap
	if limit <= 0 {
		limit = 30
	}
	if len(papers) > limit {
		fmt.Fprintf(w, "limiting summary generation to first %d of %d papers\n", limit, len(papers))
		papers = papers[:limit]
	}

	items, err := ann.Summarize(ctx, papers)
	budget.Spend()
	if err != nil {
		fmt.Fprintf(w, "warning: summary generation failed: %v\n", err)
		return
	}

	for _, item := range items {
		if item.PaperIndex < 0 || item.PaperIndex >= len(papers) {
			continue
		}
		papers[item.PaperIndex].Summary = item.Summary
	}
}
