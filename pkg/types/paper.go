// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paperwatch pipeline.
package types

// Classification labels assigned by the annotation stage.
const (
	ClassIndustry   = "industry"
	ClassAcademia   = "academia"
	ClassUnknown    = "unknown"
	ClassIrrelevant = "irrelevant"
)

// SecondarySourcePrefix marks identifiers that are internal to the
// Semantic Scholar corpus rather than arXiv-native. Records carrying
// such an ID never participate in arXiv-ID matching.
const SecondarySourcePrefix = "s2:"

// PaperRecord is one paper's metadata as assembled from the source
// fetchers and enriched by later pipeline stages. Fields absent from a
// given source are left at their zero value.
type PaperRecord struct {
	// ID is the source-native identifier: an arXiv ID (with or without
	// version suffix) or a SecondarySourcePrefix-marked fallback.
	ID string `json:"id" yaml:"id"`

	// DOI is the cross-publisher identifier, when the source supplies one.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Title is the paper title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is the paper abstract or summary.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Categories holds subject tags; empty for sources that omit them.
	Categories []string `json:"categories" yaml:"categories"`

	// Published is the publication date as YYYY-MM-DD.
	Published string `json:"published" yaml:"published"`

	// URL is the abstract page; PDFURL the full-text link.
	URL    string `json:"url" yaml:"url"`
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`

	// Comment carries source free text (arXiv comments, S2 venue).
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`

	// Source is a comma-joined set of contributing source tags
	// (e.g. "arxiv,s2"); the reconciliation engine unions it on merge.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// HFUpvotes is the Hugging Face trending-feed popularity count.
	HFUpvotes int `json:"hf_upvotes,omitempty" yaml:"hf_upvotes,omitempty"`

	// Fields below are populated by the annotation stage and remain
	// empty until it runs.
	Classification       string `json:"classification,omitempty" yaml:"classification,omitempty"`
	Company              string `json:"company,omitempty" yaml:"company,omitempty"`
	ClassificationReason string `json:"classification_reason,omitempty" yaml:"classification_reason,omitempty"`
	Summary              string `json:"summary,omitempty" yaml:"summary,omitempty"`
}
