// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package identity canonicalizes paper identifiers and titles into
// comparable keys for cross-source reconciliation. All functions are
// pure, deterministic, and idempotent; empty input yields empty output.
package identity

import (
	"regexp"
	"strings"
)

// MinTitleMatchLen is the minimum normalized-title length eligible for
// title-based matching. Shorter titles are too generic to identify a
// paper and would produce false merges.
const MinTitleMatchLen = 30

var (
	arxivURLRe   = regexp.MustCompile(`^https?://arxiv\.org/(abs|pdf)/`)
	arxivVerRe   = regexp.MustCompile(`v\d+$`)
	doiURLRe     = regexp.MustCompile(`^https?://(dx\.)?doi\.org/`)
	latexCmdRe   = regexp.MustCompile(`\\[a-zA-Z]+\{([^}]*)\}`)
	latexCtrlRe  = regexp.MustCompile(`[{}$\\]`)
	nonAlnumRe   = regexp.MustCompile(`[^a-z0-9 ]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// NormalizeArxivID strips arXiv abs/pdf URL prefixes and a trailing
// version suffix (v1, v2, ...). It does not otherwise validate the ID.
func NormalizeArxivID(raw string) string {
	if raw == "" {
		return ""
	}
	raw = arxivURLRe.ReplaceAllString(raw, "")
	raw = arxivVerRe.ReplaceAllString(raw, "")
	return strings.TrimSpace(raw)
}

// NormalizeDOI strips resolver URL prefixes, trims, and lowercases.
func NormalizeDOI(raw string) string {
	if raw == "" {
		return ""
	}
	raw = doiURLRe.ReplaceAllString(raw, "")
	return strings.ToLower(strings.TrimSpace(raw))
}

// NormalizeTitle reduces a title to a fuzzy-equality key: LaTeX
// commands collapse to their argument, residual markup characters are
// dropped, and the remainder is lowercased with everything outside
// [a-z0-9 ] removed and whitespace runs collapsed. The result is lossy
// and only suitable for matching, never for display.
func NormalizeTitle(title string) string {
	if title == "" {
		return ""
	}
	title = latexCmdRe.ReplaceAllString(title, "$1")
	title = latexCtrlRe.ReplaceAllString(title, "")
	title = nonAlnumRe.ReplaceAllString(strings.ToLower(title), "")
	title = whitespaceRe.ReplaceAllString(title, " ")
	return strings.TrimSpace(title)
}
