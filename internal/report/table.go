// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/paperwatch/pkg/types"
)

// WriteTable prints a terminal summary of the industry papers.
func WriteTable(industry []*types.PaperRecord, totalCount int, w io.Writer) {
	if len(industry) == 0 {
		fmt.Fprintf(w, "No industry papers found (out of %d total).\n", totalCount)
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-20s  %-10s  %s\n",
		"Rank", "Title", "Company", "Published", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 108))

	for i, p := range industry {
		fmt.Fprintf(w, "%-4d  %-60s  %-20s  %-10s  %s\n",
			i+1, truncate(p.Title, 60), truncate(p.Company, 20), p.Published, p.Source)
	}

	fmt.Fprintf(w, "\n%d industry papers (out of %d total)\n", len(industry), totalCount)
}

// truncate shortens s to max characters, counting runes so multi-byte
// titles are never cut mid-character.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
