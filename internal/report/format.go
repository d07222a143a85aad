// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders the industry-paper digest and delivers it:
// HTML for email, YAML for the local archive, a table for the terminal.
package report

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/pdiddy/paperwatch/pkg/types"
)

// digestTmpl is the HTML email body. All paper fields pass through
// html/template's contextual escaping, so source-controlled strings
// can't inject markup.
var digestTmpl = template.Must(template.New("digest").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="margin: 0; padding: 0; background: #f3f4f6; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;">
<table width="100%" cellpadding="0" cellspacing="0" style="background: #f3f4f6; padding: 24px 0;">
<tr><td align="center">
<table width="600" cellpadding="0" cellspacing="0" style="background: #ffffff; border-radius: 12px; overflow: hidden;">

  <tr>
    <td style="background: linear-gradient(135deg, #4f46e5, #7c3aed); padding: 28px 24px; text-align: center;">
      <div style="color: #ffffff; font-size: 22px; font-weight: 700;">RecSys &amp; LLM Industry Papers</div>
      <div style="color: #c4b5fd; font-size: 14px; margin-top: 4px;">{{.Today}} &middot; Since {{.Since}}</div>
    </td>
  </tr>

  <tr>
    <td style="padding: 14px 20px; background: #fafafa; border-bottom: 1px solid #e5e7eb;">
      <table width="100%"><tr>
        <td style="color: #6b7280; font-size: 13px;"><strong style="color: #111827; font-size: 20px;">{{.IndustryCount}}</strong> industry papers</td>
        <td style="color: #6b7280; font-size: 13px; text-align: right;">out of <strong>{{.TotalCount}}</strong> total papers</td>
      </tr></table>
    </td>
  </tr>

{{if .Papers}}{{range .Papers}}  <tr>
    <td style="padding: 16px 20px; border-bottom: 1px solid #e5e7eb;">
      <div style="margin-bottom: 6px;">
        <span style="background: #dbeafe; color: #1e40af; font-size: 11px; padding: 2px 8px; border-radius: 10px; font-weight: 600;">#{{.Rank}}</span>
{{if .Company}}        <span style="background: #fef3c7; color: #92400e; font-size: 11px; padding: 2px 8px; border-radius: 10px; margin-left: 4px; font-weight: 600;">{{.Company}}</span>
{{end}}      </div>
      <a href="{{.URL}}" style="color: #1d4ed8; text-decoration: none; font-size: 16px; font-weight: 600; line-height: 1.4;">{{.Title}}</a>
      <div style="color: #6b7280; font-size: 13px; margin-top: 4px;">{{.Authors}}</div>
      <div style="color: #9ca3af; font-size: 12px; margin-top: 2px;">{{.Published}} &middot; {{.Categories}}</div>
{{if .Summary}}      <div style="color: #374151; font-size: 14px; margin-top: 8px; line-height: 1.5;">{{.Summary}}</div>
{{end}}      <div style="margin-top: 8px;">
        <a href="{{.URL}}" style="color: #6366f1; font-size: 12px; text-decoration: none; margin-right: 12px;">Abstract</a>
        <a href="{{.PDFURL}}" style="color: #6366f1; font-size: 12px; text-decoration: none;">PDF</a>
      </div>
    </td>
  </tr>
{{end}}{{else}}  <tr>
    <td style="padding: 32px 20px; text-align: center; color: #9ca3af;">No industry papers found in this period.</td>
  </tr>
{{end}}
  <tr>
    <td style="padding: 20px; text-align: center; color: #9ca3af; font-size: 12px; border-top: 1px solid #e5e7eb;">
      Generated by paperwatch &middot;
      <a href="https://arxiv.org/list/cs.IR/recent" style="color: #6366f1; text-decoration: none;">Browse cs.IR</a> &middot;
      <a href="https://arxiv.org/list/cs.CL/recent" style="color: #6366f1; text-decoration: none;">Browse cs.CL</a>
    </td>
  </tr>

</table>
</td></tr></table>
</body>
</html>
`))

type digestData struct {
	Today         string
	Since         string
	IndustryCount int
	TotalCount    int
	Papers        []digestPaper
}

type digestPaper struct {
	Rank       int
	Title      string
	URL        string
	PDFURL     string
	Authors    string
	Published  string
	Categories string
	Company    string
	Summary    string
}

// FormatHTML renders the digest for the given industry papers out of
// totalCount fetched, covering the window from cutoff to now.
func FormatHTML(industry []*types.PaperRecord, totalCount int, cutoff, now time.Time) (string, error) {
	data := digestData{
		Today:         now.Format("January 2, 2006"),
		Since:         cutoff.Format("Jan 2"),
		IndustryCount: len(industry),
		TotalCount:    totalCount,
	}

	for i, p := range industry {
		pdf := p.PDFURL
		if pdf == "" {
			pdf = p.URL
		}
		data.Papers = append(data.Papers, digestPaper{
			Rank:       i + 1,
			Title:      p.Title,
			URL:        p.URL,
			PDFURL:     pdf,
			Authors:    authorsLine(p.Authors),
			Published:  p.Published,
			Categories: strings.Join(p.Categories, ", "),
			Company:    p.Company,
			Summary:    p.Summary,
		})
	}

	var b strings.Builder
	if err := digestTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("rendering digest: %w", err)
	}
	return b.String(), nil
}

// authorsLine joins the first eight authors and counts the rest.
func authorsLine(authors []string) string {
	if len(authors) <= 8 {
		return strings.Join(authors, ", ")
	}
	return fmt.Sprintf("%s ... (+%d more)", strings.Join(authors[:8], ", "), len(authors)-8)
}
