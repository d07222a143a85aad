// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"net/smtp"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paperwatch/pkg/types"
)

func samplePapers() []*types.PaperRecord {
	return []*types.PaperRecord{
		{
			ID:         "2301.07041",
			Title:      "LLM Ranking <at> Scale",
			Authors:    []string{"Ada Lovelace", "Alan Turing"},
			Published:  "2026-03-09",
			Categories: []string{"cs.IR"},
			URL:        "https://arxiv.org/abs/2301.07041",
			PDFURL:     "https://arxiv.org/pdf/2301.07041",
			Company:    "Spotify",
			Summary:    "A production ranking result.",
		},
	}
}

func TestFormatHTMLEscapesAndRenders(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	cutoff := now.Add(-72 * time.Hour)

	html, err := FormatHTML(samplePapers(), 12, cutoff, now)
	require.NoError(t, err)

	assert.Contains(t, html, "LLM Ranking &lt;at&gt; Scale", "title must be escaped")
	assert.NotContains(t, html, "LLM Ranking <at> Scale")
	assert.Contains(t, html, "Spotify")
	assert.Contains(t, html, "A production ranking result.")
	assert.Contains(t, html, "out of <strong>12</strong> total papers")
	assert.Contains(t, html, "March 10, 2026")
	assert.Contains(t, html, "Since Mar 7")
}

func TestFormatHTMLEmptyDigest(t *testing.T) {
	now := time.Now()
	html, err := FormatHTML(nil, 5, now.Add(-time.Hour), now)
	require.NoError(t, err)
	assert.Contains(t, html, "No industry papers found in this period.")
}

func TestAuthorsLine(t *testing.T) {
	few := []string{"A", "B"}
	assert.Equal(t, "A, B", authorsLine(few))

	var many []string
	for i := 0; i < 11; i++ {
		many = append(many, "X")
	}
	got := authorsLine(many)
	assert.Contains(t, got, "(+3 more)")
	assert.Equal(t, 8, strings.Count(got, "X"))
}

func TestSaveWritesHTMLAndYAML(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	htmlPath, err := Save(dir, "<html>digest</html>", samplePapers(), now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "recsys-llm-industry-2026-03-10.html"), htmlPath)

	data, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Equal(t, "<html>digest</html>", string(data))

	yamlData, err := os.ReadFile(filepath.Join(dir, "recsys-llm-industry-2026-03-10.yaml"))
	require.NoError(t, err)

	var restored []*types.PaperRecord
	require.NoError(t, yaml.Unmarshal(yamlData, &restored))
	require.Len(t, restored, 1)
	assert.Equal(t, "2301.07041", restored[0].ID)
	assert.Equal(t, "Spotify", restored[0].Company)
}

func TestSendMailSkipsWithoutCredentials(t *testing.T) {
	called := false
	old := smtpSend
	smtpSend = func(string, smtp.Auth, string, []string, []byte) error {
		called = true
		return nil
	}
	defer func() { smtpSend = old }()

	tests := []struct {
		name string
		cfg  types.DeliveryConfig
	}{
		{"no password", types.DeliveryConfig{SenderEmail: "a@x", RecipientEmail: "b@x"}},
		{"no recipient", types.DeliveryConfig{SenderEmail: "a@x", SMTPPassword: "pw"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf strings.Builder
			sent, err := SendMail(tt.cfg, "subject", "<html/>", &buf)
			require.NoError(t, err)
			assert.False(t, sent)
			assert.Contains(t, buf.String(), "warning")
		})
	}
	assert.False(t, called, "smtp must not be contacted without credentials")
}

func TestSendMailBuildsMessage(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	old := smtpSend
	smtpSend = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}
	defer func() { smtpSend = old }()

	cfg := types.DeliveryConfig{
		SenderEmail:    "bot@example.com",
		RecipientEmail: "me@example.com",
		SMTPPassword:   "pw",
	}

	var buf strings.Builder
	sent, err := SendMail(cfg, "Digest - Mar 10", "<html>body</html>", &buf)
	require.NoError(t, err)
	assert.True(t, sent)

	assert.Equal(t, "smtp.gmail.com:587", gotAddr)
	assert.Equal(t, "bot@example.com", gotFrom)
	assert.Equal(t, []string{"me@example.com"}, gotTo)

	msg := string(gotMsg)
	assert.Contains(t, msg, "Subject: Digest - Mar 10\r\n")
	assert.Contains(t, msg, "Content-Type: text/html")
	assert.True(t, strings.HasSuffix(msg, "<html>body</html>"))
}

func TestWriteTable(t *testing.T) {
	var buf strings.Builder
	WriteTable(samplePapers(), 12, &buf)
	out := buf.String()
	assert.Contains(t, out, "LLM Ranking <at> Scale")
	assert.Contains(t, out, "Spotify")
	assert.Contains(t, out, "1 industry papers (out of 12 total)")

	buf.Reset()
	WriteTable(nil, 3, &buf)
	assert.Contains(t, buf.String(), "No industry papers found (out of 3 total).")
}

func TestWriteTableTruncatesOnRuneBoundary(t *testing.T) {
	papers := []*types.PaperRecord{{
		Title:     strings.Repeat("é", 80),
		Company:   strings.Repeat("ü", 30),
		Published: "2026-03-09",
		Source:    "arxiv",
	}}

	var buf strings.Builder
	WriteTable(papers, 1, &buf)
	out := buf.String()

	require.True(t, utf8.ValidString(out), "truncation split a multi-byte character")
	assert.Equal(t, 57, strings.Count(out, "é"))
	assert.Equal(t, 17, strings.Count(out, "ü"))
}
