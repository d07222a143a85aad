// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package identity

import "testing"

func TestNormalizeArxivID(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"bare id unchanged", "2301.07041", "2301.07041"},
		{"strips version", "2301.07041v2", "2301.07041"},
		{"strips abs url", "https://arxiv.org/abs/2301.07041", "2301.07041"},
		{"strips pdf url and version", "http://arxiv.org/pdf/2301.07041v3", "2301.07041"},
		{"old-style id", "cs/0112017v1", "cs/0112017"},
		{"secondary-source id untouched", "s2:abcdef123456", "s2:abcdef123456"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeArxivID(tt.raw); got != tt.want {
				t.Errorf("NormalizeArxivID(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeDOI(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"lowercases", "10.1145/3038912.3052569", "10.1145/3038912.3052569"},
		{"mixed case", "10.1145/ABC.Def", "10.1145/abc.def"},
		{"strips resolver url", "https://doi.org/10.1145/3038912", "10.1145/3038912"},
		{"strips dx resolver", "http://dx.doi.org/10.1000/XYZ", "10.1000/xyz"},
		{"trims whitespace", "  10.1000/182 ", "10.1000/182"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDOI(tt.raw); got != tt.want {
				t.Errorf("NormalizeDOI(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"empty", "", ""},
		{"lowercase and punctuation", "Attention Is All You Need!", "attention is all you need"},
		{"latex command collapses", `\textbf{Dense} Retrieval`, "dense retrieval"},
		{"residual markup stripped", `Scaling {LLM}s for $n$-gram Ranking`, "scaling llms for ngram ranking"},
		{"whitespace collapsed", "deep   learning \t for\nranking", "deep learning for ranking"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTitle(tt.title); got != tt.want {
				t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

// Normalization must be a fixed point: applying it twice is the same as once.
func TestNormalizeIdempotent(t *testing.T) {
	titles := []string{
		"",
		"Attention Is All You Need!",
		`\emph{Generative} Retrieval: A {Survey}`,
		"plain already-normalized title",
		"Ünïcode — and em-dashes",
	}
	for _, s := range titles {
		once := NormalizeTitle(s)
		if twice := NormalizeTitle(once); twice != once {
			t.Errorf("NormalizeTitle not idempotent for %q: %q != %q", s, twice, once)
		}
	}

	ids := []string{"", "2301.07041v2", "2301.07041", "https://arxiv.org/abs/2301.07041v1"}
	for _, s := range ids {
		once := NormalizeArxivID(s)
		if twice := NormalizeArxivID(once); twice != once {
			t.Errorf("NormalizeArxivID not idempotent for %q: %q != %q", s, twice, once)
		}
	}

	dois := []string{"", "https://doi.org/10.1145/ABC", "10.1145/abc"}
	for _, s := range dois {
		once := NormalizeDOI(s)
		if twice := NormalizeDOI(once); twice != once {
			t.Errorf("NormalizeDOI not idempotent for %q: %q != %q", s, twice, once)
		}
	}
}
