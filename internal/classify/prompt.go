// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"strings"
	"text/template"
)

// classificationSystemPrompt instructs the model to gate each paper on
// topic relevance, then decide industry affiliation from the authors,
// and reply with a bare JSON array.
const classificationSystemPrompt = `You are an expert at classifying academic papers. Given a batch of papers, perform TWO checks for each paper:

## Step A - Relevance gate

Is this paper about ONE of the following topics?
1. Recommendation systems (collaborative filtering, CTR prediction, session-based, sequential, or conversational recommendation, etc.)
2. RecSys x LLM (using large language models for recommendations, LLM-based ranking or scoring in recommender systems, prompt-based recommendations, etc.)
3. LLM research with direct applications to ranking/retrieval for recommendations (learning to rank, re-ranking with LLMs, generative retrieval for recommendations, etc.)

If the paper is NOT about any of these topics, mark it as "relevant": false. Papers about generic NLP, computer vision, speech, pure information extraction, general RAG without a recommendation angle, or other unrelated topics are NOT relevant.

## Step B - Industry affiliation (only for relevant papers)

Does at least one author have an affiliation with an industry company? Classify based on AUTHOR AFFILIATIONS, not paper content.

How to determine author affiliation:
- Check author names against your knowledge of well-known researchers at major companies
- Look for affiliation info in the comments field (e.g. "Work done at Google")
- Look for company email domains or explicit affiliations in abstract/comments
- Do NOT classify as "industry" based solely on content signals like "A/B test" or "production system" - the author must actually be with a company

## Output format

Respond with ONLY a JSON array. Each element:
  {"paper_index": <int>, "relevant": true|false, "classification": "industry"|"academia"|"unknown", "company": "<company name(s) if industry, empty string otherwise>", "reason": "<brief reason>"}

For irrelevant papers, set classification to "irrelevant" and company to "".`

// batchPromptTmpl renders one classification batch. Author lists and
// abstracts are truncated to keep token cost per call predictable.
var batchPromptTmpl = template.Must(template.New("batch").Funcs(promptFuncs).Parse(
	`Classify each paper below as industry or academia.

{{range $i, $p := .}}Paper {{$i}}:
  Title: {{$p.Title}}
  Authors: {{joinAuthors $p.Authors 15}}
  Abstract: {{snippet $p.Abstract 400}}
  Comment: {{$p.Comment}}

{{end}}`))

// summaryPromptTmpl renders the summary-generation request.
var summaryPromptTmpl = template.Must(template.New("summary").Funcs(promptFuncs).Parse(
	`For each paper below, write a 2-3 sentence summary highlighting the key contribution and why it matters for recommendation systems, information retrieval, or LLM research. Focus on practical implications.

{{range $i, $p := .}}Paper {{$i}}:
  Title: {{$p.Title}}
  Authors: {{joinAuthors $p.Authors 10}}
  Company: {{$p.Company}}
  Abstract: {{snippet $p.Abstract 500}}

{{end}}Return a JSON array: [{"paper_index": <int>, "summary": "..."}]`))

var promptFuncs = template.FuncMap{
	"joinAuthors": func(authors []string, max int) string {
		if len(authors) > max {
			authors = authors[:max]
		}
		return strings.Join(authors, ", ")
	},
	"snippet": func(s string, max int) string {
		// Slice by rune: titles and abstracts carry non-ASCII.
		r := []rune(s)
		if len(r) > max {
			return string(r[:max])
		}
		return s
	},
}
