// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/pdiddy/paperwatch/pkg/types"
)

// OpenAIAnnotator implements Annotator against the OpenAI chat
// completions API.
type OpenAIAnnotator struct {
	client openai.Client
	model  string
}

// NewOpenAIAnnotator returns an annotator for the given model. A
// maxRetries of 0 keeps the client library's default.
func NewOpenAIAnnotator(apiKey, model string, maxRetries int) *OpenAIAnnotator {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if maxRetries > 0 {
		opts = append(opts, option.WithMaxRetries(maxRetries))
	}
	return &OpenAIAnnotator{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

// ClassifyBatch sends one batch of papers for classification and
// decodes the JSON-array verdict.
func (a *OpenAIAnnotator) ClassifyBatch(ctx context.Context, papers []*types.PaperRecord) ([]Verdict, error) {
	var prompt bytes.Buffer
	if err := batchPromptTmpl.Execute(&prompt, papers); err != nil {
		return nil, fmt.Errorf("rendering batch prompt: %w", err)
	}

	raw, err := a.complete(ctx, classificationSystemPrompt, prompt.String(), 4096, 0.0)
	if err != nil {
		return nil, err
	}

	var verdicts []Verdict
	if err := json.Unmarshal([]byte(raw), &verdicts); err != nil {
		return nil, fmt.Errorf("parsing classification response: %w", err)
	}
	return verdicts, nil
}

// Summarize sends papers for summary generation and decodes the
// JSON-array reply.
func (a *OpenAIAnnotator) Summarize(ctx context.Context, papers []*types.PaperRecord) ([]SummaryItem, error) {
	var prompt bytes.Buffer
	if err := summaryPromptTmpl.Execute(&prompt, papers); err != nil {
		return nil, fmt.Errorf("rendering summary prompt: %w", err)
	}

	raw, err := a.complete(ctx, "", prompt.String(), 8192, 0.3)
	if err != nil {
		return nil, err
	}

	var items []SummaryItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("parsing summary response: %w", err)
	}
	return items, nil
}

// complete issues one chat completion and returns the fenced-stripped
// message text.
func (a *OpenAIAnnotator) complete(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error) {
	var messages []openai.ChatCompletionMessageParamUnion
	if system != "" {
		messages = append(messages, openai.SystemMessage(system))
	}
	messages = append(messages, openai.UserMessage(user))

	resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(a.model),
		Messages:    messages,
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(int64(maxTokens)),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}

	text := stripFences(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("blank completion response")
	}
	return text, nil
}

// stripFences removes a surrounding Markdown code fence, which some
// models add around JSON replies despite instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
