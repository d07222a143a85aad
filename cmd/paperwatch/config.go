// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/paperwatch/pkg/types"
)

const (
	defaultTimeout       = 30 * time.Second
	defaultUserAgent     = "paperwatch/0.1"
	defaultModel         = "gpt-4o-mini"
	defaultBatchSize     = 10
	defaultMaxCalls      = 80
	defaultSummaryCap    = 30
	defaultQueriesPerMin = 20
	defaultStatePath     = "state.json"
	defaultReportsDir    = "reports"
)

// defaultArxivQueries covers RecSys, LLM-for-ranking, and retrieval
// research; each runs as one arXiv API query.
var defaultArxivQueries = []string{
	`all:"recommendation system" OR all:"recommender system"`,
	`all:"collaborative filtering"`,
	`all:"click-through rate" OR all:"CTR prediction"`,
	`all:"learning to rank"`,
	`all:"information retrieval" AND cat:cs.IR`,
	`all:"large language model" AND all:"recommendation"`,
	`all:"LLM" AND all:"ranking"`,
	`all:"large language model" AND all:"retrieval"`,
	`all:"retrieval-augmented generation"`,
	`all:"generative retrieval"`,
	`all:"dense retrieval"`,
	`all:"neural information retrieval"`,
	`all:"LLM" AND all:"relevance" AND all:"search"`,
}

// defaultSemanticQueries mirrors the arXiv coverage in the free-text
// form the Semantic Scholar search API expects.
var defaultSemanticQueries = []string{
	"recommender system",
	"collaborative filtering",
	"learning to rank",
	"large language model recommendation",
	"generative retrieval",
	"dense retrieval",
}

// defaultHFKeywords filters the Hugging Face trending feed for topic fit.
var defaultHFKeywords = []string{
	"recommendation", "recommender", "collaborative filtering",
	"learning to rank", "re-ranking", "reranking",
	"retrieval", "ranking", "search relevance", "rag",
}

// loadPipelineConfig assembles the run configuration from viper,
// falling back to built-in defaults, and fills API keys from loaded
// secrets when the config leaves them empty.
func loadPipelineConfig() types.PipelineConfig {
	cfg := types.PipelineConfig{
		Fetch: types.FetchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viperDuration("fetch.timeout", defaultTimeout),
				UserAgent: viperString("fetch.user_agent", defaultUserAgent),
			},
			MaxResultsPerQuery:    viperInt("fetch.max_results_per_query", 100),
			QueriesPerMinute:      viperInt("fetch.queries_per_minute", defaultQueriesPerMin),
			EnableArxiv:           viperBool("fetch.enable_arxiv", true),
			EnableSemanticScholar: viperBool("fetch.enable_semantic_scholar", true),
			EnableHuggingFace:     viperBool("fetch.enable_huggingface", true),
			ArxivQueries:          viperStrings("fetch.arxiv_queries", defaultArxivQueries),
			SemanticQueries:       viperStrings("fetch.semantic_queries", defaultSemanticQueries),
			HFKeywords:            viperStrings("fetch.hf_keywords", defaultHFKeywords),
			SemanticScholarAPIKey: secretDefault("semantic-scholar-api-key", viper.GetString("fetch.semantic_scholar_api_key")),
		},
		Classify: types.ClassifyConfig{
			AIConfig: types.AIConfig{
				Model:      viperString("classify.model", defaultModel),
				APIKey:     secretDefault("openai-api-key", viper.GetString("classify.api_key")),
				MaxRetries: viperInt("classify.max_retries", 3),
			},
			BatchSize:  viperInt("classify.batch_size", defaultBatchSize),
			MaxCalls:   viperInt("classify.max_calls", defaultMaxCalls),
			SummaryCap: viperInt("classify.summary_cap", defaultSummaryCap),
		},
		Delivery: types.DeliveryConfig{
			SenderEmail:    viper.GetString("delivery.sender_email"),
			RecipientEmail: viper.GetString("delivery.recipient_email"),
			SMTPHost:       viperString("delivery.smtp_host", "smtp.gmail.com"),
			SMTPPort:       viperInt("delivery.smtp_port", 587),
			SMTPPassword:   secretDefault("smtp-password", viper.GetString("delivery.smtp_password")),
			ReportsDir:     viperString("delivery.reports_dir", defaultReportsDir),
		},
		State: types.StateConfig{
			Path: viperString("state.path", defaultStatePath),
		},
	}
	return cfg
}

func viperString(key, fallback string) string {
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return fallback
}

func viperInt(key string, fallback int) int {
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	return fallback
}

func viperBool(key string, fallback bool) bool {
	if viper.IsSet(key) {
		return viper.GetBool(key)
	}
	return fallback
}

func viperDuration(key string, fallback time.Duration) time.Duration {
	if viper.IsSet(key) {
		return viper.GetDuration(key)
	}
	return fallback
}

func viperStrings(key string, fallback []string) []string {
	if viper.IsSet(key) {
		return viper.GetStringSlice(key)
	}
	return fallback
}
