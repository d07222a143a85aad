package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paperwatch/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the source-fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResultsPerQuery caps results per individual source query (default 100).
	MaxResultsPerQuery int `json:"max_results_per_query" yaml:"max_results_per_query"`

	// QueriesPerMinute paces consecutive queries against the same
	// source (default 20, i.e. one query every three seconds).
	QueriesPerMinute int `json:"queries_per_minute" yaml:"queries_per_minute"`

	// EnableArxiv, EnableSemanticScholar, and EnableHuggingFace control
	// which sources are queried.
	EnableArxiv           bool `json:"enable_arxiv" yaml:"enable_arxiv"`
	EnableSemanticScholar bool `json:"enable_semantic_scholar" yaml:"enable_semantic_scholar"`
	EnableHuggingFace     bool `json:"enable_huggingface" yaml:"enable_huggingface"`

	// ArxivQueries and SemanticQueries are the per-source search
	// expressions, issued in order.
	ArxivQueries    []string `json:"arxiv_queries" yaml:"arxiv_queries"`
	SemanticQueries []string `json:"semantic_queries" yaml:"semantic_queries"`

	// HFKeywords filters the Hugging Face trending feed: a paper is kept
	// when its title or abstract contains any keyword (case-insensitive).
	HFKeywords []string `json:"hf_keywords" yaml:"hf_keywords"`

	// SemanticScholarAPIKey is an optional API key for higher rate limits.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty"`
}

// AIConfig holds shared settings for stages that call a Generative AI API.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "gpt-4o-mini").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ClassifyConfig holds settings for the classification stage.
type ClassifyConfig struct {
	AIConfig `yaml:",inline"`

	// BatchSize is the number of papers sent per annotation call (default 10).
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	// MaxCalls is the hard ceiling on annotation API calls per run
	// (default 80). Failed attempts count against it.
	MaxCalls int `json:"max_calls" yaml:"max_calls"`

	// SummaryCap limits how many industry papers receive a generated
	// summary (default 30).
	SummaryCap int `json:"summary_cap" yaml:"summary_cap"`
}

// DeliveryConfig holds settings for digest archiving and email delivery.
type DeliveryConfig struct {
	// SenderEmail and RecipientEmail address the digest mail.
	SenderEmail    string `json:"sender_email" yaml:"sender_email"`
	RecipientEmail string `json:"recipient_email" yaml:"recipient_email"`

	// SMTPHost and SMTPPort locate the mail relay (default smtp.gmail.com:587).
	SMTPHost string `json:"smtp_host" yaml:"smtp_host"`
	SMTPPort int    `json:"smtp_port" yaml:"smtp_port"`

	// SMTPPassword authenticates the sender. Empty disables sending;
	// the digest is still archived locally.
	SMTPPassword string `json:"smtp_password,omitempty" yaml:"smtp_password,omitempty"`

	// ReportsDir is where digest HTML and record dumps are written.
	ReportsDir string `json:"reports_dir" yaml:"reports_dir"`
}

// StateConfig holds settings for the fetch-window state machine.
type StateConfig struct {
	// Path is the location of the persisted run-state file.
	Path string `json:"path" yaml:"path"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Fetch    FetchConfig    `json:"fetch" yaml:"fetch"`
	Classify ClassifyConfig `json:"classify" yaml:"classify"`
	Delivery DeliveryConfig `json:"delivery" yaml:"delivery"`
	State    StateConfig    `json:"state" yaml:"state"`
}
